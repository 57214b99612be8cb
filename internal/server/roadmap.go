package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/cotask/internal/engine"
	"github.com/julianstephens/cotask/internal/logger"
)

func (s *Server) handleGenerateRoadmap(c *gin.Context) {
	var body struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if body.Description == "" {
		badRequest(c, "description is required")
		return
	}

	if s.generator == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "roadmap generation is not configured",
			"kind":  string(engine.KindUpstream),
		})
		return
	}

	roadmap, err := s.generator.Generate(c.Request.Context(), body.Description)
	if err != nil {
		logger.Error("Roadmap generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "roadmap generation failed",
			"kind":  string(engine.KindUpstream),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"roadmap": roadmap})
}
