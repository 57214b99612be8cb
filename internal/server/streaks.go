package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGetStreak(c *gin.Context) {
	streak, err := s.engine.GetStreak(principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

func (s *Server) handleTouchStreak(c *gin.Context) {
	result, err := s.engine.TouchStreak(principal(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{"streak": result.Streak}
	if !result.Updated {
		resp["message"] = "Already logged in today"
	}
	c.JSON(http.StatusOK, resp)
}
