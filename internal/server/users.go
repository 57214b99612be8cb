package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGetProfile(c *gin.Context) {
	user, err := s.engine.GetProfile(principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) handleSetAvatar(c *gin.Context) {
	var body struct {
		Name       string `json:"name"`
		AvatarType string `json:"avatarType"`
		AvatarPath string `json:"avatarPath"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := s.engine.SetAvatar(principal(c), body.Name, body.AvatarType, body.AvatarPath)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
