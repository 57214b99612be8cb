package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/cotask/internal/models"
)

func (s *Server) handleListWorkspaces(c *gin.Context) {
	workspaces, err := s.engine.ListWorkspaces(principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if workspaces == nil {
		workspaces = []models.WorkspaceWithRole{}
	}
	c.JSON(http.StatusOK, gin.H{"workspaces": workspaces})
}

func (s *Server) handleCreateWorkspace(c *gin.Context) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ws, err := s.engine.CreateWorkspace(principal(c), body.Name, body.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"workspace": ws})
}

func (s *Server) handleGetWorkspace(c *gin.Context) {
	ws, err := s.engine.GetWorkspace(principal(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workspace": ws})
}

func (s *Server) handleDeleteWorkspace(c *gin.Context) {
	if err := s.engine.DeleteWorkspace(principal(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleListMembers(c *gin.Context) {
	members, err := s.engine.ListMembers(principal(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if members == nil {
		members = []models.MemberInfo{}
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (s *Server) handleInviteMember(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	member, err := s.engine.InviteMember(principal(c), c.Param("id"), body.Email, body.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"member": member})
}

func (s *Server) handleRemoveMember(c *gin.Context) {
	if err := s.engine.RemoveMember(principal(c), c.Param("id"), c.Param("userId")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
