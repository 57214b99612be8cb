package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/cotask/internal/models"
)

func (s *Server) handleListHabits(c *gin.Context) {
	habits, err := s.engine.ListHabits(principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

func (s *Server) handleCreateHabit(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	habit, err := s.engine.CreateHabit(principal(c), body.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"habit": habit})
}

func (s *Server) handleRenameHabit(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	habit, err := s.engine.RenameHabit(principal(c), c.Param("id"), body.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

func (s *Server) handleDeleteHabit(c *gin.Context) {
	if err := s.engine.DeleteHabit(principal(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleToggleHabit(c *gin.Context) {
	habit, err := s.engine.ToggleHabit(principal(c), c.Param("id"), c.Query("action"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"habit": habit})
}
