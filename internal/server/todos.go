package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/cotask/internal/models"
)

func (s *Server) handleListTodos(c *gin.Context) {
	todos, err := s.engine.ListTodos(principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

func (s *Server) handleCreateTodo(c *gin.Context) {
	var body struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	todo, err := s.engine.CreateTodo(principal(c), body.Title)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"todo": todo})
}

func (s *Server) handleUpdateTodo(c *gin.Context) {
	var update models.TodoUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	todo, err := s.engine.UpdateTodo(principal(c), c.Param("id"), update)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (s *Server) handleDeleteTodo(c *gin.Context) {
	if err := s.engine.DeleteTodo(principal(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
