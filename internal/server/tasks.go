package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/cotask/internal/engine"
	"github.com/julianstephens/cotask/internal/models"
)

func (s *Server) handleListTasks(c *gin.Context) {
	filters := models.TaskFilters{
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		AssignedTo: c.Query("assigned_to"),
		CreatedBy:  c.Query("created_by"),
	}

	tasks, err := s.engine.ListTasks(principal(c), c.Param("id"), filters)
	if err != nil {
		writeError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.WorkspaceTask{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var body engine.NewTask
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	task, err := s.engine.CreateTask(principal(c), c.Param("id"), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (s *Server) handleGetTask(c *gin.Context) {
	thread, err := s.engine.GetTaskThread(principal(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var update models.TaskUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	task, err := s.engine.UpdateTask(principal(c), c.Param("id"), update)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.engine.DeleteTask(principal(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleGetTaskHistory(c *gin.Context) {
	entries, err := s.engine.GetTaskHistory(principal(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if entries == nil {
		entries = []models.TaskHistoryEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (s *Server) handleAddComment(c *gin.Context) {
	var body struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	comment, err := s.engine.AddComment(principal(c), c.Param("id"), body.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}
