// Package server exposes the business engines over HTTP. All /api routes sit
// behind the bearer-token principal middleware; the health probe does not.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/cotask/internal/constants"
	"github.com/julianstephens/cotask/internal/engine"
	"github.com/julianstephens/cotask/internal/models"
)

// Generator produces a roadmap outline from a goal description.
type Generator interface {
	Generate(ctx context.Context, description string) (models.Roadmap, error)
}

// Config carries the server's runtime settings.
type Config struct {
	JWTSecret []byte
}

// Server is the CoTask HTTP server.
type Server struct {
	engine    *engine.Engine
	generator Generator
	config    Config
	router    *gin.Engine
}

// NewServer wires the router. A nil generator disables the roadmap endpoint
// with a 500 upstream error rather than a missing route.
func NewServer(eng *engine.Engine, generator Generator, config Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		engine:    eng,
		generator: generator,
		config:    config,
		router:    router,
	}

	router.GET("/healthz", s.handleHealthz)

	api := router.Group("/api")
	api.Use(s.requirePrincipal())
	{
		api.GET("/todos", s.handleListTodos)
		api.POST("/todos", s.handleCreateTodo)
		api.PUT("/todos/:id", s.handleUpdateTodo)
		api.DELETE("/todos/:id", s.handleDeleteTodo)

		api.GET("/habits", s.handleListHabits)
		api.POST("/habits", s.handleCreateHabit)
		api.PUT("/habits/:id", s.handleRenameHabit)
		api.DELETE("/habits/:id", s.handleDeleteHabit)
		api.PATCH("/habits/:id", s.handleToggleHabit)

		api.GET("/streaks", s.handleGetStreak)
		api.POST("/streaks", s.handleTouchStreak)

		api.GET("/profile", s.handleGetProfile)
		api.POST("/avatar", s.handleSetAvatar)

		api.GET("/workspaces", s.handleListWorkspaces)
		api.POST("/workspaces", s.handleCreateWorkspace)
		api.GET("/workspaces/:id", s.handleGetWorkspace)
		api.DELETE("/workspaces/:id", s.handleDeleteWorkspace)
		api.GET("/workspaces/:id/members", s.handleListMembers)
		api.POST("/workspaces/:id/members", s.handleInviteMember)
		api.DELETE("/workspaces/:id/members/:userId", s.handleRemoveMember)
		api.GET("/workspaces/:id/tasks", s.handleListTasks)
		api.POST("/workspaces/:id/tasks", s.handleCreateTask)

		api.GET("/tasks/:id", s.handleGetTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.GET("/tasks/:id/history", s.handleGetTaskHistory)
		api.POST("/tasks/:id/comments", s.handleAddComment)

		api.POST("/roadmap", s.handleGenerateRoadmap)
	}

	return s
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": constants.Version,
	})
}
