package cli

import (
	"fmt"

	"github.com/julianstephens/cotask/internal/engine"
	"github.com/julianstephens/cotask/internal/logger"
	"github.com/julianstephens/cotask/internal/roadmap"
	"github.com/julianstephens/cotask/internal/server"
)

// ServeCmd runs the HTTP API server.
type ServeCmd struct{}

func (c *ServeCmd) Run(ctx *Context) error {
	if ctx.JWTSecret == "" {
		return fmt.Errorf("a JWT secret is required (set COTASK_JWT_SECRET)")
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	var generator server.Generator
	if ctx.RoadmapAPIKey != "" {
		generator = roadmap.NewClient(ctx.RoadmapAPIKey, ctx.RoadmapURL)
	} else {
		logger.Warn("Roadmap API key not set; /api/roadmap is disabled")
	}

	eng := engine.New(ctx.Store)
	srv := server.NewServer(eng, generator, server.Config{
		JWTSecret: []byte(ctx.JWTSecret),
	})

	logger.Info("Starting server", "addr", ctx.Addr)
	return srv.Run(ctx.Addr)
}
