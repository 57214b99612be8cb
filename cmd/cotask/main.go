package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/cotask/internal/cli"
	"github.com/julianstephens/cotask/internal/constants"
	"github.com/julianstephens/cotask/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Database string `help:"SQLite file path or postgres:// connection string." type:"path" env:"COTASK_DATABASE" default:"~/.config/cotask/cotask.db"`
	Addr     string `help:"Address to listen on." env:"COTASK_ADDR" default:":8080"`
	Debug    bool   `help:"Enable debug logging." env:"COTASK_DEBUG"`
	LogDir   string `help:"Directory for rotated log files." env:"COTASK_LOG_DIR"`

	JWTSecret     string `help:"HMAC secret for bearer tokens." env:"COTASK_JWT_SECRET"`
	RoadmapAPIKey string `help:"API key for the roadmap text-generation service." env:"COTASK_ROADMAP_API_KEY"`
	RoadmapURL    string `help:"Override the roadmap text-generation endpoint." env:"COTASK_ROADMAP_URL"`

	Serve   cli.ServeCmd   `cmd:"" help:"Run the HTTP API server." default:"1"`
	Migrate cli.MigrateCmd `cmd:"" help:"Initialize the database and apply migrations."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Gamified productivity API: todos, habits, streaks, and collaborative workspaces"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, LogDir: CLI.LogDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Store:         cli.OpenStore(CLI.Database),
		Addr:          CLI.Addr,
		JWTSecret:     CLI.JWTSecret,
		RoadmapAPIKey: CLI.RoadmapAPIKey,
		RoadmapURL:    CLI.RoadmapURL,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
