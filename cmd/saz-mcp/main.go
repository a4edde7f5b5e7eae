package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/internal/logging"
	"github.com/usestring/saz-mcp/internal/mcp"
	"github.com/usestring/saz-mcp/internal/mcp/tools"
	"github.com/usestring/saz-mcp/internal/query"
	"github.com/usestring/saz-mcp/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration comes from SAZMCP_* environment variables; see
	// internal/config for the full list.
	cfg := config.Load()

	cleanup, err := logging.Setup(logging.Config{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	deps := &tools.Deps{
		Store:  store.New(cfg),
		Config: cfg,
		Query:  query.NewEngine(),
	}

	// An archive path argument preloads the capture so clients can query
	// immediately; otherwise the first saz_load call provides one.
	if len(os.Args) > 1 {
		path := os.Args[1]
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("failed to read archive", "path", path, "error", err)
			os.Exit(1)
		}
		if _, err := deps.Store.Load(path, data); err != nil {
			slog.Error("failed to load archive", "path", path, "error", err)
			os.Exit(1)
		}
	}

	server, err := mcp.NewServer(deps)
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}

	slog.Info("starting saz MCP server on stdio")
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
