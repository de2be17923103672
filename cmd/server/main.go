// Command server runs the forum HTTP API.
//
// Configuration comes from an optional YAML file (-config, default
// config.yaml) overridden by FORUM_* environment variables; see
// internal/config for the keys.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/sakif/forum-api/internal/config"
	"github.com/sakif/forum-api/internal/logger"
	"github.com/sakif/forum-api/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		log.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
