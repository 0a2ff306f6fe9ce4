package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/carnetapp/carnet/internal/client/cli"
	"github.com/carnetapp/carnet/internal/client/config"
	"github.com/carnetapp/carnet/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %s", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app := cli.NewApp(cfg, logger)
	app.Run(context.Background())
}
