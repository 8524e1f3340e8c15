package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/sigboard/internal/app"
	"github.com/nfrund/sigboard/internal/config"
	"github.com/nfrund/sigboard/internal/logging"
)

// Version is set at build time.
// Example: go build -ldflags "-X 'main.Version=1.4.0'"
var Version = "dev"

func main() {
	cfg := config.New()
	logger := logging.Setup(os.Stdout, cfg.GetLogFormat(), cfg.GetLogLevel())

	if err := cfg.Validate(true); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	application := app.New(cfg, logger, app.Options{Version: Version})
	if err := run(application); err != nil {
		logger.Error("Server stopped", "error", err)
		_ = application.Close()
		os.Exit(1)
	}
	if err := application.Close(); err != nil {
		slog.Error("Failed to release resources", "error", err)
	}
}

func run(application *app.App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := application.StartAudit(ctx); err != nil {
		return err
	}
	s, err := application.Server()
	if err != nil {
		return err
	}
	return s.Start(ctx)
}
