package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/comexdesk/invoice-extract/internal/common"
	"github.com/comexdesk/invoice-extract/internal/repository"
)

// dbhealth pings the Postgres reference store to catch DSN issues early.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if cfg.Reference.PostgresDSN == "" {
		logger.Error("REF_DB_URL required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := repository.OpenPG(ctx, cfg.Reference, logger)
	if err != nil {
		logger.Error("open reference store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.HealthCheck(ctx, 5*time.Second); err != nil {
		logger.Error("reference store unhealthy", "error", err)
		os.Exit(1)
	}
	logger.Info("reference store healthy")
}
