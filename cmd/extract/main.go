package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/comexdesk/invoice-extract/internal/common"
	"github.com/comexdesk/invoice-extract/internal/enrich"
	"github.com/comexdesk/invoice-extract/internal/grid"
	"github.com/comexdesk/invoice-extract/internal/ingest"
	"github.com/comexdesk/invoice-extract/internal/pipeline"
	"github.com/comexdesk/invoice-extract/internal/profiles"
	"github.com/comexdesk/invoice-extract/internal/repository"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 3 {
		logger.Error("usage", "cmd", "extract <document.json> <profile.json>")
		os.Exit(2)
	}
	docPath, profilePath := os.Args[1], os.Args[2]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	enricher, closeStore := openEnricher(ctx, cfg, logger)
	defer closeStore()

	doc, err := ingest.LoadDocument(docPath)
	if err != nil {
		logger.Error("load document", "path", docPath, "error", err)
		os.Exit(1)
	}

	profile, err := profiles.Load(profilePath, cfg.DefaultNumberStyle())
	if err != nil {
		logger.Error("load profile", "path", profilePath, "error", err)
		os.Exit(1)
	}

	p := pipeline.NewProcessor(pipeline.ConfigFrom(cfg), grid.NewTextExtractor(), enricher, logger)

	start := time.Now()
	result, err := p.Process(ctx, doc, profile)
	if err != nil {
		logger.Error("extraction failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}
	logger.Info("extraction OK",
		"run_id", result.RunID,
		"items", result.Totals.Grand.ItemCount,
		"warnings", len(result.Warnings),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}

// openEnricher picks the reference store from config: SQLite path first,
// Postgres DSN second, no enrichment when neither is set.
func openEnricher(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*enrich.Enricher, func()) {
	if cfg.Reference.SQLitePath != "" {
		store, err := repository.OpenSQLite(ctx, cfg.Reference.SQLitePath, logger)
		if err != nil {
			logger.Error("open sqlite reference store", "error", err)
			os.Exit(1)
		}
		return enrich.NewEnricher(store, logger), func() {
			if cerr := store.Close(); cerr != nil {
				logger.Error("close reference store", "error", cerr)
			}
		}
	}
	if cfg.Reference.PostgresDSN != "" {
		store, err := repository.OpenPG(ctx, cfg.Reference, logger)
		if err != nil {
			logger.Error("open pg reference store", "error", err)
			os.Exit(1)
		}
		return enrich.NewEnricher(store, logger), store.Close
	}
	logger.Info("no reference store configured, skipping enrichment")
	return nil, func() {}
}
