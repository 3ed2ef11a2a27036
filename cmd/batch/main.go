package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/comexdesk/invoice-extract/internal/common"
	"github.com/comexdesk/invoice-extract/internal/grid"
	"github.com/comexdesk/invoice-extract/internal/ingest"
	"github.com/comexdesk/invoice-extract/internal/pipeline"
	"github.com/comexdesk/invoice-extract/internal/profiles"
)

// batch runs the pipeline over every layout JSON under a directory, writing
// a .result.json next to each input. Per-document failures are logged and
// skipped; the walk continues.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 3 {
		logger.Error("usage", "cmd", "batch <directory> <profile.json>")
		os.Exit(2)
	}
	root, profilePath := os.Args[1], os.Args[2]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	profile, err := profiles.Load(profilePath, cfg.DefaultNumberStyle())
	if err != nil {
		logger.Error("load profile", "path", profilePath, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	p := pipeline.NewProcessor(pipeline.ConfigFrom(cfg), grid.NewTextExtractor(), nil, logger)

	start := time.Now()
	stats, err := ingest.WalkDocuments(root, true, func(path string, doc *ingest.Document) error {
		result, perr := p.Process(ctx, doc, profile)
		if perr != nil {
			logger.Error("batch.document.failed", "path", path, "error", perr)
			return perr
		}
		outPath := resultPath(path)
		raw, merr := json.MarshalIndent(result, "", "  ")
		if merr != nil {
			return merr
		}
		if werr := os.WriteFile(outPath, raw, 0o644); werr != nil {
			logger.Error("batch.write.failed", "path", outPath, "error", werr)
			return werr
		}
		logger.Info("batch.document.ok",
			"path", path,
			"items", result.Totals.Grand.ItemCount,
			"warnings", len(result.Warnings),
		)
		return nil
	})
	if err != nil {
		logger.Error("batch walk failed", "error", err)
		os.Exit(1)
	}

	logger.Info("batch done",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func resultPath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return path[:len(path)-len(".json")] + ingest.ResultSuffix
	}
	return path + ingest.ResultSuffix
}
