package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/comexdesk/invoice-extract/internal/common"
	"github.com/comexdesk/invoice-extract/internal/entity"
	"github.com/comexdesk/invoice-extract/internal/repository"
)

// refload imports reference entries from a CSV export (code,description,ncm)
// into the SQLite reference store.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "refload <entries.csv>")
		os.Exit(2)
	}
	csvPath := os.Args[1]

	cfg := common.LoadConfig()
	if cfg.Reference.SQLitePath == "" {
		logger.Error("REF_SQLITE_PATH required")
		os.Exit(1)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		logger.Error("open csv", "path", csvPath, "error", err)
		os.Exit(1)
	}
	defer func(f *os.File) {
		if cerr := f.Close(); cerr != nil {
			logger.Error("close csv", "error", cerr)
		}
	}(f)

	var entries []*entity.ReferenceEntry
	if err := gocsv.UnmarshalFile(f, &entries); err != nil {
		logger.Error("parse csv", "path", csvPath, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := repository.OpenSQLite(ctx, cfg.Reference.SQLitePath, logger)
	if err != nil {
		logger.Error("open reference store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("close reference store", "error", cerr)
		}
	}()

	loaded, skipped := 0, 0
	for _, entry := range entries {
		if entry == nil || entry.Code == "" {
			skipped++
			continue
		}
		if err := store.Upsert(ctx, *entry); err != nil {
			logger.Error("upsert entry", "code", entry.Code, "error", err)
			skipped++
			continue
		}
		loaded++
	}

	logger.Info("refload done", "loaded", loaded, "skipped", skipped)
}
