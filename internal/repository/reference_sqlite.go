package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/comexdesk/invoice-extract/internal/common"
	"github.com/comexdesk/invoice-extract/internal/entity"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS reference_entries (
	code        TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT '',
	ncm         TEXT NOT NULL DEFAULT ''
);`

// SQLiteReferenceRepository serves reference lookups from an embedded SQLite
// file. The default store for the CLIs.
type SQLiteReferenceRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (and bootstraps) the reference database at path.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteReferenceRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap sqlite schema: %w", err)
	}
	logger.Info("reference.sqlite.open", "path", path)
	return &SQLiteReferenceRepository{db: db, logger: logger}, nil
}

func (r *SQLiteReferenceRepository) ByCode(ctx context.Context, code string) (*entity.ReferenceEntry, error) {
	var entry entity.ReferenceEntry
	err := r.db.QueryRowContext(ctx,
		`SELECT code, description, ncm FROM reference_entries WHERE code = ?`, code).
		Scan(&entry.Code, &entry.Description, &entry.NCM)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", code, err)
	}
	return &entry, nil
}

// Upsert inserts or replaces one reference entry. Used by the loader CLI,
// never by the extraction engine.
func (r *SQLiteReferenceRepository) Upsert(ctx context.Context, entry entity.ReferenceEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reference_entries (code, description, ncm) VALUES (?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET description = excluded.description, ncm = excluded.ncm`,
		entry.Code, entry.Description, entry.NCM)
	if err != nil {
		return fmt.Errorf("upsert %q: %w", entry.Code, err)
	}
	return nil
}

func (r *SQLiteReferenceRepository) Close() error {
	return r.db.Close()
}
