package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/comexdesk/invoice-extract/internal/common"
	"github.com/comexdesk/invoice-extract/internal/entity"
)

// PGReferenceRepository serves reference lookups from Postgres, for
// deployments where the reference data lives in the shared customs database.
type PGReferenceRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// OpenPG creates a pgx pool against cfg and wraps it as a reference store.
func OpenPG(ctx context.Context, cfg common.ReferenceConfig, logger *slog.Logger) (*PGReferenceRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("reference.pg.connect", "dsn", cfg.PostgresDSN)
	pc, err := pgxpool.ParseConfig(cfg.PostgresDSN)
	if err != nil {
		logger.Error("reference.pg.parse_config", "error", err)
		return nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "invoice-extract"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("reference.pg.connect_failed", "error", err)
		return nil, err
	}

	logger.Info("reference.pg.connected")
	return &PGReferenceRepository{pool: pool, logger: logger}, nil
}

func (r *PGReferenceRepository) ByCode(ctx context.Context, code string) (*entity.ReferenceEntry, error) {
	var entry entity.ReferenceEntry
	err := r.pool.QueryRow(ctx,
		`SELECT code, description, ncm FROM reference_entries WHERE code = $1`, code).
		Scan(&entry.Code, &entry.Description, &entry.NCM)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", code, err)
	}
	return &entry, nil
}

// HealthCheck pings the pool to catch DSN issues early.
func (r *PGReferenceRepository) HealthCheck(ctx context.Context, timeout time.Duration) error {
	r.logger.Debug("reference.pg.ping")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return r.pool.Ping(ctx)
}

func (r *PGReferenceRepository) Close() {
	r.logger.Info("reference.pg.close")
	r.pool.Close()
}
