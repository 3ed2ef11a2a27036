// Package repository provides the read-only reference lookup used to enrich
// item records, backed by either an embedded SQLite file or Postgres.
package repository

import (
	"context"

	"github.com/comexdesk/invoice-extract/internal/entity"
)

// ReferenceRepository is the reference-store query contract: read-only,
// keyed by the document's internal product code. Implementations must be
// safe for concurrent reads. A miss is reported as common.ErrNotFound and is
// expected, not exceptional.
type ReferenceRepository interface {
	ByCode(ctx context.Context, code string) (*entity.ReferenceEntry, error)
}
