// Package enrich fills missing descriptive fields on item records from the
// reference store.
package enrich

import (
	"context"
	"errors"
	"log/slog"

	"github.com/comexdesk/invoice-extract/internal/common"
	"github.com/comexdesk/invoice-extract/internal/entity"
	"github.com/comexdesk/invoice-extract/internal/repository"
)

// Enricher looks up each record's internal reference code and fills only
// fields that are still empty. Fields populated from the document are never
// overwritten; a lookup miss passes the record through unchanged.
type Enricher struct {
	repo   repository.ReferenceRepository
	logger *slog.Logger
}

func NewEnricher(repo repository.ReferenceRepository, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{repo: repo, logger: logger}
}

// Enrich mutates records in place. Store errors other than a miss are logged
// and skipped; enrichment is never fatal to the run.
func (e *Enricher) Enrich(ctx context.Context, records []entity.ItemRecord) {
	if e.repo == nil {
		return
	}
	for i := range records {
		record := &records[i]
		if record.InternalRef == "" {
			continue
		}
		if record.Description != "" && record.NCM != "" {
			continue
		}
		entry, err := e.repo.ByCode(ctx, record.InternalRef)
		if errors.Is(err, common.ErrNotFound) {
			continue
		}
		if err != nil {
			e.logger.Warn("enrich.lookup_failed", "code", record.InternalRef, "error", err)
			continue
		}
		if record.Description == "" {
			record.Description = entry.Description
		}
		if record.NCM == "" {
			record.NCM = entry.NCM
		}
	}
}
