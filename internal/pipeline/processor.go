// Package pipeline coordinates the extraction stages for one document:
// section location, table location, grid extraction, header resolution, row
// classification, record building, enrichment and totals reconciliation.
// Processing is synchronous and side-effect free; independent documents may
// run through separate Processor calls concurrently.
package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comexdesk/invoice-extract/internal/aggregate"
	"github.com/comexdesk/invoice-extract/internal/common"
	"github.com/comexdesk/invoice-extract/internal/enrich"
	"github.com/comexdesk/invoice-extract/internal/entity"
	"github.com/comexdesk/invoice-extract/internal/extract"
	"github.com/comexdesk/invoice-extract/internal/grid"
	"github.com/comexdesk/invoice-extract/internal/ingest"
	"github.com/comexdesk/invoice-extract/internal/layout"
	"github.com/comexdesk/invoice-extract/internal/profiles"
)

// Config tunes the geometric and reconciliation behavior of one processor.
type Config struct {
	LineTolerance    float64
	HeaderBuffer     float64
	FooterBuffer     float64
	GridSettings     grid.Settings
	MinHeaderMatches int
	TotalsTolerance  decimal.Decimal
}

// ConfigFrom maps the environment configuration into a pipeline config.
func ConfigFrom(c *common.Config) Config {
	tolerance, err := decimal.NewFromString(c.Extraction.TotalsTolerance)
	if err != nil {
		tolerance = aggregate.DefaultTolerance
	}
	return Config{
		LineTolerance: c.Geometry.LineTolerance,
		HeaderBuffer:  c.Geometry.HeaderBuffer,
		FooterBuffer:  c.Geometry.FooterBuffer,
		GridSettings: grid.Settings{
			SnapTolerance:         c.Geometry.SnapTolerance,
			TextTolerance:         c.Geometry.TextTolerance,
			IntersectionTolerance: c.Geometry.IntersectionTolerance,
		},
		MinHeaderMatches: c.Extraction.MinHeaderMatches,
		TotalsTolerance:  tolerance,
	}
}

// Processor runs the full pipeline for one document at a time.
type Processor struct {
	cfg      Config
	gridx    grid.Extractor
	enricher *enrich.Enricher
	tables   *layout.TableLocator
	logger   *slog.Logger
}

func NewProcessor(cfg Config, gridx grid.Extractor, enricher *enrich.Enricher, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if gridx == nil {
		gridx = grid.NewTextExtractor()
	}
	if cfg.TotalsTolerance.IsZero() {
		cfg.TotalsTolerance = aggregate.DefaultTolerance
	}
	return &Processor{
		cfg:      cfg,
		gridx:    gridx,
		enricher: enricher,
		tables:   layout.NewTableLocator(cfg.HeaderBuffer, cfg.FooterBuffer),
		logger:   logger,
	}
}

// Process extracts all profiled sections from doc and returns the complete
// result. Every failure inside is scoped to a field, row or section and
// surfaces as a warning; only invalid inputs fail the call.
func (p *Processor) Process(ctx context.Context, doc *ingest.Document, profile *profiles.Compiled) (*entity.ExtractionResult, error) {
	if doc == nil || profile == nil {
		return nil, common.ErrInvalidInput
	}

	result := &entity.ExtractionResult{
		RunID:    uuid.New(),
		Source:   doc.Source,
		Sections: make(map[string][]entity.ItemRecord, len(profile.Sections)),
	}
	for _, sec := range profile.Sections {
		result.Sections[sec.Name] = nil
	}

	sectionSeen := make(map[string]bool, len(profile.Sections))
	var declared *entity.DeclaredTotals

	for _, page := range doc.Pages {
		ix := layout.NewWordIndex(page, p.cfg.LineTolerance)

		for _, sec := range profile.Sections {
			records, warnings, found := p.processSection(ix, sec, profile)
			result.Warnings = append(result.Warnings, warnings...)
			if found {
				sectionSeen[sec.Name] = true
			}
			if len(records) > 0 {
				result.Sections[sec.Name] = append(result.Sections[sec.Name], records...)
			}
		}

		if declared == nil && profile.Summary != nil {
			d, warnings := aggregate.ReadDeclared(ix, profile.Summary, profile.NumberStyle)
			result.Warnings = append(result.Warnings, warnings...)
			if d != nil {
				declared = d
			}
		}
	}

	for _, sec := range profile.Sections {
		if !sectionSeen[sec.Name] {
			result.Warnings = append(result.Warnings, entity.Warning{
				Code:    entity.WarnSectionNotFound,
				Section: sec.Name,
				Message: "section markers not found on any page",
			})
		}
	}

	if p.enricher != nil {
		for name := range result.Sections {
			p.enricher.Enrich(ctx, result.Sections[name])
		}
	}

	result.Metadata = deriveMetadata(profile, result.Sections)
	result.Totals = aggregate.Totals(result.Sections, declared, p.cfg.TotalsTolerance)

	p.logger.Info("pipeline.document.ok",
		"source", doc.Source,
		"run_id", result.RunID,
		"items", result.Totals.Grand.ItemCount,
		"warnings", len(result.Warnings),
		"discrepancies", len(result.Totals.Discrepancies),
	)
	return result, nil
}

// processSection runs locate -> table -> grid -> resolve -> classify -> build
// for one section on one page. found reports whether the section's start
// marker was present at all.
func (p *Processor) processSection(ix *layout.WordIndex, sec profiles.CompiledSection, profile *profiles.Compiled) ([]entity.ItemRecord, []entity.Warning, bool) {
	page := ix.Page()
	warn := func(code entity.WarningCode, err error) []entity.Warning {
		return []entity.Warning{{
			Code:    code,
			Section: sec.Name,
			Page:    page.Number,
			Message: err.Error(),
		}}
	}

	band, err := layout.LocateSection(ix, sec.Start, sec.End)
	if errors.Is(err, common.ErrSectionNotFound) {
		return nil, nil, false
	}
	if err != nil {
		return nil, warn(entity.WarnInvalidBand, err), true
	}

	bbox, err := p.tables.Locate(ix, band, sec.Header, sec.Footer)
	if err != nil {
		code := entity.WarnHeaderNotFound
		if errors.Is(err, common.ErrInvalidBand) {
			code = entity.WarnInvalidBand
		}
		return nil, warn(code, err), true
	}

	rawGrid, err := p.gridx.ExtractGrid(page, bbox, p.cfg.GridSettings)
	if err != nil {
		return nil, warn(entity.WarnGridExtraction, err), true
	}
	if len(rawGrid) == 0 {
		return nil, warn(entity.WarnHeaderNotFound, common.ErrHeaderNotFound), true
	}

	headerRow, cols, err := extract.ResolveHeader(rawGrid, profile.Synonyms, p.cfg.MinHeaderMatches)
	if err != nil {
		return nil, warn(entity.WarnHeaderResolutionLow, err), true
	}

	classifier := extract.NewRowClassifier(profile.SummaryKeywords)
	builder := extract.NewBuilder(profile.NumberStyle, p.cfg.TotalsTolerance)
	secCtx := extract.SectionContext{Name: sec.Name, Page: page.Number, Covered: sec.Covered}

	var records []entity.ItemRecord
	var warnings []entity.Warning
	for i, row := range rawGrid {
		if classifier.Classify(row, i, headerRow) == extract.RowSkip {
			continue
		}
		record, rowWarnings := builder.Build(row, i, cols, secCtx)
		records = append(records, record)
		warnings = append(warnings, rowWarnings...)
	}

	p.logger.Debug("pipeline.section.ok",
		"section", sec.Name,
		"page", page.Number,
		"rows", len(rawGrid),
		"records", len(records),
	)
	return records, warnings, true
}

// deriveMetadata fills the invoice-level fields from the extracted records:
// first non-empty supplier and invoice number, and the most frequent
// classification code. Sections are visited in profile order so derivation
// is deterministic.
func deriveMetadata(profile *profiles.Compiled, sections map[string][]entity.ItemRecord) entity.InvoiceMetadata {
	var meta entity.InvoiceMetadata
	ncmCounts := make(map[string]int)
	var ncmOrder []string

	for _, sec := range profile.Sections {
		for _, record := range sections[sec.Name] {
			if meta.Supplier == "" && record.Supplier != "" {
				meta.Supplier = record.Supplier
			}
			if meta.InvoiceNo == "" && record.InvoiceNo != "" {
				meta.InvoiceNo = record.InvoiceNo
			}
			if record.NCM != "" {
				if _, ok := ncmCounts[record.NCM]; !ok {
					ncmOrder = append(ncmOrder, record.NCM)
				}
				ncmCounts[record.NCM]++
			}
		}
	}

	best := 0
	for _, ncm := range ncmOrder {
		if ncmCounts[ncm] > best {
			best = ncmCounts[ncm]
			meta.PrimaryNCM = ncm
		}
	}
	return meta
}
