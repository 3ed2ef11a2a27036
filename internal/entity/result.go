package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WarningCode identifies a non-fatal extraction failure.
type WarningCode string

const (
	WarnSectionNotFound     WarningCode = "SECTION_NOT_FOUND"
	WarnInvalidBand         WarningCode = "INVALID_BAND"
	WarnHeaderNotFound      WarningCode = "HEADER_NOT_FOUND"
	WarnHeaderResolutionLow WarningCode = "HEADER_RESOLUTION_LOW"
	WarnGridExtraction      WarningCode = "GRID_EXTRACTION"
	WarnNormalization       WarningCode = "NORMALIZATION"
	WarnAmountMismatch      WarningCode = "AMOUNT_MISMATCH"
	WarnDeclaredUnparsable  WarningCode = "DECLARED_UNPARSABLE"
)

// Warning records a diagnosable, non-fatal failure scoped to the smallest
// unit possible. Nothing in the engine is fatal to the overall run.
type Warning struct {
	Code    WarningCode `json:"code"`
	Section string      `json:"section,omitempty"`
	Page    int         `json:"page,omitempty"`
	Row     int         `json:"row,omitempty"`
	Field   string      `json:"field,omitempty"`
	Message string      `json:"message"`
}

// SectionTotals aggregates line items of one section.
type SectionTotals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ItemCount   int             `json:"item_count"`
	TotalWeight decimal.Decimal `json:"total_weight"`
}

// DeclaredTotals are totals printed in a secondary summary region, read
// independently from the line items.
type DeclaredTotals struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Weight *decimal.Decimal `json:"weight,omitempty"`
	Count  *int             `json:"count,omitempty"`
}

// Discrepancy records a declared-vs-computed mismatch beyond tolerance.
// Both values are surfaced; no record is dropped.
type Discrepancy struct {
	Metric     string          `json:"metric"`
	Declared   decimal.Decimal `json:"declared"`
	Computed   decimal.Decimal `json:"computed"`
	Difference decimal.Decimal `json:"difference"`
}

// InvoiceTotals carries per-section and grand totals plus reconciliation
// results. Declared values are preferred for display when present; computed
// sums are the fallback.
type InvoiceTotals struct {
	Sections      map[string]SectionTotals `json:"sections"`
	Grand         SectionTotals            `json:"grand"`
	Declared      *DeclaredTotals          `json:"declared,omitempty"`
	Discrepancies []Discrepancy            `json:"discrepancies,omitempty"`
}

// InvoiceMetadata is derived from the extracted records.
type InvoiceMetadata struct {
	Supplier   string `json:"supplier,omitempty"`
	InvoiceNo  string `json:"invoice_number,omitempty"`
	PrimaryNCM string `json:"primary_ncm,omitempty"`
}

// ExtractionResult is the engine's complete output for one document.
// The engine has no side effects beyond this value.
type ExtractionResult struct {
	RunID    uuid.UUID               `json:"run_id"`
	Source   string                  `json:"source"`
	Metadata InvoiceMetadata         `json:"metadata"`
	Sections map[string][]ItemRecord `json:"sections"`
	Totals   InvoiceTotals           `json:"totals"`
	Warnings []Warning               `json:"warnings,omitempty"`
}
