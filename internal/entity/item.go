package entity

import (
	"github.com/shopspring/decimal"
)

// ItemRecord is one normalized invoice line item, the terminal unit of output.
// Amounts are decimals; floats never carry money past the normalizer.
type ItemRecord struct {
	Code         string          `json:"code,omitempty"`
	Description  string          `json:"description,omitempty"`
	InternalRef  string          `json:"internal_ref,omitempty"`
	NCM          string          `json:"ncm,omitempty"`
	Covered      bool            `json:"covered"`
	Quantity     int             `json:"quantity"`
	UnitWeight   decimal.Decimal `json:"unit_weight"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineAmount   decimal.Decimal `json:"line_amount"`
	Supplier     string          `json:"supplier,omitempty"`
	InvoiceNo    string          `json:"invoice_number,omitempty"`
	Manufacturer string          `json:"manufacturer,omitempty"`

	// Section is the named document section the row was extracted from.
	Section string `json:"section"`
	// SourceRow is the row index within the raw grid, for diagnostics.
	SourceRow int `json:"source_row"`
	// AmountFromSource is true when LineAmount was read from the document
	// rather than computed as quantity x unit price. A source value is kept
	// as authoritative even when it disagrees with the computed one.
	AmountFromSource bool `json:"amount_from_source"`
}

// ComputedAmount returns quantity x unit price, available for reconciliation
// against a source-supplied line amount.
func (r *ItemRecord) ComputedAmount() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// RowWeight returns unit weight x quantity.
func (r *ItemRecord) RowWeight() decimal.Decimal {
	return r.UnitWeight.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// ReferenceEntry is a row from the read-only reference store, keyed by the
// document's internal product code.
type ReferenceEntry struct {
	Code        string `json:"code" csv:"code"`
	Description string `json:"description" csv:"description"`
	NCM         string `json:"ncm" csv:"ncm"`
}
