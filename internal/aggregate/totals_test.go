package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/comexdesk/invoice-extract/internal/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleSections() map[string][]entity.ItemRecord {
	return map[string][]entity.ItemRecord{
		"paid products": {
			{Quantity: 10, UnitPrice: dec("2.50"), LineAmount: dec("25.00"), UnitWeight: dec("0.10")},
			{Quantity: 5, UnitPrice: dec("1.00"), LineAmount: dec("5.00"), UnitWeight: dec("0.20")},
		},
		"free of charge": {
			{Quantity: 2, UnitPrice: dec("0"), LineAmount: dec("0"), UnitWeight: dec("0.50")},
		},
	}
}

func TestTotals_SumsPerSectionAndGrand(t *testing.T) {
	totals := Totals(sampleSections(), nil, dec("0.05"))

	paid := totals.Sections["paid products"]
	if !paid.Subtotal.Equal(dec("30.00")) {
		t.Errorf("paid subtotal = %s, want 30.00", paid.Subtotal)
	}
	if paid.ItemCount != 2 {
		t.Errorf("paid count = %d, want 2", paid.ItemCount)
	}
	// 10x0.10 + 5x0.20 = 2.00
	if !paid.TotalWeight.Equal(dec("2.00")) {
		t.Errorf("paid weight = %s, want 2.00", paid.TotalWeight)
	}

	if totals.Grand.ItemCount != 3 {
		t.Errorf("grand count = %d, want 3", totals.Grand.ItemCount)
	}
	if !totals.Grand.Subtotal.Equal(dec("30.00")) {
		t.Errorf("grand subtotal = %s, want 30.00", totals.Grand.Subtotal)
	}
	if !totals.Grand.TotalWeight.Equal(dec("3.00")) {
		t.Errorf("grand weight = %s, want 3.00", totals.Grand.TotalWeight)
	}
	if len(totals.Discrepancies) != 0 {
		t.Errorf("discrepancies = %v, want none without declared totals", totals.Discrepancies)
	}
}

func TestTotals_DeclaredWithinToleranceNoDiscrepancy(t *testing.T) {
	declaredAmount := dec("29.98") // computed 30.00, diff 0.02 within 0.05
	declared := &entity.DeclaredTotals{Amount: &declaredAmount}

	totals := Totals(sampleSections(), declared, dec("0.05"))
	if len(totals.Discrepancies) != 0 {
		t.Errorf("discrepancies = %v, want none within tolerance", totals.Discrepancies)
	}
	if totals.Declared == nil {
		t.Error("declared totals not surfaced")
	}
}

func TestTotals_DeclaredBeyondToleranceReportsDiscrepancy(t *testing.T) {
	declaredAmount := dec("35.00") // computed 30.00, diff 5.00
	declared := &entity.DeclaredTotals{Amount: &declaredAmount}

	totals := Totals(sampleSections(), declared, dec("0.05"))
	if len(totals.Discrepancies) != 1 {
		t.Fatalf("discrepancies = %d, want 1", len(totals.Discrepancies))
	}
	d := totals.Discrepancies[0]
	if d.Metric != "amount" {
		t.Errorf("metric = %s, want amount", d.Metric)
	}
	if !d.Declared.Equal(dec("35.00")) || !d.Computed.Equal(dec("30.00")) {
		t.Errorf("declared/computed = %s/%s", d.Declared, d.Computed)
	}
	if !d.Difference.Equal(dec("5.00")) {
		t.Errorf("difference = %s, want 5.00", d.Difference)
	}
}

func TestTotals_CountMismatch(t *testing.T) {
	declaredCount := 5 // actual 3
	declared := &entity.DeclaredTotals{Count: &declaredCount}

	totals := Totals(sampleSections(), declared, dec("0.05"))
	if len(totals.Discrepancies) != 1 {
		t.Fatalf("discrepancies = %d, want 1", len(totals.Discrepancies))
	}
	if totals.Discrepancies[0].Metric != "count" {
		t.Errorf("metric = %s, want count", totals.Discrepancies[0].Metric)
	}
}

func TestTotals_EmptySections(t *testing.T) {
	totals := Totals(map[string][]entity.ItemRecord{}, nil, decimal.Zero)
	if totals.Grand.ItemCount != 0 || !totals.Grand.Subtotal.IsZero() {
		t.Errorf("grand = %+v, want zero", totals.Grand)
	}
}
