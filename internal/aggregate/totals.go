// Package aggregate sums item records per section and reconciles the result
// against totals declared in the document's summary region.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/comexdesk/invoice-extract/internal/entity"
)

// DefaultTolerance is the declared-vs-computed difference below which no
// discrepancy is reported.
var DefaultTolerance = decimal.RequireFromString("0.05")

// Totals computes per-section and grand totals and, when declared totals are
// present, records discrepancies beyond tolerance. Declared values are
// preferred for display; computed sums are the fallback when declared values
// are absent. Mismatches never drop records.
func Totals(sections map[string][]entity.ItemRecord, declared *entity.DeclaredTotals, tolerance decimal.Decimal) entity.InvoiceTotals {
	if tolerance.IsZero() {
		tolerance = DefaultTolerance
	}

	out := entity.InvoiceTotals{
		Sections: make(map[string]entity.SectionTotals, len(sections)),
		Grand: entity.SectionTotals{
			Subtotal:    decimal.Zero,
			TotalWeight: decimal.Zero,
		},
	}

	for name, records := range sections {
		st := entity.SectionTotals{
			Subtotal:    decimal.Zero,
			TotalWeight: decimal.Zero,
		}
		for i := range records {
			st.Subtotal = st.Subtotal.Add(records[i].LineAmount)
			st.TotalWeight = st.TotalWeight.Add(records[i].RowWeight())
			st.ItemCount++
		}
		out.Sections[name] = st
		out.Grand.Subtotal = out.Grand.Subtotal.Add(st.Subtotal)
		out.Grand.TotalWeight = out.Grand.TotalWeight.Add(st.TotalWeight)
		out.Grand.ItemCount += st.ItemCount
	}

	if declared == nil {
		return out
	}
	out.Declared = declared

	if declared.Amount != nil {
		if diff := declared.Amount.Sub(out.Grand.Subtotal).Abs(); diff.GreaterThan(tolerance) {
			out.Discrepancies = append(out.Discrepancies, entity.Discrepancy{
				Metric:     "amount",
				Declared:   *declared.Amount,
				Computed:   out.Grand.Subtotal,
				Difference: diff,
			})
		}
	}
	if declared.Weight != nil {
		if diff := declared.Weight.Sub(out.Grand.TotalWeight).Abs(); diff.GreaterThan(tolerance) {
			out.Discrepancies = append(out.Discrepancies, entity.Discrepancy{
				Metric:     "weight",
				Declared:   *declared.Weight,
				Computed:   out.Grand.TotalWeight,
				Difference: diff,
			})
		}
	}
	if declared.Count != nil && *declared.Count != out.Grand.ItemCount {
		declaredCount := decimal.NewFromInt(int64(*declared.Count))
		computedCount := decimal.NewFromInt(int64(out.Grand.ItemCount))
		out.Discrepancies = append(out.Discrepancies, entity.Discrepancy{
			Metric:     "count",
			Declared:   declaredCount,
			Computed:   computedCount,
			Difference: declaredCount.Sub(computedCount).Abs(),
		})
	}
	return out
}
