package extract

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/comexdesk/invoice-extract/constants"
	"github.com/comexdesk/invoice-extract/internal/entity"
)

// SectionContext carries the section-derived defaults for rows extracted
// from one named section. The coverage flag comes from here, not from any
// column, since documents do not reliably encode it per row.
type SectionContext struct {
	Name    string
	Page    int
	Covered bool
}

// Builder assembles one ItemRecord per classified data row.
type Builder struct {
	style     constants.NumberStyle
	tolerance decimal.Decimal
}

// NewBuilder creates a builder for one number style. tolerance bounds how far
// a source-supplied line amount may drift from quantity x unit price before a
// mismatch warning is raised; zero or negative falls back to 0.05.
func NewBuilder(style constants.NumberStyle, tolerance decimal.Decimal) *Builder {
	if tolerance.LessThanOrEqual(decimal.Zero) {
		tolerance = decimal.NewFromFloat(0.05)
	}
	return &Builder{style: style, tolerance: tolerance}
}

// Build maps recognized columns to their canonical fields, normalizing
// numeric cells and trim-copying text cells. Parse failures fall back to
// zero values and surface as warnings; nothing here is fatal. When the grid
// supplies a line amount it is kept as authoritative; otherwise the amount is
// computed as quantity x unit price. A source amount that disagrees with the
// computed one beyond tolerance is kept but flagged, never overwritten.
func (b *Builder) Build(row []string, rowIndex int, cols ColumnMap, sec SectionContext) (entity.ItemRecord, []entity.Warning) {
	record := entity.ItemRecord{
		Section:    sec.Name,
		Covered:    sec.Covered,
		SourceRow:  rowIndex,
		UnitWeight: decimal.Zero,
		UnitPrice:  decimal.Zero,
		LineAmount: decimal.Zero,
	}
	var warnings []entity.Warning

	warn := func(field constants.Field, err error) {
		warnings = append(warnings, entity.Warning{
			Code:    entity.WarnNormalization,
			Section: sec.Name,
			Page:    sec.Page,
			Row:     rowIndex,
			Field:   string(field),
			Message: err.Error(),
		})
	}

	amountFromSource := false
	for col, field := range cols {
		if col >= len(row) {
			// ragged row, shorter than the header
			continue
		}
		cell := row[col]

		switch field {
		case constants.FieldCode:
			record.Code = CleanText(cell)
		case constants.FieldDescription:
			record.Description = CleanText(cell)
		case constants.FieldInternalRef:
			record.InternalRef = CleanText(cell)
		case constants.FieldNCM:
			record.NCM = CleanText(cell)
		case constants.FieldSupplier:
			record.Supplier = CleanText(cell)
		case constants.FieldInvoiceNo:
			record.InvoiceNo = CleanText(cell)
		case constants.FieldManufacturer:
			record.Manufacturer = CleanText(cell)
		case constants.FieldQuantity:
			qty, err := ParseInt(cell)
			if err != nil {
				warn(field, err)
				break
			}
			if qty < 0 {
				warn(field, fmt.Errorf("negative quantity %d clamped to 0", qty))
				qty = 0
			}
			record.Quantity = qty
		case constants.FieldUnitWeight:
			weight, err := ParseAmount(cell, b.style)
			if err != nil {
				warn(field, err)
				break
			}
			record.UnitWeight = weight
		case constants.FieldUnitPrice:
			price, err := ParseAmount(cell, b.style)
			if err != nil {
				warn(field, err)
				break
			}
			if price.IsNegative() {
				warn(field, fmt.Errorf("negative unit price %s clamped to 0", price))
				price = decimal.Zero
			}
			record.UnitPrice = price
		case constants.FieldLineAmount:
			amount, err := ParseAmount(cell, b.style)
			if err != nil {
				warn(field, err)
				break
			}
			record.LineAmount = amount
			amountFromSource = true
		}
	}

	if amountFromSource {
		record.AmountFromSource = true
		if record.Quantity > 0 && !record.UnitPrice.IsZero() {
			computed := record.ComputedAmount()
			if record.LineAmount.Sub(computed).Abs().GreaterThan(b.tolerance) {
				warnings = append(warnings, entity.Warning{
					Code:    entity.WarnAmountMismatch,
					Section: sec.Name,
					Page:    sec.Page,
					Row:     rowIndex,
					Field:   string(constants.FieldLineAmount),
					Message: fmt.Sprintf("source amount %s differs from computed %s", record.LineAmount, computed),
				})
			}
		}
	} else {
		record.LineAmount = record.ComputedAmount()
	}
	return record, warnings
}
