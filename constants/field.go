package constants

import (
	"strings"
)

// Field is a canonical attribute of an extracted line item.
type Field string

const (
	FieldCode         Field = "code"
	FieldDescription  Field = "description"
	FieldInternalRef  Field = "internal_ref"
	FieldNCM          Field = "ncm"
	FieldCoverage     Field = "coverage"
	FieldQuantity     Field = "quantity"
	FieldUnitWeight   Field = "unit_weight"
	FieldUnitPrice    Field = "unit_price"
	FieldLineAmount   Field = "line_amount"
	FieldSupplier     Field = "supplier"
	FieldInvoiceNo    Field = "invoice_number"
	FieldManufacturer Field = "manufacturer"
)

var allFields = []Field{
	FieldCode,
	FieldDescription,
	FieldInternalRef,
	FieldNCM,
	FieldCoverage,
	FieldQuantity,
	FieldUnitWeight,
	FieldUnitPrice,
	FieldLineAmount,
	FieldSupplier,
	FieldInvoiceNo,
	FieldManufacturer,
}

func AllFields() []Field {
	out := make([]Field, len(allFields))
	copy(out, allFields)
	return out
}

// defaultSynonyms maps each canonical field to the header spellings seen in
// commercial invoices and packing lists (mixed English/Portuguese vendors).
// Matching is case-insensitive exact, never substring.
var defaultSynonyms = map[Field][]string{
	FieldCode:         {"code", "codigo", "código", "part number", "part no", "p/n", "product code"},
	FieldDescription:  {"description", "descricao", "descrição", "goods description", "description of goods", "produto"},
	FieldInternalRef:  {"item", "ref", "reference", "internal ref", "cod interno", "cod. interno", "item code"},
	FieldNCM:          {"ncm", "ncm/sh", "ncm code", "hs code", "hs", "tariff code", "classificacao fiscal", "classificação fiscal"},
	FieldQuantity:     {"qty", "quantity", "quantidade", "qtd", "qtde", "q.ty"},
	FieldUnitWeight:   {"unit weight", "net weight", "peso unit", "peso unitario", "peso unitário", "peso liquido", "peso líquido", "weight"},
	FieldUnitPrice:    {"unit price", "price", "preco unit", "preço unit", "preco unitario", "preço unitário", "unit value", "price/unit"},
	FieldLineAmount:   {"amount", "total", "total price", "total amount", "valor total", "line total"},
	FieldSupplier:     {"supplier", "exporter", "fornecedor", "shipper"},
	FieldInvoiceNo:    {"invoice", "invoice no", "invoice no.", "invoice number", "fatura", "invoice nr"},
	FieldManufacturer: {"manufacturer", "producer", "fabricante", "maker"},
}

// DefaultSynonyms returns a copy of the built-in header synonym table.
func DefaultSynonyms() map[Field][]string {
	out := make(map[Field][]string, len(defaultSynonyms))
	for f, syns := range defaultSynonyms {
		cp := make([]string, len(syns))
		copy(cp, syns)
		out[f] = cp
	}
	return out
}

// ParseField canonicalizes a field name as spelled in profile files.
func ParseField(input string) (Field, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, f := range allFields {
		if normalized == string(f) {
			return f, true
		}
	}
	return "", false
}

// IsNumeric reports whether the field carries a numeric value.
func (f Field) IsNumeric() bool {
	switch f {
	case FieldQuantity, FieldUnitWeight, FieldUnitPrice, FieldLineAmount:
		return true
	}
	return false
}
