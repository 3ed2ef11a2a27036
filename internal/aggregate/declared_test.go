package aggregate

import (
	"regexp"
	"testing"

	"github.com/comexdesk/invoice-extract/constants"
	"github.com/comexdesk/invoice-extract/internal/entity"
	"github.com/comexdesk/invoice-extract/internal/layout"
	"github.com/comexdesk/invoice-extract/internal/profiles"
)

func summaryPage(amountText string) layout.Page {
	return layout.Page{Number: 1, Width: 600, Height: 800, Words: []layout.Word{
		{Text: "RESUMO", X0: 10, X1: 80, Top: 400, Bottom: 412},
		{Text: "GERAL", X0: 85, X1: 140, Top: 400, Bottom: 412},
		{Text: "TOTAL", X0: 10, X1: 60, Top: 430, Bottom: 442},
		{Text: "GERAL", X0: 65, X1: 110, Top: 430, Bottom: 442},
		{Text: amountText, X0: 200, X1: 260, Top: 430, Bottom: 442},
		{Text: "ITENS", X0: 10, X1: 60, Top: 450, Bottom: 462},
		{Text: "3", X0: 200, X1: 210, Top: 450, Bottom: 462},
	}}
}

func testSummary() *profiles.CompiledSummary {
	return &profiles.CompiledSummary{
		Start:  regexp.MustCompile(`(?i)resumo geral`),
		Amount: regexp.MustCompile(`(?i)total geral\s+([\d.,]+)`),
		Count:  regexp.MustCompile(`(?i)itens\s+(\d+)`),
	}
}

func TestReadDeclared_ParsesLabeledTotals(t *testing.T) {
	ix := layout.NewWordIndex(summaryPage("1.234,56"), 3.0)

	declared, warnings := ReadDeclared(ix, testSummary(), constants.CommaDecimal)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if declared == nil {
		t.Fatal("declared = nil, want totals")
	}
	if declared.Amount == nil || !declared.Amount.Equal(dec("1234.56")) {
		t.Errorf("amount = %v, want 1234.56", declared.Amount)
	}
	if declared.Count == nil || *declared.Count != 3 {
		t.Errorf("count = %v, want 3", declared.Count)
	}
	if declared.Weight != nil {
		t.Errorf("weight = %v, want nil without a weight pattern", declared.Weight)
	}
}

func TestReadDeclared_SummaryAbsent(t *testing.T) {
	page := layout.Page{Number: 1, Width: 600, Height: 800, Words: []layout.Word{
		{Text: "nothing", X0: 10, X1: 60, Top: 100, Bottom: 112},
	}}
	ix := layout.NewWordIndex(page, 3.0)

	declared, warnings := ReadDeclared(ix, testSummary(), constants.CommaDecimal)
	if declared != nil || len(warnings) != 0 {
		t.Errorf("declared=%v warnings=%v, want nil/none for absent summary", declared, warnings)
	}
}

func TestReadDeclared_UnparsableValueDegradesWithWarning(t *testing.T) {
	ix := layout.NewWordIndex(summaryPage("1,2,3"), 3.0)

	declared, warnings := ReadDeclared(ix, testSummary(), constants.CommaDecimal)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", warnings)
	}
	if warnings[0].Code != entity.WarnDeclaredUnparsable {
		t.Errorf("warning code = %s, want %s", warnings[0].Code, entity.WarnDeclaredUnparsable)
	}
	// count still parsed, so declared totals survive without the amount
	if declared == nil || declared.Amount != nil || declared.Count == nil {
		t.Errorf("declared = %+v, want count only", declared)
	}
}

func TestReadDeclared_NilSummaryProfile(t *testing.T) {
	ix := layout.NewWordIndex(summaryPage("1,00"), 3.0)
	declared, warnings := ReadDeclared(ix, nil, constants.CommaDecimal)
	if declared != nil || warnings != nil {
		t.Errorf("declared=%v warnings=%v, want nil/nil", declared, warnings)
	}
}
