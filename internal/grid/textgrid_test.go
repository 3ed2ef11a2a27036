package grid

import (
	"testing"

	"github.com/comexdesk/invoice-extract/internal/layout"
)

func word(text string, x0, x1, top, bottom float64) layout.Word {
	return layout.Word{Text: text, X0: x0, X1: x1, Top: top, Bottom: bottom}
}

func TestTextExtractor_BuildsGridFromWordPositions(t *testing.T) {
	page := layout.Page{Number: 1, Width: 600, Height: 800, Words: []layout.Word{
		// header row; UNIT and PRICE sit within snap tolerance, one column
		word("NCM", 20, 50, 100, 112),
		word("DESCRIPTION", 100, 190, 100, 112),
		word("QTY", 250, 280, 100, 112),
		word("UNIT", 320, 350, 100, 112),
		word("PRICE", 352, 390, 100, 112),
		// data row
		word("84715010", 20, 80, 130, 142),
		word("Widget", 100, 150, 130, 142),
		word("10", 250, 270, 130, 142),
		word("2.50", 320, 360, 130, 142),
		// word outside the bbox must be ignored
		word("FOOTER", 20, 80, 500, 512),
	}}

	extractor := NewTextExtractor()
	bbox := layout.TableBBox{X0: 0, Y0: 85, X1: 600, Y1: 200}
	grid, err := extractor.ExtractGrid(page, bbox, DefaultSettings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(grid) != 2 {
		t.Fatalf("rows = %d, want 2", len(grid))
	}
	wantHeader := []string{"NCM", "DESCRIPTION", "QTY", "UNIT PRICE"}
	wantData := []string{"84715010", "Widget", "10", "2.50"}
	for col, want := range wantHeader {
		if grid[0][col] != want {
			t.Errorf("header[%d] = %q, want %q", col, grid[0][col], want)
		}
	}
	for col, want := range wantData {
		if grid[1][col] != want {
			t.Errorf("data[%d] = %q, want %q", col, grid[1][col], want)
		}
	}
}

func TestTextExtractor_RaggedRowLeavesEmptyCells(t *testing.T) {
	page := layout.Page{Number: 1, Width: 600, Height: 800, Words: []layout.Word{
		word("A", 20, 50, 100, 112),
		word("B", 200, 250, 100, 112),
		word("only-left", 20, 60, 130, 142),
	}}

	extractor := NewTextExtractor()
	grid, err := extractor.ExtractGrid(page, layout.TableBBox{X0: 0, Y0: 90, X1: 600, Y1: 200}, DefaultSettings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid) != 2 {
		t.Fatalf("rows = %d, want 2", len(grid))
	}
	if grid[1][0] != "only-left" || grid[1][1] != "" {
		t.Errorf("ragged row = %v, want [only-left, \"\"]", grid[1])
	}
}

func TestTextExtractor_EmptyRegion(t *testing.T) {
	page := layout.Page{Number: 1, Width: 600, Height: 800}
	extractor := NewTextExtractor()

	grid, err := extractor.ExtractGrid(page, layout.TableBBox{X0: 0, Y0: 0, X1: 600, Y1: 800}, DefaultSettings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grid != nil {
		t.Errorf("grid = %v, want nil", grid)
	}
}
