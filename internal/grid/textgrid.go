package grid

import (
	"sort"
	"strings"

	"github.com/comexdesk/invoice-extract/internal/layout"
)

// TextExtractor derives a grid from word positions alone, for tables without
// usable ruling lines. Rows come from vertical clustering; column boundaries
// come from the merged horizontal projection of all word intervals.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor { return &TextExtractor{} }

type xInterval struct {
	x0, x1 float64
}

// ExtractGrid implements Extractor.
func (e *TextExtractor) ExtractGrid(page layout.Page, bbox layout.TableBBox, settings Settings) ([][]string, error) {
	if settings.TextTolerance <= 0 || settings.SnapTolerance <= 0 {
		settings = DefaultSettings()
	}

	var words []layout.Word
	for _, w := range page.Words {
		mx := (w.X0 + w.X1) / 2
		my := (w.Top + w.Bottom) / 2
		if mx >= bbox.X0 && mx <= bbox.X1 && my >= bbox.Y0 && my <= bbox.Y1 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil, nil
	}

	rows := clusterRows(words, settings.TextTolerance)
	columns := columnBands(words, settings.SnapTolerance)

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(columns))
		for col, band := range columns {
			var parts []string
			for _, w := range row {
				if overlap(w.X0, w.X1, band.x0, band.x1) > 0 {
					parts = append(parts, w.Text)
				}
			}
			cells[col] = strings.Join(parts, " ")
		}
		out = append(out, cells)
	}
	return out, nil
}

// clusterRows groups words into row bands by top position, each row ordered
// left to right.
func clusterRows(words []layout.Word, tol float64) [][]layout.Word {
	sorted := make([]layout.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Top < sorted[j].Top })

	var rows [][]layout.Word
	current := []layout.Word{sorted[0]}
	anchor := sorted[0].Top
	for _, w := range sorted[1:] {
		if w.Top-anchor <= tol {
			current = append(current, w)
			continue
		}
		rows = append(rows, sortRow(current))
		current = []layout.Word{w}
		anchor = w.Top
	}
	rows = append(rows, sortRow(current))
	return rows
}

func sortRow(row []layout.Word) []layout.Word {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X0 < row[j].X0 })
	return row
}

// columnBands merges the x-intervals of all words into disjoint column bands.
// Intervals that overlap or sit within snap tolerance of each other collapse
// into one band; the gaps between bands are the column separators.
func columnBands(words []layout.Word, snap float64) []xInterval {
	intervals := make([]xInterval, len(words))
	for i, w := range words {
		intervals[i] = xInterval{x0: w.X0, x1: w.X1}
	}
	sort.SliceStable(intervals, func(i, j int) bool { return intervals[i].x0 < intervals[j].x0 })

	var bands []xInterval
	current := intervals[0]
	for _, iv := range intervals[1:] {
		if iv.x0 <= current.x1+snap {
			if iv.x1 > current.x1 {
				current.x1 = iv.x1
			}
			continue
		}
		bands = append(bands, current)
		current = iv
	}
	bands = append(bands, current)
	return bands
}

func overlap(a0, a1, b0, b1 float64) float64 {
	lo := a0
	if b0 > lo {
		lo = b0
	}
	hi := a1
	if b1 < hi {
		hi = b1
	}
	return hi - lo
}
