// Package extract turns a raw cell grid into normalized item records:
// header resolution against the synonym table, row classification, numeric
// normalization and record assembly.
package extract

import (
	"fmt"
	"strings"

	"github.com/comexdesk/invoice-extract/constants"
	"github.com/comexdesk/invoice-extract/internal/common"
)

// headerScanWindow caps how many leading grid rows are considered as header
// candidates.
const headerScanWindow = 5

// DefaultMinHeaderMatches is the minimum number of matched canonical fields
// for a row to be accepted as the table header.
const DefaultMinHeaderMatches = 3

// ColumnMap records, per column index, the canonical field it represents.
// Columns with no recognized header stay absent and their content is ignored
// downstream.
type ColumnMap map[int]constants.Field

// ResolveHeader scores candidate header rows against the synonym table and
// returns the best row index with its column mapping. Matching is
// case-insensitive exact against the synonym list, never substring, keeping
// resolution deterministic. The top-most row wins ties.
func ResolveHeader(grid [][]string, synonyms map[constants.Field][]string, minMatches int) (int, ColumnMap, error) {
	if minMatches <= 0 {
		minMatches = DefaultMinHeaderMatches
	}
	if len(grid) == 0 {
		return 0, nil, fmt.Errorf("empty grid: %w", common.ErrHeaderResolutionLow)
	}

	lookup := make(map[string]constants.Field)
	for field, spellings := range synonyms {
		for _, s := range spellings {
			lookup[normalizeHeaderCell(s)] = field
		}
	}

	window := len(grid)
	if window > headerScanWindow {
		window = headerScanWindow
	}

	bestRow := -1
	bestScore := 0
	var bestMap ColumnMap
	for i := 0; i < window; i++ {
		score, colMap := scoreRow(grid[i], lookup)
		if score > bestScore {
			bestRow = i
			bestScore = score
			bestMap = colMap
		}
	}

	if bestScore < minMatches {
		return 0, nil, fmt.Errorf("best header row matched %d fields, need %d: %w",
			bestScore, minMatches, common.ErrHeaderResolutionLow)
	}
	return bestRow, bestMap, nil
}

func scoreRow(row []string, lookup map[string]constants.Field) (int, ColumnMap) {
	colMap := make(ColumnMap)
	seen := make(map[constants.Field]bool)
	score := 0
	for col, cell := range row {
		normalized := normalizeHeaderCell(cell)
		if normalized == "" {
			continue
		}
		field, ok := lookup[normalized]
		if !ok || seen[field] {
			continue
		}
		colMap[col] = field
		seen[field] = true
		score++
	}
	return score, colMap
}

// normalizeHeaderCell lowers, trims and collapses inner whitespace so that
// multi-line header cells still match their synonym spelling.
func normalizeHeaderCell(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
