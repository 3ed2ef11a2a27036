package extract

import (
	"strings"
)

// RowClass is the outcome of classifying one grid row.
type RowClass int

const (
	RowData RowClass = iota
	RowSkip
)

// RowClassifier flags rows as data or as total/summary/noise rows to discard.
// The keyword set comes from the document-family profile.
type RowClassifier struct {
	keywords []string
}

func NewRowClassifier(summaryKeywords []string) *RowClassifier {
	lowered := make([]string, 0, len(summaryKeywords))
	for _, kw := range summaryKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &RowClassifier{keywords: lowered}
}

// Classify returns RowSkip for rows at or above the header, rows whose
// concatenated text contains a summary keyword, and rows with no non-empty
// cells.
func (c *RowClassifier) Classify(row []string, rowIndex, headerRowIndex int) RowClass {
	if rowIndex <= headerRowIndex {
		return RowSkip
	}

	var parts []string
	for _, cell := range row {
		if trimmed := strings.TrimSpace(cell); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return RowSkip
	}

	text := strings.ToLower(strings.Join(parts, " "))
	for _, kw := range c.keywords {
		if strings.Contains(text, kw) {
			return RowSkip
		}
	}
	return RowData
}
