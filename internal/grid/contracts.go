package grid

import (
	"github.com/comexdesk/invoice-extract/internal/layout"
)

// Settings carries the line-detection tolerances of the table-extraction
// primitive. The engine passes them through verbatim and does not otherwise
// depend on the extractor's internal configuration.
type Settings struct {
	// SnapTolerance merges nearby edges into one column/row boundary.
	SnapTolerance float64
	// TextTolerance groups words into the same row band.
	TextTolerance float64
	// IntersectionTolerance decides when ruled lines are considered to cross.
	// Unused by the text strategy; kept for ruled-line implementations.
	IntersectionTolerance float64
}

// DefaultSettings mirrors the tolerances used against observed documents.
func DefaultSettings() Settings {
	return Settings{
		SnapTolerance:         3.0,
		TextTolerance:         3.0,
		IntersectionTolerance: 3.0,
	}
}

// Extractor returns a raw grid of cell strings (rows x columns) for a bbox.
// Rows are not guaranteed rectangular and cell text is uninterpreted; all
// inference over the grid happens upstream.
type Extractor interface {
	ExtractGrid(page layout.Page, bbox layout.TableBBox, settings Settings) ([][]string, error)
}
