package layout

import (
	"sort"
	"strings"
)

// Word is an atomic positioned token extracted from a page. Coordinates grow
// rightward (x) and downward (top/bottom), in layout units.
type Word struct {
	Text   string  `json:"text"`
	X0     float64 `json:"x0"`
	X1     float64 `json:"x1"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Page holds the words of one document page plus its bounds.
type Page struct {
	Number int     `json:"number"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Words  []Word  `json:"words"`
}

// Line is an ordered left-to-right sequence of words sharing a vertical band.
type Line struct {
	Words  []Word
	Top    float64
	Bottom float64
}

// Text joins the line's words with single spaces.
func (l Line) Text() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// DefaultLineTolerance is the vertical grouping tolerance for line
// reconstruction, in layout units.
const DefaultLineTolerance = 3.0

// WordIndex wraps one page's words into a queryable structure. It owns the
// words for the duration of one page's processing and holds no other state,
// so concurrent reads are safe.
type WordIndex struct {
	page Page
	tol  float64
}

// NewWordIndex builds an index over page. A non-positive tolerance falls back
// to DefaultLineTolerance.
func NewWordIndex(page Page, lineTolerance float64) *WordIndex {
	if lineTolerance <= 0 {
		lineTolerance = DefaultLineTolerance
	}
	return &WordIndex{page: page, tol: lineTolerance}
}

func (ix *WordIndex) Page() Page { return ix.page }

// Lines reconstructs all text lines on the page, top to bottom.
func (ix *WordIndex) Lines() []Line {
	return ix.cluster(ix.page.Words)
}

// LinesWithin reconstructs lines from words whose vertical center falls
// inside band.
func (ix *WordIndex) LinesWithin(band SectionBand) []Line {
	var within []Word
	for _, w := range ix.page.Words {
		mid := (w.Top + w.Bottom) / 2
		if mid >= band.Top && mid <= band.Bottom {
			within = append(within, w)
		}
	}
	return ix.cluster(within)
}

// cluster groups words into lines by top position within the index tolerance,
// then orders lines top to bottom and words left to right.
func (ix *WordIndex) cluster(words []Word) []Line {
	if len(words) == 0 {
		return nil
	}
	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Top < sorted[j].Top })

	var lines []Line
	current := Line{Words: []Word{sorted[0]}, Top: sorted[0].Top, Bottom: sorted[0].Bottom}
	anchor := sorted[0].Top
	for _, w := range sorted[1:] {
		if w.Top-anchor <= ix.tol {
			current.Words = append(current.Words, w)
			if w.Top < current.Top {
				current.Top = w.Top
			}
			if w.Bottom > current.Bottom {
				current.Bottom = w.Bottom
			}
			continue
		}
		lines = append(lines, finishLine(current))
		current = Line{Words: []Word{w}, Top: w.Top, Bottom: w.Bottom}
		anchor = w.Top
	}
	lines = append(lines, finishLine(current))
	return lines
}

func finishLine(l Line) Line {
	sort.SliceStable(l.Words, func(i, j int) bool { return l.Words[i].X0 < l.Words[j].X0 })
	return l
}
