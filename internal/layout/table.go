package layout

import (
	"fmt"
	"regexp"

	"github.com/comexdesk/invoice-extract/internal/common"
)

// TableLocator narrows a section band to the rectangle containing its table
// by matching header and footer text patterns. Buffers pad the matched edges
// so the header row itself (and the last data row above a footer) stay inside
// the box.
type TableLocator struct {
	HeaderBuffer float64
	FooterBuffer float64
}

// NewTableLocator returns a locator with the given buffers; non-positive
// values fall back to 15 layout units.
func NewTableLocator(headerBuffer, footerBuffer float64) *TableLocator {
	if headerBuffer <= 0 {
		headerBuffer = 15.0
	}
	if footerBuffer <= 0 {
		footerBuffer = 15.0
	}
	return &TableLocator{HeaderBuffer: headerBuffer, FooterBuffer: footerBuffer}
}

// Locate derives a tight table bbox inside band. The horizontal extent is
// always the full page width. A missing footer match degrades to the band
// bottom. A missing header match is fatal for the section
// (common.ErrHeaderNotFound): no table can be extracted. If the trimmed
// rectangle ends up below the minimum height, the full band is retried once
// before failing.
func (t *TableLocator) Locate(ix *WordIndex, band SectionBand, headerPattern, footerPattern *regexp.Regexp) (TableBBox, error) {
	lines := ix.LinesWithin(band)

	var headerLine *Line
	for i := range lines {
		if headerPattern.MatchString(lines[i].Text()) {
			headerLine = &lines[i]
			break
		}
	}
	if headerLine == nil {
		return TableBBox{}, common.ErrHeaderNotFound
	}

	y0 := headerLine.Top - t.HeaderBuffer
	y1 := band.Bottom
	if footerPattern != nil {
		for _, line := range lines {
			if line.Top <= headerLine.Top {
				continue
			}
			if footerPattern.MatchString(line.Text()) {
				y1 = line.Bottom + t.FooterBuffer
				break
			}
		}
	}

	page := ix.Page()
	bbox := TableBBox{X0: 0, Y0: y0, X1: page.Width, Y1: y1}.ClampTo(page)
	if bbox.Height() >= MinTableHeight {
		return bbox, nil
	}

	// Final fallback: the untrimmed band.
	bbox = TableBBox{X0: 0, Y0: band.Top, X1: page.Width, Y1: band.Bottom}.ClampTo(page)
	if bbox.Height() >= MinTableHeight {
		return bbox, nil
	}
	return TableBBox{}, fmt.Errorf("table region %.1f-%.1f too small: %w", bbox.Y0, bbox.Y1, common.ErrInvalidBand)
}
