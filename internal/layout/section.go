package layout

import (
	"fmt"
	"regexp"

	"github.com/comexdesk/invoice-extract/internal/common"
)

// LocateSection finds the vertical band of a named section using textual
// markers. The first line matching startPattern sets the band top (at the
// line's bottom edge); the first line strictly below it matching endPattern
// sets the band bottom (at that line's top edge). A missing end marker
// degrades to the page bottom. A missing start marker means the section is
// absent from the page (common.ErrSectionNotFound).
//
// Patterns are expected to be compiled case-insensitively; the profile layer
// guarantees that.
func LocateSection(ix *WordIndex, startPattern, endPattern *regexp.Regexp) (SectionBand, error) {
	lines := ix.Lines()

	top := -1.0
	for _, line := range lines {
		if startPattern.MatchString(line.Text()) {
			top = line.Bottom
			break
		}
	}
	if top < 0 {
		return SectionBand{}, common.ErrSectionNotFound
	}

	bottom := ix.Page().Height
	if endPattern != nil {
		for _, line := range lines {
			if line.Top <= top {
				continue
			}
			if endPattern.MatchString(line.Text()) {
				bottom = line.Top
				break
			}
		}
	}

	band := SectionBand{Top: top, Bottom: bottom}
	if band.Height() < MinBandHeight {
		return SectionBand{}, fmt.Errorf("band %.1f-%.1f: %w", band.Top, band.Bottom, common.ErrInvalidBand)
	}
	return band, nil
}
