package layout

// SectionBand is the vertical extent of a named logical section on a page.
type SectionBand struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

func (b SectionBand) Height() float64 { return b.Bottom - b.Top }

// TableBBox is a padded rectangle expected to contain exactly one table.
type TableBBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

func (b TableBBox) Height() float64 { return b.Y1 - b.Y0 }

// ClampTo shrinks the bbox to the page bounds.
func (b TableBBox) ClampTo(page Page) TableBBox {
	if b.X0 < 0 {
		b.X0 = 0
	}
	if b.Y0 < 0 {
		b.Y0 = 0
	}
	if b.X1 > page.Width {
		b.X1 = page.Width
	}
	if b.Y1 > page.Height {
		b.Y1 = page.Height
	}
	return b
}

// Minimum geometry thresholds below which a located region is considered
// degenerate rather than usable.
const (
	MinBandHeight  = 10.0
	MinTableHeight = 20.0
)
