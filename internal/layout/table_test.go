package layout

import (
	"errors"
	"regexp"
	"testing"

	"github.com/comexdesk/invoice-extract/internal/common"
)

var (
	reHeader = regexp.MustCompile(`(?i)ncm.*description`)
	reFooter = regexp.MustCompile(`(?i)total`)
)

func tablePage() Page {
	return Page{Number: 1, Width: 600, Height: 800, Words: []Word{
		word("NCM", 20, 50, 100, 112),
		word("DESCRIPTION", 100, 190, 100, 112),
		word("84715010", 20, 80, 130, 142),
		word("Widget", 100, 150, 130, 142),
		word("TOTAL", 100, 140, 200, 212),
	}}
}

func TestTableLocator_HeaderAndFooter(t *testing.T) {
	ix := NewWordIndex(tablePage(), 3.0)
	loc := NewTableLocator(15, 15)

	bbox, err := loc.Locate(ix, SectionBand{Top: 50, Bottom: 400}, reHeader, reFooter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bbox.Y0 != 85 {
		t.Errorf("y0 = %.1f, want 85 (header top minus buffer)", bbox.Y0)
	}
	if bbox.Y1 != 227 {
		t.Errorf("y1 = %.1f, want 227 (footer bottom plus buffer)", bbox.Y1)
	}
	if bbox.X0 != 0 || bbox.X1 != 600 {
		t.Errorf("horizontal extent = %.1f-%.1f, want full page width", bbox.X0, bbox.X1)
	}
}

func TestTableLocator_MissingFooterFallsBackToBandBottom(t *testing.T) {
	ix := NewWordIndex(tablePage(), 3.0)
	loc := NewTableLocator(15, 15)

	bbox, err := loc.Locate(ix, SectionBand{Top: 50, Bottom: 180}, reHeader, regexp.MustCompile(`(?i)never`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bbox.Y1 != 180 {
		t.Errorf("y1 = %.1f, want band bottom 180", bbox.Y1)
	}
}

func TestTableLocator_HeaderMissingIsFatalForSection(t *testing.T) {
	ix := NewWordIndex(tablePage(), 3.0)
	loc := NewTableLocator(15, 15)

	_, err := loc.Locate(ix, SectionBand{Top: 50, Bottom: 400}, regexp.MustCompile(`(?i)no header here`), reFooter)
	if !errors.Is(err, common.ErrHeaderNotFound) {
		t.Errorf("err = %v, want ErrHeaderNotFound", err)
	}
}

func TestTableLocator_TinyRegionRetriesFullBand(t *testing.T) {
	// Footer sits right under the header so the trimmed region is below the
	// minimum height; the locator retries with the whole band.
	page := Page{Number: 1, Width: 600, Height: 800, Words: []Word{
		word("NCM", 20, 50, 100, 103),
		word("DESCRIPTION", 100, 190, 100, 103),
		word("TOTAL", 100, 140, 105, 106),
	}}
	ix := NewWordIndex(page, 3.0)
	loc := NewTableLocator(1, 1)

	band := SectionBand{Top: 62, Bottom: 400}
	bbox, err := loc.Locate(ix, band, reHeader, reFooter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bbox.Y0 != band.Top || bbox.Y1 != band.Bottom {
		t.Errorf("bbox = %+v, want full band %.1f-%.1f", bbox, band.Top, band.Bottom)
	}
}

func TestTableLocator_TinyBandFails(t *testing.T) {
	page := Page{Number: 1, Width: 600, Height: 800, Words: []Word{
		word("NCM", 20, 50, 5, 11),
		word("DESCRIPTION", 100, 190, 5, 11),
	}}
	ix := NewWordIndex(page, 3.0)
	loc := NewTableLocator(1, 1)

	_, err := loc.Locate(ix, SectionBand{Top: 0, Bottom: 15}, reHeader, nil)
	if !errors.Is(err, common.ErrInvalidBand) {
		t.Errorf("err = %v, want ErrInvalidBand", err)
	}
}
