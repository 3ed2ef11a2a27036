package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/comexdesk/invoice-extract/internal/layout"
)

// Document is the output of the external word-extraction collaborator for one
// file: positioned words per page. The engine never goes back to the original
// rendering; this is its only view of the document.
type Document struct {
	Source string        `json:"source"`
	Pages  []layout.Page `json:"pages"`
}

// LoadDocument reads a layout JSON file produced by the word extractor.
func LoadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}
	if doc.Source == "" {
		doc.Source = path
	}
	if err := validate(&doc); err != nil {
		return nil, fmt.Errorf("document %s: %w", path, err)
	}
	return &doc, nil
}

func validate(doc *Document) error {
	if len(doc.Pages) == 0 {
		return fmt.Errorf("no pages")
	}
	for i := range doc.Pages {
		p := &doc.Pages[i]
		if p.Number == 0 {
			p.Number = i + 1
		}
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("page %d: non-positive bounds %.1fx%.1f", p.Number, p.Width, p.Height)
		}
	}
	return nil
}
