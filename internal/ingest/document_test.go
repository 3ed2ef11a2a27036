package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleDoc = `{
  "source": "invoice-001.pdf",
  "pages": [
    {
      "width": 600,
      "height": 800,
      "words": [
        {"text": "NCM", "x0": 20, "x1": 50, "top": 100, "bottom": 112}
      ]
    }
  ]
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDocument(t *testing.T) {
	path := writeTemp(t, "doc.json", sampleDoc)

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Source != "invoice-001.pdf" {
		t.Errorf("source = %q", doc.Source)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(doc.Pages))
	}
	if doc.Pages[0].Number != 1 {
		t.Errorf("page number defaulted to %d, want 1", doc.Pages[0].Number)
	}
	if len(doc.Pages[0].Words) != 1 {
		t.Errorf("words = %d, want 1", len(doc.Pages[0].Words))
	}
}

func TestLoadDocument_NoPages(t *testing.T) {
	path := writeTemp(t, "empty.json", `{"source": "x", "pages": []}`)
	if _, err := LoadDocument(path); err == nil {
		t.Error("want error for document without pages")
	}
}

func TestLoadDocument_BadBounds(t *testing.T) {
	path := writeTemp(t, "bad.json", `{"pages": [{"width": 0, "height": 800, "words": []}]}`)
	if _, err := LoadDocument(path); err == nil {
		t.Error("want error for non-positive page bounds")
	}
}

func TestLoadDocument_InvalidJSON(t *testing.T) {
	path := writeTemp(t, "broken.json", `{`)
	if _, err := LoadDocument(path); err == nil {
		t.Error("want error for malformed JSON")
	}
}

func TestWalkDocuments_SkipsHiddenAndNonJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".hidden.json"), []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var seen []string
	stats, err := WalkDocuments(dir, true, func(path string, doc *Document) error {
		seen = append(seen, filepath.Base(path))
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 1 || seen[0] != "a.json" {
		t.Errorf("seen = %v, want [a.json]", seen)
	}
	if stats.Matched != 1 || stats.Succeeded != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestWalkDocuments_SkipsEarlierResultOutputs(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	// output of a previous batch run sitting next to its input
	if err := os.WriteFile(filepath.Join(dir, "a.result.json"), []byte(`{"run_id": "x"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var seen []string
	stats, err := WalkDocuments(dir, true, func(path string, doc *Document) error {
		seen = append(seen, filepath.Base(path))
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 1 || seen[0] != "a.json" {
		t.Errorf("seen = %v, want [a.json]", seen)
	}
	if stats.Matched != 1 || stats.Failed != 0 {
		t.Errorf("stats = %+v, result files must not count as documents", stats)
	}
}
