package ingest

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// ResultSuffix marks files the engine wrote itself. Batch runs place results
// next to their inputs, so the walk must never pick them up as documents.
const ResultSuffix = ".result.json"

// DirStats aggregates a directory walk.
type DirStats struct {
	Scanned   int
	Matched   int
	Succeeded int
	Failed    int
}

// WalkDocuments walks root, skips hidden entries if requested, and invokes fn
// for every layout JSON file. Per-file failures are counted, not propagated;
// the walk continues.
func WalkDocuments(root string, skipHidden bool, fn func(path string, doc *Document) error) (DirStats, error) {
	var stats DirStats
	if strings.TrimSpace(root) == "" {
		return stats, errors.New("root path is required")
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			stats.Failed++
			return nil
		}
		if skipHidden && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(path), ResultSuffix) {
			return nil
		}
		stats.Matched++

		doc, err := LoadDocument(path)
		if err != nil {
			stats.Failed++
			return nil
		}
		if err := fn(path, doc); err != nil {
			stats.Failed++
			return nil
		}
		stats.Succeeded++
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
