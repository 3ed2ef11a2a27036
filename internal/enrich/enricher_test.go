package enrich

import (
	"context"
	"testing"

	"github.com/comexdesk/invoice-extract/internal/common"
	"github.com/comexdesk/invoice-extract/internal/entity"
)

type fakeRepo struct {
	entries map[string]entity.ReferenceEntry
	calls   int
}

func (f *fakeRepo) ByCode(_ context.Context, code string) (*entity.ReferenceEntry, error) {
	f.calls++
	entry, ok := f.entries[code]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &entry, nil
}

func TestEnricher_FillsOnlyEmptyFields(t *testing.T) {
	repo := &fakeRepo{entries: map[string]entity.ReferenceEntry{
		"REF-1": {Code: "REF-1", Description: "Reference widget", NCM: "84715010"},
	}}
	e := NewEnricher(repo, nil)

	records := []entity.ItemRecord{
		{InternalRef: "REF-1"},                                  // both fields empty, both filled
		{InternalRef: "REF-1", Description: "Document widget"},  // description kept
		{InternalRef: "REF-1", NCM: "99999999"},                 // ncm kept
	}
	e.Enrich(context.Background(), records)

	if records[0].Description != "Reference widget" || records[0].NCM != "84715010" {
		t.Errorf("record 0 not enriched: %+v", records[0])
	}
	if records[1].Description != "Document widget" {
		t.Errorf("document description overwritten: %q", records[1].Description)
	}
	if records[1].NCM != "84715010" {
		t.Errorf("record 1 ncm not filled: %q", records[1].NCM)
	}
	if records[2].NCM != "99999999" {
		t.Errorf("document ncm overwritten: %q", records[2].NCM)
	}
}

func TestEnricher_MissPassesRecordThrough(t *testing.T) {
	repo := &fakeRepo{entries: map[string]entity.ReferenceEntry{}}
	e := NewEnricher(repo, nil)

	records := []entity.ItemRecord{{InternalRef: "UNKNOWN", Description: ""}}
	e.Enrich(context.Background(), records)

	if records[0].Description != "" || records[0].NCM != "" {
		t.Errorf("miss mutated record: %+v", records[0])
	}
}

func TestEnricher_SkipsRecordsWithoutRefOrNeed(t *testing.T) {
	repo := &fakeRepo{entries: map[string]entity.ReferenceEntry{
		"REF-1": {Code: "REF-1", Description: "d", NCM: "n"},
	}}
	e := NewEnricher(repo, nil)

	records := []entity.ItemRecord{
		{InternalRef: ""}, // no key, no lookup
		{InternalRef: "REF-1", Description: "full", NCM: "full"}, // nothing to fill
	}
	e.Enrich(context.Background(), records)

	if repo.calls != 0 {
		t.Errorf("lookups = %d, want 0", repo.calls)
	}
}
