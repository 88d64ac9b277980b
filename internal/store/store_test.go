// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"testing"
	"time"

	"github.com/pdiddy/heritage-reporter/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{ReportsDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testDoc(topic string, generated time.Time) *types.ReportDocument {
	return &types.ReportDocument{
		Topic:       topic,
		GeneratedAt: generated,
		Sources: []types.SourceBlock{{
			Record:   types.SourceRecord{ID: "/a/1", Title: "Title", Type: types.TypeImage},
			Citation: types.Citation{Text: "citation", Rights: "rights unknown"},
		}},
		Diversity:  types.DiversitySummary{Accepted: 1},
		Disclaimer: types.Disclaimer,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	doc := testDoc("stained glass", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	id, err := s.Save(ctx, doc)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty ID")
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Topic != "stained glass" {
		t.Errorf("Topic = %q", got.Topic)
	}
	if len(got.Sources) != 1 || got.Sources[0].Record.ID != "/a/1" {
		t.Errorf("Sources = %+v", got.Sources)
	}
	if got.Disclaimer != types.Disclaimer {
		t.Error("archived document lost its disclaimer")
	}
}

func TestGetUnknownID(t *testing.T) {
	s := testStore(t)
	if _, err := s.Get(context.Background(), "no-such-id"); err == nil {
		t.Error("expected error for unknown ID")
	}
}

func TestListNewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	older := testDoc("older topic", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := testDoc("newer topic", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	if _, err := s.Save(ctx, older); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(ctx, newer); err != nil {
		t.Fatal(err)
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Topic != "newer topic" || entries[1].Topic != "older topic" {
		t.Errorf("order = %q, %q; want newest first", entries[0].Topic, entries[1].Topic)
	}
	if entries[0].Sources != 1 {
		t.Errorf("Sources = %d, want 1", entries[0].Sources)
	}
}

func TestListEmptyArchive(t *testing.T) {
	s := testStore(t)
	entries, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v, want none", entries)
	}
}
