package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestRecentRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	got, err := st.LoadRecent(ctx)
	if err != nil {
		t.Fatalf("LoadRecent on empty store: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no recent searches, got %v", got)
	}

	if err := st.SaveRecent(ctx, []string{"Paris", "London"}); err != nil {
		t.Fatalf("SaveRecent failed: %v", err)
	}
	if err := st.SaveRecent(ctx, []string{"Rome", "Paris", "London"}); err != nil {
		t.Fatalf("SaveRecent failed: %v", err)
	}

	got, err = st.LoadRecent(ctx)
	if err != nil {
		t.Fatalf("LoadRecent failed: %v", err)
	}
	if want := []string{"Rome", "Paris", "London"}; !reflect.DeepEqual(got, want) {
		t.Errorf("LoadRecent = %v, want %v", got, want)
	}

	if err := st.ClearRecent(ctx); err != nil {
		t.Fatalf("ClearRecent failed: %v", err)
	}
	if got, _ := st.LoadRecent(ctx); len(got) != 0 {
		t.Errorf("after ClearRecent got %v", got)
	}
}

func TestRecentPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	st, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := st.SaveRecent(ctx, []string{"Oslo"}); err != nil {
		t.Fatalf("SaveRecent failed: %v", err)
	}
	st.Close()

	st, err = NewStore(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer st.Close()

	got, err := st.LoadRecent(ctx)
	if err != nil {
		t.Fatalf("LoadRecent failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Oslo"}) {
		t.Errorf("LoadRecent = %v, want [Oslo]", got)
	}
}

func TestLookups(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	base := time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC)
	entries := []Lookup{
		{Kind: "city", Query: "Paris", Resolved: "Paris", Success: true, CreatedAt: base},
		{Kind: "city", Query: "Atlantis", Success: false, Message: "not found", CreatedAt: base.Add(time.Minute)},
		{Kind: "coords", Query: "51.5,-0.12", Resolved: "London", Success: true, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, l := range entries {
		if err := st.RecordLookup(ctx, l); err != nil {
			t.Fatalf("RecordLookup failed: %v", err)
		}
	}

	got, err := st.Lookups(ctx, 2)
	if err != nil {
		t.Fatalf("Lookups failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d lookups, want 2", len(got))
	}
	if got[0].Resolved != "London" || got[0].Kind != "coords" || !got[0].Success {
		t.Errorf("newest = %+v", got[0])
	}
	if got[1].Query != "Atlantis" || got[1].Success || got[1].Message != "not found" {
		t.Errorf("second = %+v", got[1])
	}
	if !got[1].CreatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("CreatedAt = %v", got[1].CreatedAt)
	}
}
