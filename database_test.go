package main

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDatabase_InsertAndQueryBars(t *testing.T) {
	db := newTestDatabase(t)
	bars := linearBars(10, 100, 1)

	if err := db.InsertDailyBars("TSLA", bars); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := db.GetDailyBars("TSLA", bars[0].Date, bars[len(bars)-1].Date)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 bars, got %d", len(got))
	}
	if got[0].Close != 100 || got[9].Close != 109 {
		t.Errorf("unexpected closes: first=%v last=%v", got[0].Close, got[9].Close)
	}
	for i := 1; i < len(got); i++ {
		if !got[i].Date.After(got[i-1].Date) {
			t.Errorf("bars not date ascending at %d", i)
		}
	}
}

func TestDatabase_ReInsertUpserts(t *testing.T) {
	db := newTestDatabase(t)
	bars := linearBars(5, 100, 1)

	if err := db.InsertDailyBars("AAPL", bars); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	// Same dates with revised closes must replace, not duplicate.
	for i := range bars {
		bars[i].Close += 10
	}
	if err := db.InsertDailyBars("AAPL", bars); err != nil {
		t.Fatalf("second insert: %v", err)
	}

	got, err := db.GetDailyBars("AAPL", bars[0].Date, bars[len(bars)-1].Date)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 bars after upsert, got %d", len(got))
	}
	if got[0].Close != 110 {
		t.Errorf("close = %v, want revised value 110", got[0].Close)
	}
}

func TestDatabase_GetCachedRange(t *testing.T) {
	db := newTestDatabase(t)

	count, _, _, err := db.GetCachedRange("MSFT")
	if err != nil {
		t.Fatalf("empty range: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 for unseen symbol", count)
	}

	bars := linearBars(7, 400, 1)
	if err := db.InsertDailyBars("MSFT", bars); err != nil {
		t.Fatalf("insert: %v", err)
	}

	count, first, last, err := db.GetCachedRange("MSFT")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if count != 7 {
		t.Errorf("count = %d, want 7", count)
	}
	if !first.Equal(bars[0].Date) || !last.Equal(bars[6].Date) {
		t.Errorf("range = [%v, %v], want [%v, %v]", first, last, bars[0].Date, bars[6].Date)
	}
}

func TestDatabase_TrackedSymbols(t *testing.T) {
	db := newTestDatabase(t)

	if err := db.TrackSymbol("TSLA"); err != nil {
		t.Fatalf("track: %v", err)
	}
	// Tracking twice must not duplicate.
	if err := db.TrackSymbol("TSLA"); err != nil {
		t.Fatalf("re-track: %v", err)
	}

	symbols, err := db.GetTrackedSymbols()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(symbols) != 1 || symbols[0].Symbol != "TSLA" {
		t.Fatalf("unexpected symbols: %+v", symbols)
	}
	if symbols[0].LastRefresh != nil {
		t.Error("expected nil last refresh before any refresh")
	}

	if err := db.UpdateLastRefresh("TSLA"); err != nil {
		t.Fatalf("update refresh: %v", err)
	}
	symbols, err = db.GetTrackedSymbols()
	if err != nil {
		t.Fatalf("list after refresh: %v", err)
	}
	if symbols[0].LastRefresh == nil {
		t.Error("expected last refresh to be set")
	} else if time.Since(*symbols[0].LastRefresh) > time.Minute {
		t.Errorf("last refresh %v is stale", *symbols[0].LastRefresh)
	}
}
