package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"
)

func TestPriceLoader_SecondRequestServedFromCache(t *testing.T) {
	downloads := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		downloads++
		fmt.Fprint(w, chartPayload)
	}))
	defer ts.Close()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	loader := NewPriceLoader(yahooClientFor(ts), db)

	// chartPayload covers 2024-05-30 through 2024-06-03.
	start := time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	first, err := loader.LoadDailyBars("TSLA", start, end)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if downloads != 1 {
		t.Fatalf("expected 1 download, got %d", downloads)
	}

	second, err := loader.LoadDailyBars("TSLA", start, end)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if downloads != 1 {
		t.Errorf("expected cache hit, got %d downloads", downloads)
	}
	if len(second) != len(first) {
		t.Errorf("cache returned %d bars, download returned %d", len(second), len(first))
	}

	symbols, err := db.GetTrackedSymbols()
	if err != nil {
		t.Fatalf("tracked symbols: %v", err)
	}
	if len(symbols) != 1 || symbols[0].Symbol != "TSLA" {
		t.Errorf("expected TSLA to be tracked, got %+v", symbols)
	}
}

func TestPriceLoader_WiderRangeRedownloads(t *testing.T) {
	downloads := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		downloads++
		fmt.Fprint(w, chartPayload)
	}))
	defer ts.Close()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	loader := NewPriceLoader(yahooClientFor(ts), db)

	start := time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	if _, err := loader.LoadDailyBars("TSLA", start, end); err != nil {
		t.Fatalf("first load: %v", err)
	}

	// A range reaching well before the cached window cannot be served
	// from cache.
	widerStart := start.AddDate(0, -2, 0)
	if _, err := loader.LoadDailyBars("TSLA", widerStart, end); err != nil {
		t.Fatalf("wider load: %v", err)
	}
	if downloads != 2 {
		t.Errorf("expected 2 downloads, got %d", downloads)
	}
}

func TestPriceLoader_GappyCacheRedownloads(t *testing.T) {
	downloads := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		downloads++
		fmt.Fprint(w, chartPayload)
	}))
	defer ts.Close()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Two disjoint downloads months apart. Their endpoints bracket any
	// range in between, but the rows do not cover it.
	if err := db.InsertDailyBars("TSLA", flatBars(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 10)); err != nil {
		t.Fatalf("insert january bars: %v", err)
	}
	if err := db.InsertDailyBars("TSLA", flatBars(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 10)); err != nil {
		t.Fatalf("insert june bars: %v", err)
	}

	loader := NewPriceLoader(yahooClientFor(ts), db)

	start := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	bars, err := loader.LoadDailyBars("TSLA", start, end)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if downloads != 1 {
		t.Errorf("expected the gap to force a download, got %d downloads", downloads)
	}
	if len(bars) != 3 {
		t.Errorf("expected the 3 downloaded bars, got %d", len(bars))
	}
}

// flatBars builds n consecutive daily bars at a constant price.
func flatBars(start time.Time, n int) []PriceBar {
	bars := make([]PriceBar, n)
	for i := range bars {
		d := start.AddDate(0, 0, i)
		bars[i] = PriceBar{Date: d, Open: 100, High: 101, Low: 99, Close: 100, AdjClose: 100, Volume: 1000}
	}
	return bars
}

func TestPriceLoader_NoDatabaseStillLoads(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartPayload)
	}))
	defer ts.Close()

	loader := NewPriceLoader(yahooClientFor(ts), nil)
	bars, err := loader.LoadDailyBars("TSLA", time.Now().AddDate(0, 0, -7), time.Now())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(bars) != 3 {
		t.Errorf("expected 3 bars, got %d", len(bars))
	}
}
