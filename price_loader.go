package main

import (
	"log"
	"time"
)

// PriceLoader serves daily bars for a range, reading through a SQLite
// cache in front of the Yahoo download. Every symbol it ever loads is
// tracked so the scheduler can refresh it overnight. With an empty
// cache its behavior is exactly a fresh range download.
type PriceLoader struct {
	yahoo    *YahooFinanceClient
	database *Database
}

func NewPriceLoader(yahoo *YahooFinanceClient, database *Database) *PriceLoader {
	return &PriceLoader{yahoo: yahoo, database: database}
}

// Cached bars start and end on trading days, which can sit a few
// calendar days inside the requested range. Tolerance for that gap when
// deciding whether the cache covers a request.
const coverageSlackDays = 4

// Trading calendars pause for weekends and holiday clusters, never for
// months. A wider gap between consecutive cached bars means the cache
// holds two disjoint downloads, not one covering series.
const maxInteriorGapDays = 7

func contiguousBars(bars []PriceBar) bool {
	for i := 1; i < len(bars); i++ {
		if bars[i].Date.Sub(bars[i-1].Date) > maxInteriorGapDays*24*time.Hour {
			return false
		}
	}
	return true
}

func (p *PriceLoader) LoadDailyBars(symbol string, start, end time.Time) ([]PriceBar, error) {
	if p.database != nil {
		count, first, last, err := p.database.GetCachedRange(symbol)
		if err != nil {
			log.Printf("[Loader] Cache range lookup failed for %s: %v", symbol, err)
		} else if count > 0 &&
			!first.After(start.AddDate(0, 0, coverageSlackDays)) &&
			!last.Before(end.AddDate(0, 0, -coverageSlackDays)) {
			// Endpoint coverage alone is not enough: the cached rows
			// inside the range must also form one unbroken series, or
			// the request falls between two earlier downloads.
			bars, err := p.database.GetDailyBars(symbol, start, end)
			if err == nil && len(bars) > 0 && contiguousBars(bars) {
				return bars, nil
			}
			if err != nil {
				log.Printf("[Loader] Cache read failed for %s: %v", symbol, err)
			}
		}
	}

	bars, err := p.yahoo.GetDailyBars(symbol, start, end)
	if err != nil {
		return nil, err
	}

	if p.database != nil {
		if err := p.database.InsertDailyBars(symbol, bars); err != nil {
			log.Printf("[Loader] Warning: failed to cache bars for %s: %v", symbol, err)
		}
		if err := p.database.TrackSymbol(symbol); err != nil {
			log.Printf("[Loader] Warning: failed to track symbol %s: %v", symbol, err)
		}
	}

	return bars, nil
}

// RefreshSymbol re-downloads the trailing 90 days for a tracked symbol.
func (p *PriceLoader) RefreshSymbol(symbol string) error {
	end := time.Now()
	start := end.AddDate(0, 0, -forecastLookbackDays)

	bars, err := p.yahoo.GetDailyBars(symbol, start, end)
	if err != nil {
		return err
	}
	if p.database == nil {
		return nil
	}
	if err := p.database.InsertDailyBars(symbol, bars); err != nil {
		return err
	}
	return p.database.UpdateLastRefresh(symbol)
}
