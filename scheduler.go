package main

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler refreshes the cached daily bars of every tracked symbol
// once a day, so repeat chart requests hit a warm cache.
type Scheduler struct {
	loader   *PriceLoader
	database *Database
	cron     *cron.Cron
}

// NewScheduler creates a scheduler pinned to US Eastern time, the
// timezone the trading day closes in.
func NewScheduler(loader *PriceLoader, database *Database) (*Scheduler, error) {
	etLocation, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, err
	}

	c := cron.New(cron.WithLocation(etLocation))

	return &Scheduler{
		loader:   loader,
		database: database,
		cron:     c,
	}, nil
}

// Start schedules the nightly refresh at 18:00 Eastern, after the close.
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc("0 18 * * 1-5", func() {
		log.Println("[Scheduler] Starting nightly cache refresh...")
		s.refreshTrackedSymbols()
	})

	if err != nil {
		log.Printf("[Scheduler] Failed to schedule task: %v", err)
		return
	}

	s.cron.Start()
	log.Println("[Scheduler] Scheduler started - tracked symbols refresh weekdays at 6:00 PM Eastern")
}

func (s *Scheduler) refreshTrackedSymbols() {
	symbols, err := s.database.GetTrackedSymbols()
	if err != nil {
		log.Printf("[Scheduler] Error getting tracked symbols: %v", err)
		return
	}

	if len(symbols) == 0 {
		log.Println("[Scheduler] No tracked symbols to refresh")
		return
	}

	log.Printf("[Scheduler] Refreshing %d tracked symbols...", len(symbols))

	successCount := 0
	failCount := 0

	for _, symbol := range symbols {
		if err := s.loader.RefreshSymbol(symbol.Symbol); err != nil {
			log.Printf("[Scheduler] Failed to refresh %s: %v", symbol.Symbol, err)
			failCount++
			continue
		}
		successCount++

		// Small delay between requests to avoid rate limiting
		time.Sleep(2 * time.Second)
	}

	log.Printf("[Scheduler] Refresh completed: %d succeeded, %d failed", successCount, failCount)
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	log.Println("[Scheduler] Stopping scheduler...")
	s.cron.Stop()
	log.Println("[Scheduler] Scheduler stopped")
}
