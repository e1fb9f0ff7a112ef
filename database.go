package main

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// Auto migrate tables
	if err := db.AutoMigrate(allModels...); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %v", err)
	}

	database := &Database{db: db}

	if err := database.createAdditionalIndexes(); err != nil {
		return nil, fmt.Errorf("failed to create additional indexes: %v", err)
	}

	return database, nil
}

// createAdditionalIndexes creates indexes that are not covered by GORM tags
func (d *Database) createAdditionalIndexes() error {
	// Composite unique index so re-downloads upsert instead of duplicating
	if err := d.db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_symbol_date_unique ON stock_daily_bars(symbol, date)").Error; err != nil {
		return fmt.Errorf("failed to create unique index: %v", err)
	}
	return nil
}

func (d *Database) InsertDailyBars(symbol string, bars []PriceBar) error {
	if len(bars) == 0 {
		return nil
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		for _, bar := range bars {
			result := tx.Exec(`
				INSERT OR REPLACE INTO stock_daily_bars
				(symbol, date, open, high, low, close, adj_close, volume, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				symbol, bar.Date, bar.Open, bar.High, bar.Low, bar.Close, bar.AdjClose, bar.Volume,
				time.Now(), time.Now())

			if result.Error != nil {
				return fmt.Errorf("failed to insert bar %s %s: %v", symbol, bar.Date.Format("2006-01-02"), result.Error)
			}
		}
		return nil
	})
}

func (d *Database) GetDailyBars(symbol string, start, end time.Time) ([]PriceBar, error) {
	var rows []StockDailyBar
	result := d.db.Where("symbol = ? AND date BETWEEN ? AND ?", symbol, start, end).
		Order("date ASC").
		Find(&rows)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to query bars: %v", result.Error)
	}

	var bars []PriceBar
	for _, row := range rows {
		bars = append(bars, PriceBar{
			Date:     row.Date,
			Open:     row.Open,
			High:     row.High,
			Low:      row.Low,
			Close:    row.Close,
			AdjClose: row.AdjClose,
			Volume:   row.Volume,
		})
	}

	return bars, nil
}

// GetCachedRange returns the first and last cached bar dates for a
// symbol. A zero count means nothing is cached.
func (d *Database) GetCachedRange(symbol string) (int, time.Time, time.Time, error) {
	var count int64
	err := d.db.Model(&StockDailyBar{}).
		Where("symbol = ?", symbol).
		Count(&count).Error
	if err != nil {
		return 0, time.Time{}, time.Time{}, fmt.Errorf("failed to get count: %v", err)
	}
	if count == 0 {
		return 0, time.Time{}, time.Time{}, nil
	}

	var earliest, latest StockDailyBar

	err = d.db.Where("symbol = ?", symbol).Order("date ASC").First(&earliest).Error
	if err != nil {
		return 0, time.Time{}, time.Time{}, fmt.Errorf("failed to get earliest date: %v", err)
	}
	err = d.db.Where("symbol = ?", symbol).Order("date DESC").First(&latest).Error
	if err != nil {
		return 0, time.Time{}, time.Time{}, fmt.Errorf("failed to get latest date: %v", err)
	}

	return int(count), earliest.Date, latest.Date, nil
}

// TrackSymbol remembers a symbol so the scheduler refreshes its cache.
func (d *Database) TrackSymbol(symbol string) error {
	row := StockSymbol{Symbol: symbol, FirstSeen: time.Now()}

	result := d.db.Where("symbol = ?", symbol).FirstOrCreate(&row)
	if result.Error != nil {
		return fmt.Errorf("failed to track symbol: %v", result.Error)
	}
	return nil
}

func (d *Database) GetTrackedSymbols() ([]TrackedSymbol, error) {
	var rows []StockSymbol
	result := d.db.Order("first_seen DESC").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query tracked symbols: %v", result.Error)
	}

	var symbols []TrackedSymbol
	for _, row := range rows {
		symbols = append(symbols, TrackedSymbol{
			Symbol:      row.Symbol,
			FirstSeen:   row.FirstSeen,
			LastRefresh: row.LastRefresh,
		})
	}
	return symbols, nil
}

func (d *Database) UpdateLastRefresh(symbol string) error {
	result := d.db.Model(&StockSymbol{}).
		Where("symbol = ?", symbol).
		Update("last_refresh", time.Now())
	if result.Error != nil {
		return fmt.Errorf("failed to update last refresh: %v", result.Error)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %v", err)
	}
	return sqlDB.Close()
}
