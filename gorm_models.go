package main

import (
	"time"
)

// GORM models for the daily-bar cache

// StockDailyBar is one cached daily OHLCV row with adjusted close.
type StockDailyBar struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Symbol    string    `gorm:"index:idx_daily_bar_symbol_date;not null" json:"symbol"`
	Date      time.Time `gorm:"index:idx_daily_bar_symbol_date;not null" json:"date"`
	Open      float64   `gorm:"not null" json:"open"`
	High      float64   `gorm:"not null" json:"high"`
	Low       float64   `gorm:"not null" json:"low"`
	Close     float64   `gorm:"not null" json:"close"`
	AdjClose  float64   `gorm:"not null" json:"adjClose"`
	Volume    int64     `gorm:"not null" json:"volume"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table name for StockDailyBar
func (StockDailyBar) TableName() string {
	return "stock_daily_bars"
}

// StockSymbol records every symbol the dashboard has charted, so the
// scheduler knows which caches to refresh.
type StockSymbol struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Symbol      string     `gorm:"uniqueIndex;not null" json:"symbol"`
	FirstSeen   time.Time  `gorm:"autoCreateTime" json:"firstSeen"`
	LastRefresh *time.Time `gorm:"" json:"lastRefresh"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table name for StockSymbol
func (StockSymbol) TableName() string {
	return "stock_symbols"
}

// Get all model types for auto migration
var allModels = []interface{}{
	&StockDailyBar{},
	&StockSymbol{},
}
