package main

import (
	"time"
)

// PriceBar is one daily OHLCV row, ordered by date ascending.
type PriceBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adjClose"`
	Volume   int64     `json:"volume"`
}

// CompanyProfile is the result of a SUBMIT action. It replaces the
// previously displayed profile wholesale.
type CompanyProfile struct {
	Symbol      string `json:"symbol"`
	DisplayName string `json:"displayName"`
	LogoURL     string `json:"logoUrl"`
	Description string `json:"description"`
}

// IndicatorPoint is one EMA sample, same date domain as the input bars.
type IndicatorPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ForecastRequest captures the inputs of one FORECAST action.
type ForecastRequest struct {
	Symbol      string    `json:"symbol"`
	EndDate     time.Time `json:"endDate"`
	HorizonDays int       `json:"horizonDays"`
}

// ForecastResult holds two parallel prediction series aligned to the
// same horizon-length sequence of dates starting the day after EndDate.
type ForecastResult struct {
	Symbol string      `json:"symbol"`
	Dates  []time.Time `json:"dates"`
	SVR    []float64   `json:"svr"`
	Linear []float64   `json:"linear"`
}

// ChartSeries is one named trace of a chart.
type ChartSeries struct {
	Name string    `json:"name"`
	Mode string    `json:"mode"`
	X    []string  `json:"x"`
	Y    []float64 `json:"y"`
}

// ChartSpec is the plot description consumed by the frontend's charting
// library. The backend never renders anything itself.
type ChartSpec struct {
	Title  string        `json:"title"`
	XTitle string        `json:"xTitle"`
	YTitle string        `json:"yTitle"`
	Series []ChartSeries `json:"series"`
}

// TrackedSymbol is a symbol the dashboard has charted at least once.
// The scheduler keeps its cached bars fresh.
type TrackedSymbol struct {
	Symbol      string     `json:"symbol"`
	FirstSeen   time.Time  `json:"firstSeen"`
	LastRefresh *time.Time `json:"lastRefresh"`
}

type ProfileResponse struct {
	Profile CompanyProfile `json:"profile"`
}

type ChartResponse struct {
	Symbol string    `json:"symbol"`
	Count  int       `json:"count"`
	Chart  ChartSpec `json:"chart"`
}

type ForecastResponse struct {
	Symbol string         `json:"symbol"`
	Days   int            `json:"days"`
	Result ForecastResult `json:"result"`
	Chart  ChartSpec      `json:"chart"`
}
