package main

import (
	"fmt"
	"time"
)

// Chart builders translate pipeline results into the JSON chart specs
// the frontend's plotting library renders. Pure data mapping, no layout.

const chartDateFormat = "2006-01-02"

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(chartDateFormat)
	}
	return out
}

func barDates(bars []PriceBar) []string {
	out := make([]string, len(bars))
	for i, b := range bars {
		out[i] = b.Date.Format(chartDateFormat)
	}
	return out
}

// BuildPriceChart plots opening and closing price against date.
func BuildPriceChart(symbol string, bars []PriceBar) ChartSpec {
	x := barDates(bars)
	opens := make([]float64, len(bars))
	closes := make([]float64, len(bars))
	for i, b := range bars {
		opens[i] = b.Open
		closes[i] = b.Close
	}

	return ChartSpec{
		Title:  fmt.Sprintf("%s - Closing and Opening Price vs Date", symbol),
		XTitle: "Date",
		YTitle: "Price",
		Series: []ChartSeries{
			{Name: "Open", Mode: "lines", X: x, Y: opens},
			{Name: "Close", Mode: "lines", X: x, Y: closes},
		},
	}
}

// BuildIndicatorChart plots the EMA-20 series against date.
func BuildIndicatorChart(symbol string, points []IndicatorPoint) ChartSpec {
	x := make([]string, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = p.Date.Format(chartDateFormat)
		y[i] = p.Value
	}

	return ChartSpec{
		Title:  fmt.Sprintf("%s - Exponential Moving Average (20) vs Date", symbol),
		XTitle: "Date",
		YTitle: "EMA-20",
		Series: []ChartSeries{
			{Name: "EWA_20", Mode: "lines", X: x, Y: y},
		},
	}
}

// BuildForecastChart plots both models' predictions over the horizon.
func BuildForecastChart(result *ForecastResult, horizonDays int) ChartSpec {
	x := formatDates(result.Dates)

	return ChartSpec{
		Title:  fmt.Sprintf("%s Stock Price Forecast - %d Days", result.Symbol, horizonDays),
		XTitle: "Date",
		YTitle: "Price",
		Series: []ChartSeries{
			{Name: "SVR Forecast", Mode: "lines", X: x, Y: result.SVR},
			{Name: "Linear Regression Forecast", Mode: "lines", X: x, Y: result.Linear},
		},
	}
}
