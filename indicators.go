package main

import (
	"errors"
)

// ComputeEMA computes the exact recursive exponential moving average of
// the closing prices: ema[0] = close[0], then
// ema[i] = alpha*close[i] + (1-alpha)*ema[i-1] with alpha = 2/(span+1).
// One output point per input bar, no warm-up gap.
func ComputeEMA(bars []PriceBar, span int) ([]IndicatorPoint, error) {
	if span <= 0 {
		return nil, errors.New("span must be positive")
	}
	if len(bars) == 0 {
		return nil, errors.New("no bars to compute EMA over")
	}

	alpha := 2.0 / (float64(span) + 1.0)
	points := make([]IndicatorPoint, len(bars))

	ema := bars[0].Close
	points[0] = IndicatorPoint{Date: bars[0].Date, Value: ema}
	for i := 1; i < len(bars); i++ {
		ema = alpha*bars[i].Close + (1-alpha)*ema
		points[i] = IndicatorPoint{Date: bars[i].Date, Value: ema}
	}

	return points, nil
}

// EMASpan is the dashboard's indicator period. Not user-configurable.
const EMASpan = 20

func extractAdjCloses(bars []PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.AdjClose
	}
	return closes
}
