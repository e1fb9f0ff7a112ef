package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ErrHorizonOutOfRange is returned when the requested horizon leaves no
// usable training rows inside the 90-day trailing window.
var ErrHorizonOutOfRange = errors.New("forecast horizon out of range")

// ErrModelFit is returned when a model fails to train on a dataset that
// passed the horizon checks. This is a server-side failure, not a bad
// request or an upstream outage.
var ErrModelFit = errors.New("model fit failed")

// Trailing lookback feeding the supervised dataset, in calendar days.
const forecastLookbackDays = 90

// Fixed split parameters, matching the original model setup.
const (
	testFraction = 0.2
	splitSeed    = 42
)

// BarLoader is the price-series dependency of the forecast engine.
type BarLoader interface {
	LoadDailyBars(symbol string, start, end time.Time) ([]PriceBar, error)
}

// ForecastEngine trains a support-vector regressor and an ordinary
// least-squares line on a shifted-target dataset built from the 90-day
// trailing adjusted-close series, then predicts one value per model for
// each day of the horizon.
type ForecastEngine struct {
	loader BarLoader
}

func NewForecastEngine(loader BarLoader) *ForecastEngine {
	return &ForecastEngine{loader: loader}
}

func (e *ForecastEngine) Forecast(req ForecastRequest) (*ForecastResult, error) {
	if req.HorizonDays <= 0 {
		return nil, fmt.Errorf("%w: horizon must be positive, got %d", ErrHorizonOutOfRange, req.HorizonDays)
	}

	start := req.EndDate.AddDate(0, 0, -forecastLookbackDays)
	bars, err := e.loader.LoadDailyBars(req.Symbol, start, req.EndDate)
	if err != nil {
		return nil, err
	}

	prices := extractAdjCloses(bars)
	n := len(prices)
	horizon := req.HorizonDays

	// Shifting the target column by the horizon consumes that many rows.
	// The horizon must leave at least two training samples after the
	// 80/20 split, or the regression slope is undefined.
	if horizon >= n || n-horizon < 3 {
		return nil, fmt.Errorf("%w: horizon %d with only %d trading days of history",
			ErrHorizonOutOfRange, horizon, n)
	}

	// Supervised dataset: row i predicts the adjusted close `horizon`
	// rows later. The trailing rows with unknown targets become the
	// future feature set.
	features := prices[:n-horizon]
	targets := prices[horizon:]
	future := prices[n-horizon:]

	xTrain, yTrain, _, _ := trainTestSplit(features, targets, testFraction, splitSeed)

	svr := NewSVR()
	if err := svr.Fit(xTrain, yTrain); err != nil {
		return nil, fmt.Errorf("%w: svr: %v", ErrModelFit, err)
	}
	svrPredicted := svr.Predict(future)

	alpha, beta := stat.LinearRegression(xTrain, yTrain, nil, false)
	linearPredicted := make([]float64, len(future))
	for i, x := range future {
		linearPredicted[i] = alpha + beta*x
	}

	dates := make([]time.Time, horizon)
	for i := range dates {
		dates[i] = req.EndDate.AddDate(0, 0, i+1)
	}

	return &ForecastResult{
		Symbol: req.Symbol,
		Dates:  dates,
		SVR:    svrPredicted,
		Linear: linearPredicted,
	}, nil
}

// trainTestSplit shuffles the rows with a fixed seed and carves off the
// test fraction. The test split is kept for parity with the original
// model setup but is never scored.
func trainTestSplit(x, y []float64, testSize float64, seed int64) (xTrain, yTrain, xTest, yTest []float64) {
	n := len(x)
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	testN := int(math.Ceil(float64(n) * testSize))
	if testN > n {
		testN = n
	}

	for _, idx := range perm[:testN] {
		xTest = append(xTest, x[idx])
		yTest = append(yTest, y[idx])
	}
	for _, idx := range perm[testN:] {
		xTrain = append(xTrain, x[idx])
		yTrain = append(yTrain, y[idx])
	}
	return xTrain, yTrain, xTest, yTest
}
