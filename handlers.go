package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const queryDateFormat = "2006-01-02"

// Missing inputs are a no-op, not an error: the handler answers 204 and
// the frontend leaves whatever it is currently displaying unchanged.
func noUpdate(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// getProfile handles the SUBMIT action.
func (ws *WebServer) getProfile(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		log.Println("[API] No stock selected")
		noUpdate(c)
		return
	}

	profile := ws.metadata.FetchProfile(symbol)
	c.JSON(http.StatusOK, ProfileResponse{Profile: profile})
}

// getPriceChart handles the STOCK PRICE action.
func (ws *WebServer) getPriceChart(c *gin.Context) {
	symbol, start, end, ok := ws.rangeParams(c)
	if !ok {
		return
	}

	bars, err := ws.loader.LoadDailyBars(symbol, start, end)
	if err != nil {
		ws.renderLoadError(c, symbol, err)
		return
	}

	c.JSON(http.StatusOK, ChartResponse{
		Symbol: symbol,
		Count:  len(bars),
		Chart:  BuildPriceChart(symbol, bars),
	})
}

// getIndicatorChart handles the INDICATOR action.
func (ws *WebServer) getIndicatorChart(c *gin.Context) {
	symbol, start, end, ok := ws.rangeParams(c)
	if !ok {
		return
	}

	bars, err := ws.loader.LoadDailyBars(symbol, start, end)
	if err != nil {
		ws.renderLoadError(c, symbol, err)
		return
	}

	points, err := ComputeEMA(bars, EMASpan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ChartResponse{
		Symbol: symbol,
		Count:  len(points),
		Chart:  BuildIndicatorChart(symbol, points),
	})
}

// getForecast handles the FORECAST action.
func (ws *WebServer) getForecast(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	endStr := c.Query("end")
	daysStr := c.Query("days")

	if symbol == "" || endStr == "" || daysStr == "" {
		log.Println("[API] Forecast inputs incomplete")
		noUpdate(c)
		return
	}

	end, err := time.Parse(queryDateFormat, endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be formatted YYYY-MM-DD"})
		return
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
		return
	}

	result, err := ws.engine.Forecast(ForecastRequest{
		Symbol:      symbol,
		EndDate:     end,
		HorizonDays: days,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrHorizonOutOfRange):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNoData):
			log.Printf("[API] No data available for %s", symbol)
			noUpdate(c)
		case errors.Is(err, ErrModelFit):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, ForecastResponse{
		Symbol: symbol,
		Days:   days,
		Result: *result,
		Chart:  BuildForecastChart(result, days),
	})
}

// getSymbols lists every symbol a chart was ever requested for.
func (ws *WebServer) getSymbols(c *gin.Context) {
	if ws.database == nil {
		c.JSON(http.StatusOK, []TrackedSymbol{})
		return
	}

	symbols, err := ws.database.GetTrackedSymbols()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if symbols == nil {
		symbols = []TrackedSymbol{}
	}
	c.JSON(http.StatusOK, symbols)
}

// rangeParams validates the shared (symbol, start, end) inputs of the
// price and indicator pipelines. A false return means the response has
// already been written.
func (ws *WebServer) rangeParams(c *gin.Context) (string, time.Time, time.Time, bool) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	startStr := c.Query("start")
	endStr := c.Query("end")

	if symbol == "" {
		log.Println("[API] No stock selected")
		noUpdate(c)
		return "", time.Time{}, time.Time{}, false
	}
	if startStr == "" || endStr == "" {
		log.Println("[API] Stock selected, but dates not selected")
		noUpdate(c)
		return "", time.Time{}, time.Time{}, false
	}

	start, err := time.Parse(queryDateFormat, startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be formatted YYYY-MM-DD"})
		return "", time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(queryDateFormat, endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be formatted YYYY-MM-DD"})
		return "", time.Time{}, time.Time{}, false
	}

	return symbol, start, end, true
}

func (ws *WebServer) renderLoadError(c *gin.Context, symbol string, err error) {
	if errors.Is(err, ErrNoData) {
		log.Printf("[API] No data available for %s", symbol)
		noUpdate(c)
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
