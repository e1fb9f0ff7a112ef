package main

import (
	"flag"
	"log"
	"os"
	"time"
)

func main() {
	// Command line flags
	mode := flag.String("mode", "web", "Run mode: web, cli")
	symbol := flag.String("symbol", "TSLA", "Stock symbol (default: TSLA)")
	days := flag.Int("days", 10, "Forecast horizon in days (default: 10)")
	action := flag.String("action", "profile", "CLI action: profile, prices, forecast")
	flag.Parse()

	cfg := LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	switch *mode {
	case "web":
		runWebMode(cfg)
	case "cli":
		runCLIMode(cfg, *symbol, *days, *action)
	default:
		log.Fatalf("Unknown mode: %s. Available modes: web, cli", *mode)
	}
}

func runWebMode(cfg *Config) {
	log.Println("=== Stock Sense Web Server ===")
	log.Printf("Database: %s", cfg.DBPath)
	log.Printf("Metadata provider: %s", cfg.MetadataProvider)
	log.Printf("Server will start on http://localhost:%s", cfg.Port)

	server, err := NewWebServer(cfg, true)
	if err != nil {
		log.Fatalf("Failed to initialize web server: %v", err)
	}
	defer server.Close()

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start web server: %v", err)
	}
}

// runCLIMode runs one pipeline headless. Handy for checking credentials
// and connectivity without the frontend.
func runCLIMode(cfg *Config, symbol string, days int, action string) {
	log.Println("=== Stock Sense CLI ===")
	log.Printf("Symbol: %s", symbol)
	log.Printf("Action: %s", action)

	provider, err := NewProfileProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize metadata provider: %v", err)
	}

	database, err := NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	yahoo := NewYahooFinanceClient()
	loader := NewPriceLoader(yahoo, database)

	switch action {
	case "profile":
		fetcher := NewMetadataFetcher(yahoo, provider)
		profile := fetcher.FetchProfile(symbol)
		log.Printf("Name: %s", profile.DisplayName)
		log.Printf("Logo: %s", profile.LogoURL)
		log.Printf("Description: %s", profile.Description)

	case "prices":
		end := time.Now()
		start := end.AddDate(0, 0, -forecastLookbackDays)
		bars, err := loader.LoadDailyBars(symbol, start, end)
		if err != nil {
			log.Fatalf("Failed to load prices: %v", err)
		}
		log.Printf("Loaded %d daily bars (%s to %s)", len(bars),
			bars[0].Date.Format("2006-01-02"),
			bars[len(bars)-1].Date.Format("2006-01-02"))
		log.Printf("Latest close: $%.2f", bars[len(bars)-1].Close)

	case "forecast":
		engine := NewForecastEngine(loader)
		result, err := engine.Forecast(ForecastRequest{
			Symbol:      symbol,
			EndDate:     time.Now(),
			HorizonDays: days,
		})
		if err != nil {
			log.Fatalf("Forecast failed: %v", err)
		}
		for i, date := range result.Dates {
			log.Printf("%s  SVR: $%.2f  Linear: $%.2f",
				date.Format("2006-01-02"), result.SVR[i], result.Linear[i])
		}

	default:
		log.Printf("Unknown action: %s", action)
		log.Printf("Available actions: profile, prices, forecast")
		os.Exit(1)
	}
}
