package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings. Loaded once at startup and never
// mutated afterwards.
type Config struct {
	MetadataProvider string // "fmp" or "polygon"
	FMPAPIKey        string
	PolygonAPIKey    string
	GoogleAPIKey     string
	DBPath           string
	Port             string
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	// Same behavior as the original dotenv setup: a missing .env file
	// is not an error, plain env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		MetadataProvider: "fmp",
		DBPath:           "stock_sense.db",
		Port:             "8080",
	}

	if v := os.Getenv("METADATA_PROVIDER"); v != "" {
		cfg.MetadataProvider = v
	}
	if v := os.Getenv("FMP_API_KEY"); v != "" {
		cfg.FMPAPIKey = v
	}
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		cfg.PolygonAPIKey = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.GoogleAPIKey = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	return cfg
}

// Validate fails fast when the selected metadata provider is missing its
// credentials, instead of surfacing the problem as an HTTP error on the
// first request.
func (c *Config) Validate() error {
	switch c.MetadataProvider {
	case "fmp":
		if c.FMPAPIKey == "" {
			return fmt.Errorf("FMP_API_KEY is required when METADATA_PROVIDER=fmp")
		}
	case "polygon":
		if c.PolygonAPIKey == "" {
			return fmt.Errorf("POLYGON_API_KEY is required when METADATA_PROVIDER=polygon")
		}
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required when METADATA_PROVIDER=polygon")
		}
	default:
		return fmt.Errorf("unknown metadata provider: %s (expected fmp or polygon)", c.MetadataProvider)
	}
	return nil
}
