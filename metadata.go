package main

import (
	"errors"
	"fmt"
	"log"
)

// Fallback values substituted when a provider lookup does not succeed.
const (
	PlaceholderName        = "Company Name not found"
	PlaceholderDescription = "Company Description not found"
	PlaceholderLogoURL     = "https://iili.io/dF0GdyG.png"
)

// ErrSymbolNotFound means the provider answered but does not know the
// symbol. ErrProviderUnavailable covers transport failures and 5xx
// answers, so callers can tell a bad ticker from a down upstream.
var (
	ErrSymbolNotFound      = errors.New("symbol not found")
	ErrProviderUnavailable = errors.New("metadata provider unavailable")
)

// ProfileProvider is one metadata integration. The two concrete
// implementations (FMP, Polygon) are interchangeable; which one runs is
// a configuration choice, not a code path.
type ProfileProvider interface {
	FetchNameAndDescription(symbol string) (name, description string, err error)
	FetchLogoURL(symbol string) (string, error)
	Name() string
}

// MetadataFetcher assembles a CompanyProfile from the primary Yahoo
// name lookup plus the configured profile provider. Lookups degrade to
// placeholders, they never fail the SUBMIT action.
type MetadataFetcher struct {
	yahoo    *YahooFinanceClient
	provider ProfileProvider
}

func NewMetadataFetcher(yahoo *YahooFinanceClient, provider ProfileProvider) *MetadataFetcher {
	return &MetadataFetcher{yahoo: yahoo, provider: provider}
}

// FetchProfile never returns an error: every failure is logged and
// replaced with fixed placeholder text or the placeholder image.
func (m *MetadataFetcher) FetchProfile(symbol string) CompanyProfile {
	profile := CompanyProfile{
		Symbol:      symbol,
		DisplayName: PlaceholderName,
		Description: PlaceholderDescription,
		LogoURL:     PlaceholderLogoURL,
	}

	// Primary lookup: issuer name from the quote endpoint.
	primaryName, err := m.yahoo.GetQuoteName(symbol)
	if err != nil {
		log.Printf("[Metadata] Primary name lookup failed for %s: %v", symbol, err)
	} else {
		profile.DisplayName = primaryName
	}

	name, desc, err := m.provider.FetchNameAndDescription(symbol)
	if err != nil {
		log.Printf("[Metadata] %s profile lookup failed for %s: %v", m.provider.Name(), symbol, err)
	} else {
		if profile.DisplayName == PlaceholderName && name != "" {
			profile.DisplayName = name
		}
		if desc != "" {
			profile.Description = desc
		}
	}

	logoURL, err := m.provider.FetchLogoURL(symbol)
	if err != nil {
		log.Printf("[Metadata] %s logo lookup failed for %s: %v", m.provider.Name(), symbol, err)
	} else {
		profile.LogoURL = logoURL
	}

	return profile
}

// NewProfileProvider selects the provider adapter named in the config.
func NewProfileProvider(cfg *Config) (ProfileProvider, error) {
	switch cfg.MetadataProvider {
	case "fmp":
		return NewFMPClient(cfg.FMPAPIKey), nil
	case "polygon":
		return NewPolygonClient(cfg.PolygonAPIKey, cfg.GoogleAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown metadata provider: %s", cfg.MetadataProvider)
	}
}
