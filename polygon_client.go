package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// PolygonClient integrates Polygon.io ticker reference data for name and
// description, and the Google Knowledge Graph search API for the logo.
type PolygonClient struct {
	client       *resty.Client
	apiKey       string
	googleAPIKey string
	baseURL      string
	kgBaseURL    string
}

type polygonTicker struct {
	Status  string `json:"status"`
	Results struct {
		Ticker      string `json:"ticker"`
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"results"`
}

type kgSearchResponse struct {
	ItemListElement []struct {
		Result struct {
			Name  string `json:"name"`
			Image struct {
				ContentURL string `json:"contentUrl"`
			} `json:"image"`
		} `json:"result"`
	} `json:"itemListElement"`
}

func NewPolygonClient(apiKey, googleAPIKey string) *PolygonClient {
	client := resty.New()
	client.SetTimeout(30 * time.Second)

	return &PolygonClient{
		client:       client,
		apiKey:       apiKey,
		googleAPIKey: googleAPIKey,
		baseURL:      "https://api.polygon.io",
		kgBaseURL:    "https://kgsearch.googleapis.com",
	}
}

func (p *PolygonClient) Name() string { return "polygon" }

func (p *PolygonClient) FetchNameAndDescription(symbol string) (string, string, error) {
	reqURL := fmt.Sprintf("%s/v3/reference/tickers/%s?apiKey=%s",
		p.baseURL, url.PathEscape(symbol), url.QueryEscape(p.apiKey))

	resp, err := p.client.R().Get(reqURL)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if resp.StatusCode() >= 500 {
		return "", "", fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode())
	}
	if resp.StatusCode() != 200 {
		return "", "", fmt.Errorf("%w: status %d", ErrSymbolNotFound, resp.StatusCode())
	}

	var ticker polygonTicker
	if err := json.Unmarshal(resp.Body(), &ticker); err != nil {
		return "", "", fmt.Errorf("failed to parse ticker response: %v", err)
	}
	if ticker.Status != "OK" {
		return "", "", fmt.Errorf("%w: status %q", ErrSymbolNotFound, ticker.Status)
	}
	if ticker.Results.Description == "" {
		return ticker.Results.Name, "", fmt.Errorf("%w: no description for %s", ErrSymbolNotFound, symbol)
	}

	return ticker.Results.Name, ticker.Results.Description, nil
}

// FetchLogoURL searches the Knowledge Graph by company name and returns
// the first entity's image content URL.
func (p *PolygonClient) FetchLogoURL(symbol string) (string, error) {
	name, _, err := p.FetchNameAndDescription(symbol)
	if err != nil || name == "" {
		name = symbol
	}

	reqURL := fmt.Sprintf("%s/v1/entities:search?query=%s&key=%s&limit=1&indent=True",
		p.kgBaseURL, url.QueryEscape(name), url.QueryEscape(p.googleAPIKey))

	resp, err := p.client.R().Get(reqURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode())
	}

	var kg kgSearchResponse
	if err := json.Unmarshal(resp.Body(), &kg); err != nil {
		return "", fmt.Errorf("failed to parse knowledge graph response: %v", err)
	}
	if len(kg.ItemListElement) == 0 {
		return "", fmt.Errorf("%w: no knowledge graph entity for %q", ErrSymbolNotFound, name)
	}
	if kg.ItemListElement[0].Result.Image.ContentURL == "" {
		return "", fmt.Errorf("%w: entity for %q has no image", ErrSymbolNotFound, name)
	}

	return kg.ItemListElement[0].Result.Image.ContentURL, nil
}
