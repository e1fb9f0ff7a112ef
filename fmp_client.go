package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// FMPClient integrates financialmodelingprep.com: the profile endpoint
// for name and description, the image-stock endpoint for the logo.
type FMPClient struct {
	client   *resty.Client
	apiKey   string
	baseURL  string
	imageURL string
}

type fmpProfile struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"companyName"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func NewFMPClient(apiKey string) *FMPClient {
	client := resty.New()
	client.SetTimeout(30 * time.Second)

	return &FMPClient{
		client:   client,
		apiKey:   apiKey,
		baseURL:  "https://financialmodelingprep.com",
		imageURL: "https://financialmodelingprep.com",
	}
}

func (f *FMPClient) Name() string { return "fmp" }

func (f *FMPClient) FetchNameAndDescription(symbol string) (string, string, error) {
	reqURL := fmt.Sprintf("%s/api/v3/profile/%s?apikey=%s",
		f.baseURL, url.PathEscape(symbol), url.QueryEscape(f.apiKey))

	resp, err := f.client.R().Get(reqURL)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if resp.StatusCode() >= 500 {
		return "", "", fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode())
	}
	if resp.StatusCode() != 200 {
		return "", "", fmt.Errorf("%w: status %d", ErrSymbolNotFound, resp.StatusCode())
	}

	var profiles []fmpProfile
	if err := json.Unmarshal(resp.Body(), &profiles); err != nil {
		return "", "", fmt.Errorf("failed to parse profile response: %v", err)
	}
	if len(profiles) == 0 {
		return "", "", fmt.Errorf("%w: empty profile list for %s", ErrSymbolNotFound, symbol)
	}

	return profiles[0].CompanyName, profiles[0].Description, nil
}

// FetchLogoURL probes the templated image URL; FMP serves a PNG for
// known symbols and a non-200 status otherwise.
func (f *FMPClient) FetchLogoURL(symbol string) (string, error) {
	logoURL := fmt.Sprintf("%s/image-stock/%s.png?apikey=%s",
		f.imageURL, url.PathEscape(strings.ToUpper(symbol)), url.QueryEscape(f.apiKey))

	resp, err := f.client.R().Get(logoURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("%w: status %d", ErrSymbolNotFound, resp.StatusCode())
	}
	return logoURL, nil
}
