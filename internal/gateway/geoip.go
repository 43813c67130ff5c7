package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const geoIPBaseURL = "http://ip-api.com/json/"

// UnknownCountry is the fallback when geolocation fails; the value the
// views display.
const UnknownCountry = "Desconocido"

// GeoLocator resolves a client IP to a country name. Lookups are
// best-effort: callers fall back to UnknownCountry on any error.
type GeoLocator interface {
	CountryForIP(ctx context.Context, ip string) (string, error)
}

type GeoIPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGeoIPClient() *GeoIPClient {
	return &GeoIPClient{
		baseURL:    geoIPBaseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// NewGeoIPClientWithURL is used by tests to point at a stub server.
func NewGeoIPClientWithURL(baseURL string) *GeoIPClient {
	c := NewGeoIPClient()
	c.baseURL = baseURL
	return c
}

type geoIPResponse struct {
	Status  string `json:"status"`
	Country string `json:"country"`
	Message string `json:"message"`
}

func (c *GeoIPClient) CountryForIP(ctx context.Context, ip string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+ip, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body geoIPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK || body.Status != "success" {
		return "", fmt.Errorf("geolocation lookup failed for %s: %s", ip, body.Message)
	}
	return body.Country, nil
}
