// Package geocode resolves free-text place names to coordinates via the
// OpenWeatherMap geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const searchLimit = 5

// Place is a single geocoding result.
type Place struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Client searches the OpenWeatherMap direct geocoding endpoint.
type Client struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

// NewClient creates a geocoding client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.openweathermap.org/geo/1.0/direct",
	}
}

// Search returns up to five places matching the query.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	u := fmt.Sprintf("%s?q=%s&limit=%d&appid=%s", c.baseURL, url.QueryEscape(query), searchLimit, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode API returned status %d", resp.StatusCode)
	}

	var places []Place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	return places, nil
}
