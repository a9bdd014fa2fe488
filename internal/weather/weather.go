// Package weather fetches current conditions and derives packing
// suggestions from them.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// Condition holds the current weather for a coordinate pair. It is fetched
// per request and never persisted.
type Condition struct {
	Main        string  `json:"main"`        // e.g. "Clear", "Clouds", "Rain", "Snow"
	Description string  `json:"description"` // e.g. "light rain"
	Temp        float64 `json:"temp"`        // °C, rounded
	FeelsLike   float64 `json:"feels_like"`  // °C, rounded
	Icon        string  `json:"icon"`
}

// Source provides current conditions for a coordinate pair. Callers treat
// an error as "no weather available" and degrade rather than fail.
type Source interface {
	Current(ctx context.Context, lat, lon float64) (*Condition, error)
}

// Client fetches current conditions from the OpenWeatherMap API.
type Client struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

// NewClient creates a weather client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
	}
}

type apiResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
	} `json:"main"`
}

// Current fetches conditions for the coordinate pair, retrying transport
// errors a few times before giving up.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*Condition, error) {
	url := fmt.Sprintf("%s?lat=%f&lon=%f&appid=%s&units=metric", c.baseURL, lat, lon, c.apiKey)

	var cond *Condition
	backoff := retry.WithMaxRetries(2, retry.NewConstant(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("weather API request: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("weather API returned status %d", resp.StatusCode)
		}

		var apiResp apiResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
			return fmt.Errorf("decode weather response: %w", err)
		}
		if len(apiResp.Weather) == 0 {
			return fmt.Errorf("weather response has no conditions")
		}

		cond = &Condition{
			Main:        apiResp.Weather[0].Main,
			Description: apiResp.Weather[0].Description,
			Temp:        math.Round(apiResp.Main.Temp),
			FeelsLike:   math.Round(apiResp.Main.FeelsLike),
			Icon:        apiResp.Weather[0].Icon,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cond, nil
}

// Stub is a deterministic Source for demos and tests. It rotates through
// four canned conditions, keyed by the minute of its clock.
type Stub struct {
	Now func() time.Time
}

var stubConditions = []Condition{
	{Main: "Rain", Description: "light rain", Temp: 18, FeelsLike: 17, Icon: "10d"},
	{Main: "Clouds", Description: "overcast clouds", Temp: 15, FeelsLike: 14, Icon: "04d"},
	{Main: "Clear", Description: "clear sky", Temp: 28, FeelsLike: 30, Icon: "01d"},
	{Main: "Snow", Description: "light snow", Temp: -2, FeelsLike: -5, Icon: "13d"},
}

// Current returns a canned condition; the same minute always yields the
// same condition.
func (s *Stub) Current(_ context.Context, _, _ float64) (*Condition, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	idx := now().Unix() / 60 % int64(len(stubConditions))
	cond := stubConditions[idx]
	return &cond, nil
}
