package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anyidea/anyidea-api/internal/domain/weather"
)

const defaultBaseURL = "http://api.weatherapi.com/v1"

// Client fetches current conditions from WeatherAPI.com.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client. An empty key is allowed; the advisor
// checks Configured before calling.
func NewClient(apiKey, baseURL string) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Current retrieves conditions for a "lat,lon" pair or a city name.
func (c *Client) Current(ctx context.Context, query string) (weather.Observation, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("aqi", "no")
	endpoint := fmt.Sprintf("%s/current.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return weather.Observation{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weather.Observation{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return weather.Observation{}, fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return weather.Observation{}, fmt.Errorf("read weather response: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return weather.Observation{}, fmt.Errorf("decode weather response: %w", err)
	}
	if raw.Current.Condition.Text == "" {
		return weather.Observation{}, fmt.Errorf("weather response missing condition")
	}

	return weather.Observation{
		Condition:    raw.Current.Condition.Text,
		TemperatureF: raw.Current.TempF,
		TemperatureC: raw.Current.TempC,
		Humidity:     raw.Current.Humidity,
		WindMPH:      raw.Current.WindMPH,
		Location:     fmt.Sprintf("%s, %s", raw.Location.Name, raw.Location.Region),
		LocalTime:    raw.Location.LocalTime,
	}, nil
}

type apiResponse struct {
	Location struct {
		Name      string `json:"name"`
		Region    string `json:"region"`
		LocalTime string `json:"localtime"`
	} `json:"location"`
	Current struct {
		TempF     float64 `json:"temp_f"`
		TempC     float64 `json:"temp_c"`
		Humidity  float64 `json:"humidity"`
		WindMPH   float64 `json:"wind_mph"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}
