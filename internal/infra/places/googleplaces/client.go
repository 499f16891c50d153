package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anyidea/anyidea-api/internal/domain/venues"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Client queries the Google Places Nearby Search API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client. An empty key is allowed; the ranker
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

// NearbySearch runs one nearby-search call and maps the results.
func (c *Client) NearbySearch(ctx context.Context, q venues.Query) ([]venues.Venue, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", q.Latitude, q.Longitude))
	params.Set("radius", strconv.Itoa(q.Radius))
	params.Set("type", q.PlaceType)
	params.Set("key", c.apiKey)
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}
	endpoint := fmt.Sprintf("%s/nearbysearch/json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build places request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("places request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read places response: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}
	if raw.Status != "OK" && raw.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places api status: %s", raw.Status)
	}

	results := raw.Results
	if q.MaxResults > 0 && len(results) > q.MaxResults {
		results = results[:q.MaxResults]
	}

	out := make([]venues.Venue, 0, len(results))
	for _, place := range results {
		name := place.Name
		if name == "" {
			name = "Unknown Place"
		}
		out = append(out, venues.Venue{
			PlaceID:           place.PlaceID,
			Name:              name,
			Rating:            place.Rating,
			UserRatingsTotal:  place.UserRatingsTotal,
			PriceLevel:        place.PriceLevel,
			Types:             place.Types,
			Vicinity:          place.Vicinity,
			OpenNow:           place.OpeningHours.OpenNow,
			PermanentlyClosed: place.PermanentlyClosed,
		})
	}
	return out, nil
}

type apiResponse struct {
	Status  string      `json:"status"`
	Results []apiResult `json:"results"`
}

type apiResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	PriceLevel       *int     `json:"price_level"`
	Types            []string `json:"types"`
	Vicinity         string   `json:"vicinity"`
	OpeningHours     struct {
		OpenNow *bool `json:"open_now"`
	} `json:"opening_hours"`
	PermanentlyClosed bool `json:"permanently_closed"`
}
