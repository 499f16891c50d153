package ideas

import "github.com/anyidea/anyidea-api/pkg/metrics"

// Input carries the normalized request fields the prompt is assembled from.
// Optional fields left at their zero value are omitted from the prompt.
type Input struct {
	Budget           float64
	TimeAvailable    int
	Location         *Location
	WeatherCurrent   string
	Preferences      Preferences
	CustomCategories []string
}

// Location is the caller's position plus their consent flag.
type Location struct {
	Latitude            float64
	Longitude           float64
	AllowLocationAccess bool
}

// Preferences mirrors the activity preference block of a suggestion request.
type Preferences struct {
	Location      string
	EnergyLevel   string
	SocialLevel   string
	ActivityTypes []string
	Mood          string
}

// RawSuggestion is one suggestion exactly as emitted by the completion provider.
type RawSuggestion struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	TimeRequired    int      `json:"time_required"`
	Cost            float64  `json:"cost"`
	Difficulty      string   `json:"difficulty"`
	Instructions    []string `json:"instructions"`
	MaterialsNeeded []string `json:"materials_needed"`
}

// Result is the generator output; Success false means the fixed fallback set.
type Result struct {
	Suggestions    []RawSuggestion
	ModelUsed      string
	Reasoning      string
	ProcessingTime float64
	Usage          metrics.TokenUsage
	Success        bool
}

// Config wires runtime settings for the generator domain.
type Config struct {
	Model       string
	Temperature float32
	MaxTokens   int
}
