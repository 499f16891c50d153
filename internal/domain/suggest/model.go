package suggest

import "github.com/anyidea/anyidea-api/pkg/metrics"

// Provenance tags identifying which leaf produced a suggestion.
const (
	SourceAIGenerated   = "ai_generated"
	SourceFallback      = "fallback"
	SourceLocationBased = "location_based"
)

// Request is the normalized suggestion request accepted by the orchestrator.
type Request struct {
	Budget              float64     `json:"budget"`
	Currency            string      `json:"currency"`
	TimeAvailable       int         `json:"time_available"`
	TimeUnit            string      `json:"time_unit"`
	Location            *Location   `json:"location,omitempty"`
	ActivityPreferences Preferences `json:"activity_preferences"`
}

// Location is the caller's position plus their consent flag.
type Location struct {
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	AllowLocationAccess bool    `json:"allow_location_access"`
}

// Preferences is the activity preference block of a request.
type Preferences struct {
	Location         string   `json:"location"`
	SocialLevel      string   `json:"social_level"`
	ActivityTypes    []string `json:"activity_types"`
	EnergyLevel      string   `json:"energy_level"`
	Mood             string   `json:"mood"`
	CustomCategories []string `json:"custom_categories"`
}

// Suggestion is one ranked item of the aggregated response. Created once per
// pipeline run and owned by the response it belongs to.
type Suggestion struct {
	Type               string   `json:"type"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	TimeRequired       int      `json:"time_required"`
	Cost               float64  `json:"cost"`
	Difficulty         string   `json:"difficulty"`
	Distance           string   `json:"distance,omitempty"`
	Address            string   `json:"address,omitempty"`
	WeatherAppropriate *bool    `json:"weather_appropriate,omitempty"`
	AIReasoning        string   `json:"ai_reasoning,omitempty"`
	Instructions       []string `json:"instructions"`
	MaterialsNeeded    []string `json:"materials_needed"`
	Hours              string   `json:"hours,omitempty"`
	Rating             *float64 `json:"rating,omitempty"`
}

// WeatherInfo is the weather block serialized in the response.
type WeatherInfo struct {
	Current            string  `json:"current"`
	SuitableForOutdoor bool    `json:"suitable_for_outdoor"`
	Temperature        float64 `json:"temperature"`
	Humidity           float64 `json:"humidity"`
}

// AIMetadata describes the completion-provider run behind the response.
type AIMetadata struct {
	ModelUsed      string             `json:"model_used"`
	Reasoning      string             `json:"reasoning"`
	ProcessingTime float64            `json:"processing_time"`
	TokenUsage     metrics.TokenUsage `json:"token_usage"`
}

// Response is the sole payload handed to the transport layer.
type Response struct {
	Suggestions      []Suggestion `json:"suggestions"`
	Weather          *WeatherInfo `json:"weather,omitempty"`
	AIMetadata       *AIMetadata  `json:"ai_metadata,omitempty"`
	TotalSuggestions int          `json:"total_suggestions"`
	RequestID        string       `json:"request_id"`
}

// LogRecord is the fire-and-forget persistence payload per pipeline run.
type LogRecord struct {
	SessionID string
	RequestID string
	Request   Request
	Response  Response
}
