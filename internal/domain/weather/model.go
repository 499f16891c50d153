package weather

import "time"

// Observation is the normalized reading fetched from the weather provider.
type Observation struct {
	Condition    string
	TemperatureF float64
	TemperatureC float64
	Humidity     float64
	WindMPH      float64
	Location     string
	LocalTime    string
}

// Snapshot is the advisor verdict consumed by the aggregation pipeline.
type Snapshot struct {
	Current            string  `json:"current"`
	Condition          string  `json:"condition"`
	SuitableForOutdoor bool    `json:"suitable_for_outdoor"`
	TemperatureF       float64 `json:"temperature"`
	TemperatureC       float64 `json:"temperature_c,omitempty"`
	Humidity           float64 `json:"humidity"`
	WindMPH            float64 `json:"wind_mph"`
	Location           string  `json:"location"`
	LocalTime          string  `json:"local_time"`
}

// Config wires runtime settings for the advisor domain.
type Config struct {
	CacheTTL time.Duration
}
