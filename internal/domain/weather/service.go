package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Advisor reports current conditions and an outdoor-suitability verdict.
// Both lookups degrade to an optimistic fallback and never fail.
type Advisor interface {
	Snapshot(ctx context.Context, lat, lon float64) Snapshot
	SnapshotByCity(ctx context.Context, city string) Snapshot
	Configured() bool
}

// ProviderClient fetches raw observations from the upstream weather API.
type ProviderClient interface {
	Current(ctx context.Context, query string) (Observation, error)
	Configured() bool
}

// SnapshotStore caches snapshots so repeated nearby requests skip the provider.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (Snapshot, bool, error)
	Save(ctx context.Context, key string, snap Snapshot, ttl time.Duration) error
}

type service struct {
	cfg    Config
	client ProviderClient
	store  SnapshotStore
	logger *slog.Logger
}

// NewAdvisor wires up the weather advisor domain.
func NewAdvisor(cfg Config, client ProviderClient, store SnapshotStore, logger *slog.Logger) Advisor {
	return &service{
		cfg:    cfg,
		client: client,
		store:  store,
		logger: logger.With("component", "weather.advisor"),
	}
}

func (s *service) Configured() bool {
	return s.client.Configured()
}

func (s *service) Snapshot(ctx context.Context, lat, lon float64) Snapshot {
	// Two decimal places is roughly a 1km cell, close enough for weather.
	key := fmt.Sprintf("wx:%.2f,%.2f", lat, lon)
	query := fmt.Sprintf("%f,%f", lat, lon)
	return s.lookup(ctx, key, query)
}

func (s *service) SnapshotByCity(ctx context.Context, city string) Snapshot {
	city = strings.TrimSpace(city)
	if city == "" {
		return fallbackSnapshot()
	}
	key := "wx:city:" + strings.ToLower(city)
	return s.lookup(ctx, key, city)
}

func (s *service) lookup(ctx context.Context, key, query string) Snapshot {
	if s.store != nil {
		if snap, ok, err := s.store.Get(ctx, key); err == nil && ok {
			return snap
		} else if err != nil {
			s.logger.Warn("weather cache read failed", "key", key, "error", err)
		}
	}

	if !s.client.Configured() {
		s.logger.Warn("weather api key not configured")
		return fallbackSnapshot()
	}

	obs, err := s.client.Current(ctx, query)
	if err != nil {
		s.logger.Error("weather fetch failed", "query", query, "error", err)
		return fallbackSnapshot()
	}

	snap := snapshotFrom(obs)
	if s.store != nil {
		if err := s.store.Save(ctx, key, snap, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("weather cache write failed", "key", key, "error", err)
		}
	}
	return snap
}

func snapshotFrom(obs Observation) Snapshot {
	return Snapshot{
		Current:            fmt.Sprintf("%s, %d°F", obs.Condition, int(obs.TemperatureF)),
		Condition:          obs.Condition,
		SuitableForOutdoor: suitableForOutdoor(obs.Condition, obs.WindMPH, obs.TemperatureF),
		TemperatureF:       obs.TemperatureF,
		TemperatureC:       obs.TemperatureC,
		Humidity:           obs.Humidity,
		WindMPH:            obs.WindMPH,
		Location:           obs.Location,
		LocalTime:          obs.LocalTime,
	}
}

// suitableForOutdoor flags conditions that rule out outdoor activities:
// precipitation, storms, wind above 25 mph, or temperature outside 32..95°F.
func suitableForOutdoor(condition string, windMPH, tempF float64) bool {
	text := strings.ToLower(condition)
	isRaining := strings.Contains(text, "rain") || strings.Contains(text, "drizzle")
	isSnowing := strings.Contains(text, "snow")
	isStormy := strings.Contains(text, "storm") || strings.Contains(text, "thunder")
	isVeryWindy := windMPH > 25
	isExtremeTemp := tempF < 32 || tempF > 95
	return !(isRaining || isSnowing || isStormy || isVeryWindy || isExtremeTemp)
}

func fallbackSnapshot() Snapshot {
	return Snapshot{
		Current:            "Weather unavailable",
		Condition:          "Unknown",
		SuitableForOutdoor: true,
		TemperatureF:       70.0,
		Humidity:           50.0,
		WindMPH:            5.0,
		Location:           "Unknown location",
		LocalTime:          "Unknown",
	}
}
