package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/anyidea/anyidea-api/internal/domain/catalog"
	"github.com/anyidea/anyidea-api/internal/domain/ideas"
	"github.com/anyidea/anyidea-api/internal/domain/session"
	"github.com/anyidea/anyidea-api/internal/domain/suggest"
	"github.com/anyidea/anyidea-api/internal/domain/venues"
	"github.com/anyidea/anyidea-api/internal/domain/weather"
	"github.com/anyidea/anyidea-api/internal/infra/catalogrepo"
	"github.com/anyidea/anyidea-api/internal/infra/config"
	"github.com/anyidea/anyidea-api/internal/infra/llm/openrouter"
	"github.com/anyidea/anyidea-api/internal/infra/places/googleplaces"
	"github.com/anyidea/anyidea-api/internal/infra/suggestlog"
	"github.com/anyidea/anyidea-api/internal/infra/weather/weatherapi"
	"github.com/anyidea/anyidea-api/internal/infra/weathercache"
)

func provideIdeasConfig(cfg *config.Config) ideas.Config {
	return ideas.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}
}

func provideOpenRouterClient(cfg *config.Config) *openrouter.Client {
	return openrouter.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Referer, cfg.LLM.AppTitle)
}

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{CacheTTL: cfg.Weather.CacheTTL}
}

func provideWeatherClient(cfg *config.Config) *weatherapi.Client {
	return weatherapi.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL)
}

func provideVenuesConfig(cfg *config.Config) venues.Config {
	return venues.Config{DefaultRadius: cfg.Places.DefaultRadius}
}

func providePlacesClient(cfg *config.Config) *googleplaces.Client {
	return googleplaces.NewClient(cfg.Places.APIKey, cfg.Places.BaseURL)
}

func provideSessionConfig(cfg *config.Config) session.Config {
	return session.Config{
		SigningKey: cfg.Session.SigningKey,
		TTL:        cfg.Session.TTL,
	}
}

// providePostgresPool returns nil when postgres is not configured or not
// reachable, in which case the callers fall back to memory stores.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Store.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory stores")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory stores", "error", err)
		return nil
	}
	if cfg.Store.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Store.Postgres.MaxConns
	}
	if cfg.Store.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Store.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory stores", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory stores", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres stores enabled")
	return pool
}

func provideCatalogRepository(pool *pgxpool.Pool, logger *slog.Logger) catalog.Repository {
	if pool == nil {
		return catalogrepo.NewMemoryRepository()
	}
	return catalogrepo.NewPostgresRepository(pool)
}

func provideSuggestionLogStore(pool *pgxpool.Pool, logger *slog.Logger) suggest.LogStore {
	if pool == nil {
		return suggestlog.NewMemoryStore()
	}
	return suggestlog.NewPostgresStore(pool)
}

func provideWeatherStore(cfg *config.Config, logger *slog.Logger) weather.SnapshotStore {
	if cfg.Cache.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return weathercache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return weathercache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("weather valkey cache enabled", "addr", cfg.Cache.Valkey.Addr)
			return weathercache.NewValkeyStore(client, "weather")
		}
	}
	return weathercache.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
