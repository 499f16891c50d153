//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/anyidea/anyidea-api/internal/bootstrap"
	"github.com/anyidea/anyidea-api/internal/domain/catalog"
	"github.com/anyidea/anyidea-api/internal/domain/ideas"
	"github.com/anyidea/anyidea-api/internal/domain/session"
	"github.com/anyidea/anyidea-api/internal/domain/suggest"
	"github.com/anyidea/anyidea-api/internal/domain/venues"
	"github.com/anyidea/anyidea-api/internal/domain/weather"
	"github.com/anyidea/anyidea-api/internal/infra/config"
	"github.com/anyidea/anyidea-api/internal/infra/llm/openrouter"
	"github.com/anyidea/anyidea-api/internal/infra/places/googleplaces"
	"github.com/anyidea/anyidea-api/internal/infra/weather/weatherapi"
	httpiface "github.com/anyidea/anyidea-api/internal/interface/http"
	"github.com/anyidea/anyidea-api/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideIdeasConfig,
		provideWeatherConfig,
		provideVenuesConfig,
		provideSessionConfig,
		provideOpenRouterClient,
		provideWeatherClient,
		providePlacesClient,
		providePostgresPool,
		provideCatalogRepository,
		provideSuggestionLogStore,
		provideWeatherStore,
		ideas.NewGenerator,
		weather.NewAdvisor,
		venues.NewRanker,
		suggest.NewService,
		catalog.NewService,
		session.NewService,
		wire.Bind(new(ideas.ChatClient), new(*openrouter.Client)),
		wire.Bind(new(weather.ProviderClient), new(*weatherapi.Client)),
		wire.Bind(new(venues.PlacesClient), new(*googleplaces.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
