package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyidea/anyidea-api/internal/domain/session"
	"github.com/anyidea/anyidea-api/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, sessionSvc session.Service) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/", handler.Root)
	router.GET("/health", handler.Health)

	api := router.Group("/api/v1")
	api.Use(sessionMiddleware(sessionSvc))
	{
		api.POST("/session", handler.CreateSession)
		api.POST("/suggest", handler.Suggest)
		api.GET("/activities", handler.Activities)
		api.POST("/categories", handler.CreateCategory)
		api.GET("/categories", handler.ListCategories)
		api.DELETE("/categories/:id", handler.RemoveCategory)
		api.GET("/status/providers", handler.ProviderStatus)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
