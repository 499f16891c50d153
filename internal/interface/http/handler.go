package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyidea/anyidea-api/internal/domain/catalog"
	"github.com/anyidea/anyidea-api/internal/domain/ideas"
	"github.com/anyidea/anyidea-api/internal/domain/session"
	"github.com/anyidea/anyidea-api/internal/domain/suggest"
	"github.com/anyidea/anyidea-api/internal/domain/venues"
	"github.com/anyidea/anyidea-api/internal/domain/weather"
	apperrors "github.com/anyidea/anyidea-api/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	suggestSvc suggest.Service
	catalogSvc catalog.Service
	sessionSvc session.Service
	generator  ideas.Generator
	advisor    weather.Advisor
	ranker     venues.Ranker
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	suggestSvc suggest.Service,
	catalogSvc catalog.Service,
	sessionSvc session.Service,
	generator ideas.Generator,
	advisor weather.Advisor,
	ranker venues.Ranker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		suggestSvc: suggestSvc,
		catalogSvc: catalogSvc,
		sessionSvc: sessionSvc,
		generator:  generator,
		advisor:    advisor,
		ranker:     ranker,
		logger:     logger.With("component", "http.handler"),
	}
}

// Suggest runs the full aggregation pipeline for one request.
func (h *Handler) Suggest(c *gin.Context) {
	var req suggest.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.suggestSvc.Suggest(c.Request.Context(), sessionID(c), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "suggest_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Activities returns the fixed request vocabulary plus the caller's custom categories.
func (h *Handler) Activities(c *gin.Context) {
	categories, err := h.catalogSvc.ListCategories(c.Request.Context(), sessionID(c))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "catalog_failed", errMessage(err), err))
		return
	}

	meta := h.catalogSvc.Activities()
	c.JSON(http.StatusOK, gin.H{
		"activity_types":    meta.ActivityTypes,
		"energy_levels":     meta.EnergyLevels,
		"social_levels":     meta.SocialLevels,
		"skill_levels":      meta.SkillLevels,
		"meal_types":        meta.MealTypes,
		"time_units":        meta.TimeUnits,
		"custom_categories": categories,
	})
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateCategory registers a new custom category for the caller's session.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	category, err := h.catalogSvc.CreateCategory(c.Request.Context(), sessionID(c), req.Name, req.Description)
	if err != nil {
		status := http.StatusInternalServerError
		code := "catalog_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "duplicate_category"):
			status = http.StatusConflict
			code = "duplicate_category"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusCreated, category)
}

// ListCategories returns the caller's active custom categories.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.catalogSvc.ListCategories(c.Request.Context(), sessionID(c))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "catalog_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// RemoveCategory soft-deletes one of the caller's custom categories.
func (h *Handler) RemoveCategory(c *gin.Context) {
	err := h.catalogSvc.RemoveCategory(c.Request.Context(), sessionID(c), c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		code := "catalog_failed"
		if apperrors.IsCode(err, "not_found") {
			status = http.StatusNotFound
			code = "not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed", "id": c.Param("id")})
}

// CreateSession mints a new anonymous session token.
func (h *Handler) CreateSession(c *gin.Context) {
	token, err := h.sessionSvc.Issue()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "session_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusCreated, token)
}

// ProviderStatus reports which upstream providers have credentials configured.
func (h *Handler) ProviderStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ai_generation": h.generator.Configured(),
		"weather":       h.advisor.Configured(),
		"places":        h.ranker.Configured(),
	})
}

// Root is a human-friendly landing response.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "AnyIdea? API is running",
		"version": "1.0.0",
	})
}

// Health is the liveness probe endpoint.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
