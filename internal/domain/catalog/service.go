package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/anyidea/anyidea-api/pkg/errors"
	"github.com/anyidea/anyidea-api/pkg/util"
)

// Service manages user-defined categories and the static request vocabulary.
type Service interface {
	CreateCategory(ctx context.Context, sessionID, name, description string) (Category, error)
	ListCategories(ctx context.Context, sessionID string) ([]Category, error)
	RemoveCategory(ctx context.Context, sessionID, categoryID string) error
	Activities() Metadata
}

// Repository is the persistence contract for custom categories.
type Repository interface {
	Insert(ctx context.Context, rec CategoryRecord) error
	FindActive(ctx context.Context, sessionID, categoryID string) (CategoryRecord, bool, error)
	ListActive(ctx context.Context, sessionID string) ([]CategoryRecord, error)
	Deactivate(ctx context.Context, sessionID, categoryID string) (bool, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the catalog domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "catalog.service"),
		now:    util.NowUTC,
	}
}

func (s *service) CreateCategory(ctx context.Context, sessionID, name, description string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, apperrors.Wrap("invalid_input", "category name cannot be empty", nil)
	}
	if len(name) > 50 {
		return Category{}, apperrors.Wrap("invalid_input", "category name must be 50 characters or fewer", nil)
	}

	categoryID := NormalizeID(name)
	existing, found, err := s.repo.FindActive(ctx, sessionID, categoryID)
	if err != nil {
		return Category{}, apperrors.Wrap("store_error", "category lookup failed", err)
	}
	if found {
		return toCategory(existing), apperrors.Wrap("duplicate_category", "a category with this name already exists", nil)
	}

	rec := CategoryRecord{
		RowID:       uuid.NewString(),
		SessionID:   sessionID,
		CategoryID:  categoryID,
		Name:        titleCase(name),
		Description: strings.TrimSpace(description),
		Active:      true,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return Category{}, apperrors.Wrap("store_error", "category insert failed", err)
	}
	s.logger.Info("custom category created", "session_id", sessionID, "category_id", categoryID)
	return toCategory(rec), nil
}

func (s *service) ListCategories(ctx context.Context, sessionID string) ([]Category, error) {
	recs, err := s.repo.ListActive(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap("store_error", "category list failed", err)
	}
	out := make([]Category, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toCategory(rec))
	}
	return out, nil
}

func (s *service) RemoveCategory(ctx context.Context, sessionID, categoryID string) error {
	removed, err := s.repo.Deactivate(ctx, sessionID, categoryID)
	if err != nil {
		return apperrors.Wrap("store_error", "category removal failed", err)
	}
	if !removed {
		return apperrors.Wrap("not_found", "category not found", nil)
	}
	s.logger.Info("custom category removed", "session_id", sessionID, "category_id", categoryID)
	return nil
}

func (s *service) Activities() Metadata {
	return Metadata{
		ActivityTypes: []string{
			"creative", "productive", "entertainment",
			"exercise", "learning", "food", "social",
			"outdoor", "indoor",
		},
		EnergyLevels: []string{"low", "medium", "high"},
		SocialLevels: []string{"solo", "small_group", "large_group"},
		SkillLevels:  []string{"beginner", "intermediate", "advanced"},
		MealTypes:    []string{"snack", "breakfast", "lunch", "dinner", "dessert"},
		TimeUnits:    []string{"minutes", "hours"},
	}
}

// NormalizeID derives the API-facing category identifier from a display name.
func NormalizeID(name string) string {
	id := strings.ToLower(strings.TrimSpace(name))
	id = strings.ReplaceAll(id, " ", "_")
	id = strings.ReplaceAll(id, "&", "and")
	return id
}

func titleCase(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func toCategory(rec CategoryRecord) Category {
	return Category{
		ID:          rec.CategoryID,
		Name:        rec.Name,
		Description: rec.Description,
		Type:        "custom",
		CreatedAt:   rec.CreatedAt,
	}
}
