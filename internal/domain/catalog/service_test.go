package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/anyidea/anyidea-api/pkg/errors"
)

func TestNormalizeID(t *testing.T) {
	require.Equal(t, "board_games_and_puzzles", NormalizeID("Board Games & Puzzles"))
	require.Equal(t, "stargazing", NormalizeID("  Stargazing  "))
	require.Equal(t, "night_market", NormalizeID("night market"))
}

func TestCreateCategory(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, discardLogger())

	cat, err := svc.CreateCategory(context.Background(), "s1", "board games & puzzles", "tabletop fun")
	require.NoError(t, err)
	require.Equal(t, "board_games_and_puzzles", cat.ID)
	require.Equal(t, "Board Games & Puzzles", cat.Name)
	require.Equal(t, "tabletop fun", cat.Description)
	require.Equal(t, "custom", cat.Type)
	require.Len(t, repo.inserted, 1)
	require.Equal(t, "s1", repo.inserted[0].SessionID)
	require.NotEmpty(t, repo.inserted[0].RowID)
}

func TestCreateCategoryRejectsDuplicate(t *testing.T) {
	repo := &stubRepo{existing: map[string]CategoryRecord{
		"s1/hiking": {SessionID: "s1", CategoryID: "hiking", Name: "Hiking", Active: true},
	}}
	svc := NewService(repo, discardLogger())

	_, err := svc.CreateCategory(context.Background(), "s1", "Hiking", "")
	require.True(t, apperrors.IsCode(err, "duplicate_category"))
	require.Empty(t, repo.inserted)

	// Same name is fine for a different session.
	_, err = svc.CreateCategory(context.Background(), "s2", "Hiking", "")
	require.NoError(t, err)
}

func TestCreateCategoryValidation(t *testing.T) {
	svc := NewService(&stubRepo{}, discardLogger())

	_, err := svc.CreateCategory(context.Background(), "s1", "   ", "")
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.CreateCategory(context.Background(), "s1", string(long), "")
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestRemoveCategory(t *testing.T) {
	repo := &stubRepo{existing: map[string]CategoryRecord{
		"s1/hiking": {SessionID: "s1", CategoryID: "hiking", Active: true},
	}}
	svc := NewService(repo, discardLogger())

	require.NoError(t, svc.RemoveCategory(context.Background(), "s1", "hiking"))
	err := svc.RemoveCategory(context.Background(), "s1", "missing")
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestListCategoriesWrapsStoreError(t *testing.T) {
	svc := NewService(&stubRepo{err: errors.New("down")}, discardLogger())
	_, err := svc.ListCategories(context.Background(), "s1")
	require.True(t, apperrors.IsCode(err, "store_error"))
}

func TestActivitiesMetadata(t *testing.T) {
	svc := NewService(&stubRepo{}, discardLogger())
	meta := svc.Activities()
	require.Contains(t, meta.ActivityTypes, "creative")
	require.Contains(t, meta.ActivityTypes, "outdoor")
	require.Equal(t, []string{"low", "medium", "high"}, meta.EnergyLevels)
	require.Equal(t, []string{"minutes", "hours"}, meta.TimeUnits)
}

type stubRepo struct {
	existing map[string]CategoryRecord
	inserted []CategoryRecord
	err      error
}

func (s *stubRepo) Insert(_ context.Context, rec CategoryRecord) error {
	if s.err != nil {
		return s.err
	}
	s.inserted = append(s.inserted, rec)
	return nil
}

func (s *stubRepo) FindActive(_ context.Context, sessionID, categoryID string) (CategoryRecord, bool, error) {
	if s.err != nil {
		return CategoryRecord{}, false, s.err
	}
	rec, ok := s.existing[sessionID+"/"+categoryID]
	return rec, ok && rec.Active, nil
}

func (s *stubRepo) ListActive(_ context.Context, sessionID string) ([]CategoryRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []CategoryRecord
	for _, rec := range s.existing {
		if rec.SessionID == sessionID && rec.Active {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubRepo) Deactivate(_ context.Context, sessionID, categoryID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	key := sessionID + "/" + categoryID
	rec, ok := s.existing[key]
	if !ok || !rec.Active {
		return false, nil
	}
	rec.Active = false
	s.existing[key] = rec
	return true, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
