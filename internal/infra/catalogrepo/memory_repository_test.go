package catalogrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/anyidea/anyidea-api/internal/domain/catalog"
)

func TestMemoryRepositoryLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	older := catalog.CategoryRecord{
		RowID: "r1", SessionID: "s1", CategoryID: "hiking", Name: "Hiking",
		Active: true, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := catalog.CategoryRecord{
		RowID: "r2", SessionID: "s1", CategoryID: "baking", Name: "Baking",
		Active: true, CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Insert(ctx, older))
	require.NoError(t, repo.Insert(ctx, newer))

	got, found, err := repo.FindActive(ctx, "s1", "hiking")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Hiking", got.Name)

	_, found, err = repo.FindActive(ctx, "s2", "hiking")
	require.NoError(t, err)
	require.False(t, found)

	list, err := repo.ListActive(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "baking", list[0].CategoryID) // newest first

	removed, err := repo.Deactivate(ctx, "s1", "hiking")
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = repo.Deactivate(ctx, "s1", "hiking")
	require.NoError(t, err)
	require.False(t, removed)

	list, err = repo.ListActive(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)
}
