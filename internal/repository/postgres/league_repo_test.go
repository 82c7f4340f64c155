package postgres_test

import (
	"context"
	"testing"

	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/dom/poe-uniques-server/internal/repository/postgres"
	"github.com/dom/poe-uniques-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeagueRepository_GetOrCreateByName(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLeagueRepository(testDB.DB)
	ctx := context.Background()

	league, err := repo.GetOrCreateByName(ctx, "Standard")
	require.NoError(t, err)
	assert.Equal(t, "Standard", league.Name)

	// Second call returns the same row
	again, err := repo.GetOrCreateByName(ctx, "Standard")
	require.NoError(t, err)
	assert.Equal(t, league.ID, again.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLeagueRepository_GetByName_NotFound(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLeagueRepository(testDB.DB)

	_, err := repo.GetByName(context.Background(), "Nonexistent")
	assert.ErrorIs(t, err, domain.ErrLeagueNotFound)
}

func TestLeagueRepository_GetActive(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLeagueRepository(testDB.DB)
	ctx := context.Background()

	// No active league
	_, err := repo.GetActive(ctx)
	assert.ErrorIs(t, err, domain.ErrNoActiveLeague)

	testutil.NewLeagueBuilder().WithName("Settlers").Active().Build(t, testDB.DB)

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Settlers", active.Name)
}

func TestLeagueRepository_SetActive(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLeagueRepository(testDB.DB)
	ctx := context.Background()

	testutil.NewLeagueBuilder().WithName("Standard").Active().Build(t, testDB.DB)
	testutil.NewLeagueBuilder().WithName("Settlers").Build(t, testDB.DB)

	league, err := repo.SetActive(ctx, "Settlers")
	require.NoError(t, err)
	assert.True(t, league.IsActive)

	// Exactly one active league remains
	var count int64
	err = testDB.DB.Model(&domain.League{}).Where("is_active = ?", true).Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Settlers", active.Name)
}

func TestLeagueRepository_SetActive_UnknownLeague(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLeagueRepository(testDB.DB)

	_, err := repo.SetActive(context.Background(), "Nonexistent")
	assert.ErrorIs(t, err, domain.ErrLeagueNotFound)
}
