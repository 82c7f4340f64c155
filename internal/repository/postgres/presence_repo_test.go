package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/poe-uniques-server/internal/repository/postgres"
	"github.com/dom/poe-uniques-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceRepository_Record(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPresenceRepository(testDB.DB)
	ctx := context.Background()

	league := testutil.NewLeagueBuilder().Build(t, testDB.DB)
	item := testutil.NewUniqueBuilder().Build(t, testDB.DB)

	first := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(ctx, item.ID, league.ID, first))

	presence, err := repo.Get(ctx, item.ID, league.ID)
	require.NoError(t, err)
	assert.True(t, presence.FirstSeen.Equal(first))
	assert.True(t, presence.LastSeen.Equal(first))

	// Later observation advances last_seen, first_seen stays
	later := first.Add(48 * time.Hour)
	require.NoError(t, repo.Record(ctx, item.ID, league.ID, later))

	presence, err = repo.Get(ctx, item.ID, league.ID)
	require.NoError(t, err)
	assert.True(t, presence.FirstSeen.Equal(first))
	assert.True(t, presence.LastSeen.Equal(later))
}

func TestPresenceRepository_Record_NeverMovesBackward(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPresenceRepository(testDB.DB)
	ctx := context.Background()

	league := testutil.NewLeagueBuilder().Build(t, testDB.DB)
	item := testutil.NewUniqueBuilder().Build(t, testDB.DB)

	current := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(ctx, item.ID, league.ID, current))

	// An older observation leaves last_seen untouched
	stale := current.Add(-72 * time.Hour)
	require.NoError(t, repo.Record(ctx, item.ID, league.ID, stale))

	presence, err := repo.Get(ctx, item.ID, league.ID)
	require.NoError(t, err)
	assert.True(t, presence.LastSeen.Equal(current))
}

func TestPresenceRepository_ScopedPerLeague(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPresenceRepository(testDB.DB)
	ctx := context.Background()

	leagueA := testutil.NewLeagueBuilder().WithName("Standard").Build(t, testDB.DB)
	leagueB := testutil.NewLeagueBuilder().WithName("Settlers").Build(t, testDB.DB)
	item := testutil.NewUniqueBuilder().Build(t, testDB.DB)

	observed := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(ctx, item.ID, leagueA.ID, observed))

	_, err := repo.Get(ctx, item.ID, leagueA.ID)
	require.NoError(t, err)

	_, err = repo.Get(ctx, item.ID, leagueB.ID)
	assert.Error(t, err)
}
