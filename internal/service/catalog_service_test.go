package service_test

import (
	"context"
	"testing"

	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/dom/poe-uniques-server/internal/repository/postgres"
	"github.com/dom/poe-uniques-server/internal/service"
	"github.com/dom/poe-uniques-server/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T) (*service.CatalogService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewCatalogService(repos, testutil.TestConfig()), testDB
}

func TestListUniques_UsesActiveLeagueByDefault(t *testing.T) {
	svc, testDB := newCatalogService(t)
	ctx := context.Background()

	active := testutil.NewLeagueBuilder().WithName("Settlers").Active().Build(t, testDB.DB)
	other := testutil.NewLeagueBuilder().WithName("Standard").Build(t, testDB.DB)

	testutil.NewUniqueBuilder().WithName("In Active").InLeague(active).Build(t, testDB.DB)
	testutil.NewUniqueBuilder().WithName("Elsewhere").InLeague(other).Build(t, testDB.DB)

	page, err := svc.ListUniques(ctx, service.ListUniquesInput{})
	require.NoError(t, err)
	assert.Equal(t, "Settlers", page.League.Name)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "In Active", page.Items[0].Name)
	assert.Equal(t, int64(1), page.Total)
}

func TestListUniques_NoActiveLeague(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.ListUniques(context.Background(), service.ListUniquesInput{})
	assert.ErrorIs(t, err, domain.ErrNoActiveLeague)
}

func TestListUniques_LeagueOverride(t *testing.T) {
	svc, testDB := newCatalogService(t)
	ctx := context.Background()

	testutil.NewLeagueBuilder().WithName("Settlers").Active().Build(t, testDB.DB)
	standard := testutil.NewLeagueBuilder().WithName("Standard").Build(t, testDB.DB)
	testutil.NewUniqueBuilder().WithName("Standard Item").InLeague(standard).Build(t, testDB.DB)

	page, err := svc.ListUniques(ctx, service.ListUniquesInput{League: "Standard"})
	require.NoError(t, err)
	assert.Equal(t, "Standard", page.League.Name)
	require.Len(t, page.Items, 1)

	_, err = svc.ListUniques(ctx, service.ListUniquesInput{League: "Nonexistent"})
	assert.ErrorIs(t, err, domain.ErrLeagueNotFound)
}

func TestListUniques_RejectsUnknownClassAndSlot(t *testing.T) {
	svc, testDB := newCatalogService(t)
	ctx := context.Background()

	testutil.NewLeagueBuilder().Active().Build(t, testDB.DB)

	_, err := svc.ListUniques(ctx, service.ListUniquesInput{Class: "spaceship"})
	assert.ErrorIs(t, err, domain.ErrInvalidClass)

	_, err = svc.ListUniques(ctx, service.ListUniquesInput{Slot: "hat"})
	assert.ErrorIs(t, err, domain.ErrInvalidSlot)

	_, err = svc.ListUniques(ctx, service.ListUniquesInput{Ordering: "shoe_size"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrdering)

	_, err = svc.ListUniques(ctx, service.ListUniquesInput{Ordering: "-drop15"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrdering)
}

func TestListUniques_OrderingOverride(t *testing.T) {
	svc, testDB := newCatalogService(t)
	ctx := context.Background()

	league := testutil.NewLeagueBuilder().Active().Build(t, testDB.DB)
	testutil.NewUniqueBuilder().WithName("Cheap Odds").
		InLeague(league).WithChaosValue(2).WithOdds(1).Build(t, testDB.DB)
	testutil.NewUniqueBuilder().WithName("Expensive Plain").
		InLeague(league).WithChaosValue(500).Build(t, testDB.DB)

	// Default composite order puts the odds-bearing item first
	page, err := svc.ListUniques(ctx, service.ListUniquesInput{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Cheap Odds", page.Items[0].Name)

	// An explicit ordering replaces it
	page, err = svc.ListUniques(ctx, service.ListUniquesInput{Ordering: "-chaos_value"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Expensive Plain", page.Items[0].Name)
}

func TestGetUnique(t *testing.T) {
	svc, testDB := newCatalogService(t)
	ctx := context.Background()

	league := testutil.NewLeagueBuilder().Active().Build(t, testDB.DB)
	item := testutil.NewUniqueBuilder().WithName("Shavronne's Wrappings").
		InLeague(league).WithChaosValue(40).Build(t, testDB.DB)

	row, resolved, err := svc.GetUnique(ctx, item.ID, "")
	require.NoError(t, err)
	assert.Equal(t, league.ID, resolved.ID)
	assert.Equal(t, "Shavronne's Wrappings", row.Name)

	_, _, err = svc.GetUnique(ctx, uuid.New(), "")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGetUnique_ExistsButNotInLeague(t *testing.T) {
	svc, testDB := newCatalogService(t)
	ctx := context.Background()

	testutil.NewLeagueBuilder().WithName("Settlers").Active().Build(t, testDB.DB)
	standard := testutil.NewLeagueBuilder().WithName("Standard").Build(t, testDB.DB)
	item := testutil.NewUniqueBuilder().WithName("Standard Only").InLeague(standard).Build(t, testDB.DB)

	// Known item, wrong league: distinguished from an unknown id
	_, _, err := svc.GetUnique(ctx, item.ID, "")
	assert.ErrorIs(t, err, domain.ErrItemNotInLeague)

	_, _, err = svc.GetUnique(ctx, item.ID, "Standard")
	require.NoError(t, err)
}
