package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dom/poe-uniques-server/internal/api/handlers"
	"github.com/dom/poe-uniques-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLeagues(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewLeagueBuilder().WithName("Standard").Build(t, ts.DB.DB)
	testutil.NewLeagueBuilder().WithName("Settlers").Active().Build(t, ts.DB.DB)

	resp := get(t, ts.APIURL("/leagues"))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var body handlers.LeaguesResponse
	testutil.AssertJSONResponse(t, resp, &body)
	require.Len(t, body.Leagues, 2)

	active := 0
	for _, l := range body.Leagues {
		if l.IsActive {
			active++
			assert.Equal(t, "Settlers", l.Name)
		}
	}
	assert.Equal(t, 1, active)
}
