package adapter_test

import (
	"testing"

	"github.com/dom/poe-uniques-server/internal/adapter"
	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNinjaPayload(t *testing.T) {
	payload := []byte(`{
		"lines": [
			{
				"id": 101,
				"name": "  Kaom's   Heart ",
				"baseType": "Glorious Plate",
				"icon": "https://example.com/kaom.png",
				"levelRequired": 68,
				"implicitMods": ["Has no Sockets", null, ""],
				"explicitMods": ["+500 to maximum Life"],
				"flavourText": ["The warrior who", "fears will fall."],
				"chaosValue": 50.5,
				"divineValue": 0.25,
				"listingCount": 240,
				"sparkline": {"data": [0, 1.2], "totalChange": 1.2}
			},
			{
				"name": "No Base Row"
			},
			{
				"baseType": "Orphaned Base"
			}
		]
	}`)

	records, malformed, err := adapter.ParseNinjaPayload(payload, "UniqueArmour")
	require.NoError(t, err)

	assert.Equal(t, 2, malformed)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Kaom's Heart", rec.UniqueName)
	assert.Equal(t, "Glorious Plate", rec.BaseName)
	assert.Equal(t, domain.ClassArmour, rec.ClassHint)
	assert.Equal(t, domain.SlotBody, rec.SlotHint)
	require.NotNil(t, rec.ExternalID)
	assert.Equal(t, int64(101), *rec.ExternalID)
	require.NotNil(t, rec.RequiredLevel)
	assert.Equal(t, 68, *rec.RequiredLevel)
	assert.Equal(t, "Has no Sockets\n+500 to maximum Life", rec.ModsText)
	assert.Equal(t, "The warrior who\nfears will fall.", rec.FlavourText)

	require.NotNil(t, rec.Market)
	require.NotNil(t, rec.Market.ChaosValue)
	assert.Equal(t, 50.5, *rec.Market.ChaosValue)
	require.NotNil(t, rec.Market.ListingCount)
	assert.Equal(t, 240, *rec.Market.ListingCount)
	assert.NotEmpty(t, rec.Market.Sparkline)
}

func TestParseNinjaPayload_BaseTypeFallsBackToTypeLine(t *testing.T) {
	payload := []byte(`{"lines": [{"id": 1, "name": "Headhunter", "typeLine": "Leather Belt"}]}`)

	records, malformed, err := adapter.ParseNinjaPayload(payload, "UniqueAccessory")
	require.NoError(t, err)
	assert.Zero(t, malformed)
	require.Len(t, records, 1)
	assert.Equal(t, "Leather Belt", records[0].BaseName)
	assert.Equal(t, domain.SlotBelt, records[0].SlotHint)
}

func TestParseNinjaPayload_RequiredLevel(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int
	}{
		{name: "number", raw: `64`, want: intPtr(64)},
		{name: "numeric string", raw: `"42"`, want: intPtr(42)},
		{name: "negative is absent", raw: `-3`, want: nil},
		{name: "garbage is absent", raw: `"soon"`, want: nil},
		{name: "null is absent", raw: `null`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := []byte(`{"lines": [{"id": 7, "name": "X", "baseType": "Y", "levelRequired": ` + tt.raw + `}]}`)
			records, _, err := adapter.ParseNinjaPayload(payload, "UniqueWeapon")
			require.NoError(t, err)
			require.Len(t, records, 1)

			if tt.want == nil {
				assert.Nil(t, records[0].RequiredLevel)
				return
			}
			require.NotNil(t, records[0].RequiredLevel)
			assert.Equal(t, *tt.want, *records[0].RequiredLevel)
		})
	}
}

func TestParseNinjaPayload_SlotInference(t *testing.T) {
	tests := []struct {
		category string
		baseType string
		class    domain.ItemClass
		slot     domain.Slot
	}{
		{"UniqueArmour", "Titan Greaves Boots", domain.ClassArmour, domain.SlotBoots},
		{"UniqueArmour", "Dragonscale Gauntlets", domain.ClassArmour, domain.SlotGloves},
		{"UniqueArmour", "Nightmare Bascinet Helmet", domain.ClassArmour, domain.SlotHelmet},
		{"UniqueArmour", "Colossal Tower Shield", domain.ClassArmour, domain.SlotShield},
		{"UniqueArmour", "Glorious Plate", domain.ClassArmour, domain.SlotBody},
		{"UniqueAccessory", "Leather Belt", domain.ClassAccessory, domain.SlotBelt},
		{"UniqueAccessory", "Ruby Ring", domain.ClassAccessory, domain.SlotRing},
		{"UniqueAccessory", "Onyx Amulet", domain.ClassAccessory, domain.SlotAmulet},
		{"UniqueJewel", "Cobalt Jewel", domain.ClassJewel, domain.SlotJewel},
		{"UniqueFlask", "Quartz Flask", domain.ClassFlask, domain.SlotFlask},
		{"UniqueWeapon", "Thicket Bow", domain.ClassWeapon, domain.SlotWeapon},
	}

	for _, tt := range tests {
		t.Run(tt.category+"/"+tt.baseType, func(t *testing.T) {
			payload := []byte(`{"lines": [{"id": 1, "name": "X", "baseType": "` + tt.baseType + `"}]}`)
			records, _, err := adapter.ParseNinjaPayload(payload, tt.category)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.class, records[0].ClassHint)
			assert.Equal(t, tt.slot, records[0].SlotHint)
		})
	}
}

func TestParseNinjaPayload_UnknownCategoryLeavesHintsAbsent(t *testing.T) {
	payload := []byte(`{"lines": [{"id": 1, "name": "X", "baseType": "Strange Base"}]}`)

	records, _, err := adapter.ParseNinjaPayload(payload, "UniqueMap")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].ClassHint)
	assert.Empty(t, records[0].SlotHint)
}

func TestParseNinjaPayload_FlavourTextAsString(t *testing.T) {
	payload := []byte(`{"lines": [{"id": 1, "name": "X", "baseType": "Y", "flavourText": "  one line  "}]}`)

	records, _, err := adapter.ParseNinjaPayload(payload, "UniqueWeapon")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "one line", records[0].FlavourText)
}

func TestParseNinjaPayload_BadDocument(t *testing.T) {
	_, _, err := adapter.ParseNinjaPayload([]byte(`not json`), "UniqueArmour")
	assert.Error(t, err)
}

func intPtr(n int) *int { return &n }
