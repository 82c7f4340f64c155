package domain

import "gorm.io/datatypes"

// RawRecord is the canonical shape every feed adapter emits. The
// reconciliation engine only ever sees this; feed-specific quirks stay in
// the adapters.
type RawRecord struct {
	UniqueName    string
	BaseName      string
	ClassHint     ItemClass // empty = no hint, reconciler defaults to "other"
	SlotHint      Slot      // empty = no hint
	ExternalID    *int64
	RequiredLevel *int
	ImageURL      string
	ModsText      string
	FlavourText   string
	Market        *MarketSnapshot
	Odds          *OddsSnapshot
}

// MarketSnapshot carries the pricing fields of a market feed row.
type MarketSnapshot struct {
	ChaosValue   *float64
	DivineValue  *float64
	ListingCount *int
	Sparkline    datatypes.JSON
}

// OddsSnapshot carries the odds fields of a metadata feed row.
// Chance is a percentage in [0, 100].
type OddsSnapshot struct {
	Tier    *int
	Chance  *float64
	AvgOrbs *int
	MinIlvl *int
	Source  string
}
