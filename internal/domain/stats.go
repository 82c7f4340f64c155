package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LeagueStats holds the latest market snapshot for an (item, league) pair.
// No history is kept; every fetch overwrites the previous values.
type LeagueStats struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CatalogItemID uuid.UUID      `json:"catalogItemId" gorm:"type:uuid;not null;uniqueIndex:idx_league_stats_item_league"`
	LeagueID      uuid.UUID      `json:"leagueId" gorm:"type:uuid;not null;uniqueIndex:idx_league_stats_item_league"`
	ChaosValue    *float64       `json:"chaosValue"`
	DivineValue   *float64       `json:"divineValue"`
	ListingCount  *int           `json:"listingCount"`
	Sparkline     datatypes.JSON `json:"sparkline" gorm:"type:jsonb"` // raw feed sparkline, passed through
	LastFetchedAt time.Time      `json:"lastFetchedAt" gorm:"not null"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}
