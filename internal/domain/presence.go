package domain

import (
	"time"

	"github.com/google/uuid"
)

// LeaguePresence records that an item has been observed in a league.
// LastSeen never moves backward.
type LeaguePresence struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CatalogItemID uuid.UUID `json:"catalogItemId" gorm:"type:uuid;not null;uniqueIndex:idx_league_presences_item_league"`
	LeagueID      uuid.UUID `json:"leagueId" gorm:"type:uuid;not null;uniqueIndex:idx_league_presences_item_league"`
	FirstSeen     time.Time `json:"firstSeen" gorm:"not null"`
	LastSeen      time.Time `json:"lastSeen" gorm:"not null"`
}
