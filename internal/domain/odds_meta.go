package domain

import (
	"time"

	"github.com/google/uuid"
)

// OddsMeta is community-sourced Ancient Orb odds for a single item. One row
// per item; re-importing a pool fully replaces the previous values.
// Chance is a percentage in [0, 100].
type OddsMeta struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CatalogItemID uuid.UUID `json:"catalogItemId" gorm:"type:uuid;not null;uniqueIndex"`
	Pool          string    `json:"pool" gorm:"not null"`
	Tier          *int      `json:"tier"`
	Chance        *float64  `json:"chance"`
	AvgOrbs       *int      `json:"avgOrbs"`
	MinIlvl       *int      `json:"minIlvl"`
	Source        string    `json:"source"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (OddsMeta) TableName() string {
	return "odds_meta"
}
