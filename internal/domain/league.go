package domain

import (
	"time"

	"github.com/google/uuid"
)

// League is a time-bounded game mode. At most one league is flagged active;
// the repository enforces that on writes.
type League struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex"`
	IsActive  bool      `json:"isActive" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
