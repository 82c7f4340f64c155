package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CatalogItem is a specific unique item. When the feed supplies a stable
// external id it is the primary identity; metadata-only feeds fall back to
// the normalized lowercased name. Names are not unique: the market feed
// carries several uniques sharing a name under distinct ids (the Grand
// Spectrum jewels), so normalized_name is only an indexed lookup key.
type CatalogItem struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	NormalizedName string    `json:"-" gorm:"not null;index"`
	ItemTypeID     uuid.UUID `json:"itemTypeId" gorm:"type:uuid;not null;index"`
	ItemType       *ItemType `json:"itemType,omitempty"`
	ExternalID     *int64    `json:"externalId" gorm:"uniqueIndex"`
	RequiredLevel  *int      `json:"requiredLevel"`
	ImageURL       string    `json:"imageUrl"`
	FlavourText    string    `json:"flavourText"`
	ModsText       string    `json:"modsText"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NormalizeName collapses internal whitespace and trims the ends. Identity
// comparisons use NameKey, the lowercased form of this.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func NameKey(s string) string {
	return strings.ToLower(NormalizeName(s))
}
