package repository

import (
	"strings"
	"time"

	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/google/uuid"
)

// UniqueFilter is the explicit filter set the query engine evaluates.
// Zero values mean "not filtered".
type UniqueFilter struct {
	ItemTypeID    *uuid.UUID
	Class         domain.ItemClass
	Slot          domain.Slot
	RequiredLevel *int
	MinLevel      *int
	MaxLevel      *int
	Search        string

	// Ordering overrides the default composite ranking with a single field
	// from orderingFields, prefixed with "-" for descending. Empty keeps
	// the default. Callers validate with ValidOrdering first.
	Ordering string
}

var orderingFields = map[string]bool{
	"name":           true,
	"required_level": true,
	"chaos_value":    true,
	"divine_value":   true,
	"listing_count":  true,
	"tier":           true,
}

func ValidOrdering(ordering string) bool {
	return orderingFields[strings.TrimPrefix(ordering, "-")]
}

type Page struct {
	Number int // 1-based
	Size   int
}

func (p Page) Offset() int {
	n := p.Number
	if n < 1 {
		n = 1
	}
	return (n - 1) * p.Size
}

// UniqueRow is one league-scoped result row: a catalog item joined with its
// type, latest league stats and odds metadata. Stats and odds fields are nil
// when no row exists on that side.
type UniqueRow struct {
	ID            uuid.UUID
	Name          string
	ExternalID    *int64
	RequiredLevel *int
	ImageURL      string
	FlavourText   string
	ModsText      string

	ItemTypeID   uuid.UUID
	ItemTypeName string
	Class        domain.ItemClass
	Slot         domain.Slot

	ChaosValue    *float64
	DivineValue   *float64
	ListingCount  *int
	LastFetchedAt *time.Time

	HasOdds    bool
	OddsPool   *string
	Tier       *int
	Chance     *float64
	AvgOrbs    *int
	MinIlvl    *int
	OddsSource *string
}
