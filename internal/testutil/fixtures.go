package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeagueBuilder creates test leagues with a builder pattern
type LeagueBuilder struct {
	name     string
	isActive bool
}

func NewLeagueBuilder() *LeagueBuilder {
	return &LeagueBuilder{
		name: fmt.Sprintf("league_%s", uuid.New().String()[:8]),
	}
}

func (b *LeagueBuilder) WithName(name string) *LeagueBuilder {
	b.name = name
	return b
}

func (b *LeagueBuilder) Active() *LeagueBuilder {
	b.isActive = true
	return b
}

func (b *LeagueBuilder) Build(t *testing.T, db *gorm.DB) *domain.League {
	t.Helper()

	league := &domain.League{
		ID:       uuid.New(),
		Name:     b.name,
		IsActive: b.isActive,
	}
	if err := db.Create(league).Error; err != nil {
		t.Fatalf("failed to create league: %v", err)
	}
	return league
}

// ItemTypeBuilder creates test item types
type ItemTypeBuilder struct {
	name  string
	class domain.ItemClass
	slot  domain.Slot
}

func NewItemTypeBuilder() *ItemTypeBuilder {
	return &ItemTypeBuilder{
		name:  fmt.Sprintf("Base %s", uuid.New().String()[:8]),
		class: domain.ClassOther,
	}
}

func (b *ItemTypeBuilder) WithName(name string) *ItemTypeBuilder {
	b.name = name
	return b
}

func (b *ItemTypeBuilder) WithClass(class domain.ItemClass) *ItemTypeBuilder {
	b.class = class
	return b
}

func (b *ItemTypeBuilder) WithSlot(slot domain.Slot) *ItemTypeBuilder {
	b.slot = slot
	return b
}

func (b *ItemTypeBuilder) Build(t *testing.T, db *gorm.DB) *domain.ItemType {
	t.Helper()

	itemType := &domain.ItemType{
		ID:    uuid.New(),
		Name:  b.name,
		Class: b.class,
		Slot:  b.slot,
	}
	if err := db.Create(itemType).Error; err != nil {
		t.Fatalf("failed to create item type: %v", err)
	}
	return itemType
}

// UniqueBuilder creates test catalog items, optionally with presence, stats
// and odds rows in a league
type UniqueBuilder struct {
	name          string
	itemType      *domain.ItemType
	externalID    *int64
	requiredLevel *int
	league        *domain.League
	chaosValue    *float64
	tier          *int
	avgOrbs       *int
}

func NewUniqueBuilder() *UniqueBuilder {
	return &UniqueBuilder{
		name: fmt.Sprintf("Unique %s", uuid.New().String()[:8]),
	}
}

func (b *UniqueBuilder) WithName(name string) *UniqueBuilder {
	b.name = name
	return b
}

func (b *UniqueBuilder) WithItemType(itemType *domain.ItemType) *UniqueBuilder {
	b.itemType = itemType
	return b
}

func (b *UniqueBuilder) WithExternalID(id int64) *UniqueBuilder {
	b.externalID = &id
	return b
}

func (b *UniqueBuilder) WithRequiredLevel(level int) *UniqueBuilder {
	b.requiredLevel = &level
	return b
}

// InLeague adds a presence row for the league
func (b *UniqueBuilder) InLeague(league *domain.League) *UniqueBuilder {
	b.league = league
	return b
}

// WithChaosValue adds a stats row in the builder's league
func (b *UniqueBuilder) WithChaosValue(v float64) *UniqueBuilder {
	b.chaosValue = &v
	return b
}

// WithOdds adds an odds row
func (b *UniqueBuilder) WithOdds(tier int) *UniqueBuilder {
	b.tier = &tier
	return b
}

func (b *UniqueBuilder) WithAvgOrbs(orbs int) *UniqueBuilder {
	b.avgOrbs = &orbs
	return b
}

func (b *UniqueBuilder) Build(t *testing.T, db *gorm.DB) *domain.CatalogItem {
	t.Helper()

	itemType := b.itemType
	if itemType == nil {
		itemType = NewItemTypeBuilder().Build(t, db)
	}

	item := &domain.CatalogItem{
		ID:             uuid.New(),
		Name:           b.name,
		NormalizedName: domain.NameKey(b.name),
		ItemTypeID:     itemType.ID,
		ExternalID:     b.externalID,
		RequiredLevel:  b.requiredLevel,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create catalog item: %v", err)
	}

	if b.league != nil {
		now := time.Now().UTC().Truncate(time.Second)
		presence := &domain.LeaguePresence{
			ID:            uuid.New(),
			CatalogItemID: item.ID,
			LeagueID:      b.league.ID,
			FirstSeen:     now,
			LastSeen:      now,
		}
		if err := db.Create(presence).Error; err != nil {
			t.Fatalf("failed to create presence: %v", err)
		}

		if b.chaosValue != nil {
			stats := &domain.LeagueStats{
				ID:            uuid.New(),
				CatalogItemID: item.ID,
				LeagueID:      b.league.ID,
				ChaosValue:    b.chaosValue,
				LastFetchedAt: now,
			}
			if err := db.Create(stats).Error; err != nil {
				t.Fatalf("failed to create stats: %v", err)
			}
		}
	}

	if b.tier != nil || b.avgOrbs != nil {
		meta := &domain.OddsMeta{
			ID:            uuid.New(),
			CatalogItemID: item.ID,
			Pool:          "belt",
			Tier:          b.tier,
			AvgOrbs:       b.avgOrbs,
		}
		if err := db.Create(meta).Error; err != nil {
			t.Fatalf("failed to create odds meta: %v", err)
		}
	}

	return item
}

// SeedUniques creates n catalog items present in the given league
func SeedUniques(t *testing.T, db *gorm.DB, league *domain.League, n int) []*domain.CatalogItem {
	t.Helper()

	items := make([]*domain.CatalogItem, 0, n)
	for i := 0; i < n; i++ {
		item := NewUniqueBuilder().
			WithName(fmt.Sprintf("Seeded Unique %02d", i)).
			WithExternalID(int64(9000 + i)).
			InLeague(league).
			Build(t, db)
		items = append(items, item)
	}
	return items
}
