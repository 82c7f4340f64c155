package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dom/poe-uniques-server/internal/adapter"
	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/dom/poe-uniques-server/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// IngestService is the reconciliation engine: it merges canonical feed
// records into the catalog without duplicating entities or regressing
// previously learned classification data.
type IngestService struct {
	tx repository.Transactor
}

func NewIngestService(tx repository.Transactor) *IngestService {
	return &IngestService{tx: tx}
}

type ImportCounters struct {
	ItemTypesCreated int `json:"itemTypesCreated"`
	ItemsCreated     int `json:"itemsCreated"`
	ItemsUpdated     int `json:"itemsUpdated"`
	PresenceUpserted int `json:"presenceUpserted"`
	Malformed        int `json:"malformed"`
}

func (c *ImportCounters) Add(other ImportCounters) {
	c.ItemTypesCreated += other.ItemTypesCreated
	c.ItemsCreated += other.ItemsCreated
	c.ItemsUpdated += other.ItemsUpdated
	c.PresenceUpserted += other.PresenceUpserted
	c.Malformed += other.Malformed
}

type OddsImportResult struct {
	Imported  int      `json:"imported"`
	Malformed int      `json:"malformed"`
	Unmatched []string `json:"unmatched"`
}

// ImportMarketBatch reconciles one feed category's records into the catalog
// inside a single transaction. Records are processed in input order; a
// persistence failure rolls the whole batch back.
func (s *IngestService) ImportMarketBatch(ctx context.Context, leagueName string, records []domain.RawRecord, observedAt time.Time) (ImportCounters, error) {
	var counters ImportCounters

	err := s.tx.Transaction(ctx, func(repos *repository.Repositories) error {
		league, err := repos.League.GetOrCreateByName(ctx, leagueName)
		if err != nil {
			return fmt.Errorf("resolving league %q: %w", leagueName, err)
		}

		for i := range records {
			if err := s.reconcileMarketRecord(ctx, repos, league, &records[i], observedAt, &counters); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ImportCounters{}, err
	}
	return counters, nil
}

func (s *IngestService) reconcileMarketRecord(ctx context.Context, repos *repository.Repositories, league *domain.League, rec *domain.RawRecord, observedAt time.Time, counters *ImportCounters) error {
	itemType, created, err := s.resolveItemType(ctx, repos, rec)
	if err != nil {
		return err
	}
	if created {
		counters.ItemTypesCreated++
	}

	// Rows without a stable feed id cannot be upserted safely; the base
	// type enrichment above is still kept.
	if rec.ExternalID == nil {
		return nil
	}

	item, createdItem, err := s.upsertCatalogItem(ctx, repos, rec, itemType)
	if err != nil {
		return err
	}
	if createdItem {
		counters.ItemsCreated++
	} else {
		counters.ItemsUpdated++
	}

	if err := repos.Presence.Record(ctx, item.ID, league.ID, observedAt); err != nil {
		return fmt.Errorf("recording presence for %q: %w", item.Name, err)
	}
	counters.PresenceUpserted++

	if rec.Market != nil {
		stats := &domain.LeagueStats{
			ID:            uuid.New(),
			CatalogItemID: item.ID,
			LeagueID:      league.ID,
			ChaosValue:    rec.Market.ChaosValue,
			DivineValue:   rec.Market.DivineValue,
			ListingCount:  rec.Market.ListingCount,
			Sparkline:     rec.Market.Sparkline,
			LastFetchedAt: observedAt,
		}
		if err := repos.Stats.Upsert(ctx, stats); err != nil {
			return fmt.Errorf("upserting stats for %q: %w", item.Name, err)
		}
	}

	return nil
}

// resolveItemType gets or creates the base type and applies monotonic
// enrichment: a class of "other" upgrades to a specific hint, an unset slot
// takes the hinted one. A specific value is never replaced by a generic one.
func (s *IngestService) resolveItemType(ctx context.Context, repos *repository.Repositories, rec *domain.RawRecord) (*domain.ItemType, bool, error) {
	class := rec.ClassHint
	if class == "" {
		class = domain.ClassOther
	}

	itemType, err := repos.ItemType.GetByNameAndClass(ctx, rec.BaseName, class)
	if err != nil && !isNotFound(err) {
		return nil, false, err
	}

	dirty := false
	if itemType == nil {
		if class == domain.ClassOther {
			// A generic sighting is satisfied by any already-classified
			// row with the same name; never downgrade it back to "other".
			itemType, err = repos.ItemType.GetByName(ctx, rec.BaseName)
			if err != nil && !isNotFound(err) {
				return nil, false, err
			}
		} else {
			// A generic row may have created this type before the class
			// was known; upgrade it in place instead of creating a sibling.
			itemType, err = repos.ItemType.GetByNameAndClass(ctx, rec.BaseName, domain.ClassOther)
			if err != nil && !isNotFound(err) {
				return nil, false, err
			}
			if itemType != nil {
				itemType.Class = class
				dirty = true
			}
		}
	}

	if itemType == nil {
		itemType = &domain.ItemType{
			ID:    uuid.New(),
			Name:  rec.BaseName,
			Class: class,
			Slot:  rec.SlotHint,
		}
		if err := repos.ItemType.Create(ctx, itemType); err != nil {
			return nil, false, fmt.Errorf("creating item type %q: %w", rec.BaseName, err)
		}
		return itemType, true, nil
	}

	if itemType.Slot == "" && rec.SlotHint != "" {
		itemType.Slot = rec.SlotHint
		dirty = true
	}
	if dirty {
		if err := repos.ItemType.Update(ctx, itemType); err != nil {
			return nil, false, fmt.Errorf("enriching item type %q: %w", rec.BaseName, err)
		}
	}
	return itemType, false, nil
}

// upsertCatalogItem treats the incoming batch as authoritative: on a match
// by external id every descriptive field is overwritten with the latest
// values, no partial merge.
func (s *IngestService) upsertCatalogItem(ctx context.Context, repos *repository.Repositories, rec *domain.RawRecord, itemType *domain.ItemType) (*domain.CatalogItem, bool, error) {
	item, err := repos.CatalogItem.GetByExternalID(ctx, *rec.ExternalID)
	if err != nil && !isNotFound(err) {
		return nil, false, err
	}

	if item == nil {
		item = &domain.CatalogItem{
			ID:             uuid.New(),
			Name:           rec.UniqueName,
			NormalizedName: domain.NameKey(rec.UniqueName),
			ItemTypeID:     itemType.ID,
			ExternalID:     rec.ExternalID,
			RequiredLevel:  rec.RequiredLevel,
			ImageURL:       rec.ImageURL,
			FlavourText:    rec.FlavourText,
			ModsText:       rec.ModsText,
		}
		if err := repos.CatalogItem.Create(ctx, item); err != nil {
			return nil, false, fmt.Errorf("creating catalog item %q: %w", rec.UniqueName, err)
		}
		return item, true, nil
	}

	item.Name = rec.UniqueName
	item.NormalizedName = domain.NameKey(rec.UniqueName)
	item.ItemTypeID = itemType.ID
	item.RequiredLevel = rec.RequiredLevel
	item.ImageURL = rec.ImageURL
	item.FlavourText = rec.FlavourText
	item.ModsText = rec.ModsText
	if err := repos.CatalogItem.Update(ctx, item); err != nil {
		return nil, false, fmt.Errorf("updating catalog item %q: %w", rec.UniqueName, err)
	}
	return item, false, nil
}

// ImportOddsBatch resolves metadata records against the existing catalog by
// normalized name. Unmatched names are reported, not created; a name shared
// by several catalog items cannot be resolved and is reported the same way.
// Rows that resolve to the same item are deduplicated before upsert: lowest
// non-absent avgOrbs survives, first in input order on ties.
func (s *IngestService) ImportOddsBatch(ctx context.Context, records []domain.RawRecord, pool string) (*OddsImportResult, error) {
	result := &OddsImportResult{}

	err := s.tx.Transaction(ctx, func(repos *repository.Repositories) error {
		items, err := repos.CatalogItem.GetAll(ctx)
		if err != nil {
			return err
		}
		byName := make(map[string]*domain.CatalogItem, len(items))
		ambiguous := make(map[string]bool)
		for _, item := range items {
			if _, seen := byName[item.NormalizedName]; seen {
				ambiguous[item.NormalizedName] = true
				continue
			}
			byName[item.NormalizedName] = item
		}

		best := make(map[uuid.UUID]*domain.RawRecord)
		var order []uuid.UUID

		for i := range records {
			rec := &records[i]
			key := domain.NameKey(rec.UniqueName)
			item, ok := byName[key]
			if !ok || ambiguous[key] {
				result.Unmatched = append(result.Unmatched, key)
				continue
			}

			current, seen := best[item.ID]
			if !seen {
				best[item.ID] = rec
				order = append(order, item.ID)
			} else if cheaperOdds(rec, current) {
				best[item.ID] = rec
			}
		}

		for _, itemID := range order {
			rec := best[itemID]
			meta := &domain.OddsMeta{
				ID:            uuid.New(),
				CatalogItemID: itemID,
				Pool:          pool,
				Tier:          rec.Odds.Tier,
				Chance:        rec.Odds.Chance,
				AvgOrbs:       rec.Odds.AvgOrbs,
				MinIlvl:       rec.Odds.MinIlvl,
				Source:        rec.Odds.Source,
			}
			if err := repos.OddsMeta.Upsert(ctx, meta); err != nil {
				return fmt.Errorf("upserting odds for item %s: %w", itemID, err)
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ImportOddsFile reads an odds snapshot from disk and imports it under the
// given pool key.
func (s *IngestService) ImportOddsFile(ctx context.Context, path, pool string) (*OddsImportResult, error) {
	pool = strings.ToLower(strings.TrimSpace(pool))
	if pool == "" {
		pool = "belt"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading odds file: %w", err)
	}

	records, malformed, err := adapter.ParseOddsFile(data)
	if err != nil {
		return nil, err
	}

	result, err := s.ImportOddsBatch(ctx, records, pool)
	if err != nil {
		return nil, err
	}
	result.Malformed = malformed

	log.Info().
		Str("pool", pool).
		Int("imported", result.Imported).
		Int("malformed", result.Malformed).
		Int("unmatched", len(result.Unmatched)).
		Msg("odds import finished")
	return result, nil
}

// cheaperOdds reports whether a beats b in the dedup ordering: a non-absent
// avgOrbs beats an absent one, a lower value beats a higher one. Equal or
// both-absent keeps b (the earlier row).
func cheaperOdds(a, b *domain.RawRecord) bool {
	if a.Odds == nil || a.Odds.AvgOrbs == nil {
		return false
	}
	if b.Odds == nil || b.Odds.AvgOrbs == nil {
		return true
	}
	return *a.Odds.AvgOrbs < *b.Odds.AvgOrbs
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
