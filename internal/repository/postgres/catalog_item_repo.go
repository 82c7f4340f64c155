package postgres

import (
	"context"
	"strings"

	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/dom/poe-uniques-server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type catalogItemRepository struct {
	db *gorm.DB
}

func NewCatalogItemRepository(db *gorm.DB) *catalogItemRepository {
	return &catalogItemRepository{db: db}
}

func (r *catalogItemRepository) Create(ctx context.Context, item *domain.CatalogItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *catalogItemRepository) Update(ctx context.Context, item *domain.CatalogItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *catalogItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	err := r.db.WithContext(ctx).Preload("ItemType").First(&item, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *catalogItemRepository) GetByExternalID(ctx context.Context, externalID int64) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	err := r.db.WithContext(ctx).First(&item, "external_id = ?", externalID).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *catalogItemRepository) GetAll(ctx context.Context) ([]*domain.CatalogItem, error) {
	var items []*domain.CatalogItem
	err := r.db.WithContext(ctx).Find(&items).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return items, nil
}

const uniqueRowSelect = `
	ci.id, ci.name, ci.external_id, ci.required_level, ci.image_url, ci.flavour_text, ci.mods_text,
	it.id AS item_type_id, it.name AS item_type_name, it.class, it.slot,
	ls.chaos_value, ls.divine_value, ls.listing_count, ls.last_fetched_at,
	om.id IS NOT NULL AS has_odds, om.pool AS odds_pool, om.tier, om.chance,
	om.avg_orbs, om.min_ilvl, om.source AS odds_source`

// Default composite ranking: items with odds first, then ascending tier,
// then descending chaos value, name as the final tie-break. Absent values
// sort last within their group.
const uniqueRowOrder = `
	CASE WHEN om.id IS NULL THEN 1 ELSE 0 END,
	om.tier ASC NULLS LAST,
	ls.chaos_value DESC NULLS LAST,
	ci.name ASC`

// Columns behind the single-field ordering override. Keys mirror
// repository.ValidOrdering.
var orderingColumns = map[string]string{
	"name":           "ci.name",
	"required_level": "ci.required_level",
	"chaos_value":    "ls.chaos_value",
	"divine_value":   "ls.divine_value",
	"listing_count":  "ls.listing_count",
	"tier":           "om.tier",
}

func orderFor(ordering string) string {
	if ordering == "" {
		return uniqueRowOrder
	}
	field := strings.TrimPrefix(ordering, "-")
	col, ok := orderingColumns[field]
	if !ok {
		return uniqueRowOrder
	}
	dir := "ASC"
	if strings.HasPrefix(ordering, "-") {
		dir = "DESC"
	}
	return col + " " + dir + " NULLS LAST, ci.name ASC"
}

// List returns one page of catalog items present in the given league, joined
// with that league's latest stats and the item's odds metadata.
func (r *catalogItemRepository) List(ctx context.Context, leagueID uuid.UUID, filter repository.UniqueFilter, page repository.Page) ([]*repository.UniqueRow, int64, error) {
	var total int64
	if err := r.scoped(ctx, leagueID, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*repository.UniqueRow
	err := r.scoped(ctx, leagueID, filter).
		Select(uniqueRowSelect).
		Order(orderFor(filter.Ordering)).
		Limit(page.Size).
		Offset(page.Offset()).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *catalogItemRepository) GetDetail(ctx context.Context, id uuid.UUID, leagueID uuid.UUID) (*repository.UniqueRow, error) {
	var row repository.UniqueRow
	err := r.scoped(ctx, leagueID, repository.UniqueFilter{}).
		Select(uniqueRowSelect).
		Where("ci.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &row, nil
}

// scoped builds the league-scoped join tree the query engine evaluates:
// presence restricts to the league, stats and odds are left-joined.
func (r *catalogItemRepository) scoped(ctx context.Context, leagueID uuid.UUID, filter repository.UniqueFilter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Table("catalog_items AS ci").
		Joins("JOIN item_types it ON it.id = ci.item_type_id").
		Joins("JOIN league_presences lp ON lp.catalog_item_id = ci.id AND lp.league_id = ?", leagueID).
		Joins("LEFT JOIN league_stats ls ON ls.catalog_item_id = ci.id AND ls.league_id = ?", leagueID).
		Joins("LEFT JOIN odds_meta om ON om.catalog_item_id = ci.id")

	if filter.ItemTypeID != nil {
		q = q.Where("ci.item_type_id = ?", *filter.ItemTypeID)
	}
	if filter.Class != "" {
		q = q.Where("it.class = ?", filter.Class)
	}
	if filter.Slot != "" {
		q = q.Where("it.slot = ?", filter.Slot)
	}
	if filter.RequiredLevel != nil {
		q = q.Where("ci.required_level = ?", *filter.RequiredLevel)
	}
	if filter.MinLevel != nil {
		q = q.Where("ci.required_level >= ?", *filter.MinLevel)
	}
	if filter.MaxLevel != nil {
		q = q.Where("ci.required_level <= ?", *filter.MaxLevel)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("ci.name ILIKE ? OR it.name ILIKE ?", pattern, pattern)
	}
	return q
}
