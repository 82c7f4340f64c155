package postgres

import (
	"context"

	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type oddsMetaRepository struct {
	db *gorm.DB
}

func NewOddsMetaRepository(db *gorm.DB) *oddsMetaRepository {
	return &oddsMetaRepository{db: db}
}

// Upsert fully replaces the item's odds row; a pool re-import never merges
// with previous values.
func (r *oddsMetaRepository) Upsert(ctx context.Context, meta *domain.OddsMeta) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "catalog_item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"pool", "tier", "chance", "avg_orbs", "min_ilvl", "source", "updated_at",
		}),
	}).Create(meta).Error
}

func (r *oddsMetaRepository) GetByItemID(ctx context.Context, itemID uuid.UUID) (*domain.OddsMeta, error) {
	var meta domain.OddsMeta
	err := r.db.WithContext(ctx).First(&meta, "catalog_item_id = ?", itemID).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &meta, nil
}
