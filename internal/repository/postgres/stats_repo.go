package postgres

import (
	"context"

	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *statsRepository {
	return &statsRepository{db: db}
}

// Upsert overwrites the (item, league) snapshot unconditionally.
// Last write wins; no history is kept.
func (r *statsRepository) Upsert(ctx context.Context, stats *domain.LeagueStats) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "catalog_item_id"}, {Name: "league_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"chaos_value", "divine_value", "listing_count", "sparkline", "last_fetched_at", "updated_at",
		}),
	}).Create(stats).Error
}

func (r *statsRepository) Get(ctx context.Context, itemID, leagueID uuid.UUID) (*domain.LeagueStats, error) {
	var stats domain.LeagueStats
	err := r.db.WithContext(ctx).
		First(&stats, "catalog_item_id = ? AND league_id = ?", itemID, leagueID).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &stats, nil
}
