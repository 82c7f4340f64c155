package postgres

import (
	"context"
	"time"

	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type presenceRepository struct {
	db *gorm.DB
}

func NewPresenceRepository(db *gorm.DB) *presenceRepository {
	return &presenceRepository{db: db}
}

// Record creates the (item, league) presence row on first observation and
// otherwise advances last_seen. GREATEST keeps last_seen monotonic: an
// older observation date never moves it backward.
func (r *presenceRepository) Record(ctx context.Context, itemID, leagueID uuid.UUID, observed time.Time) error {
	presence := &domain.LeaguePresence{
		ID:            uuid.New(),
		CatalogItemID: itemID,
		LeagueID:      leagueID,
		FirstSeen:     observed,
		LastSeen:      observed,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "catalog_item_id"}, {Name: "league_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_seen": gorm.Expr("GREATEST(league_presences.last_seen, EXCLUDED.last_seen)"),
		}),
	}).Create(presence).Error
}

func (r *presenceRepository) Get(ctx context.Context, itemID, leagueID uuid.UUID) (*domain.LeaguePresence, error) {
	var presence domain.LeaguePresence
	err := r.db.WithContext(ctx).
		First(&presence, "catalog_item_id = ? AND league_id = ?", itemID, leagueID).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &presence, nil
}
