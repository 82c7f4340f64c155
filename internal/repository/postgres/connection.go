package postgres

import (
	"context"
	"errors"

	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/dom/poe-uniques-server/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.ItemType{},
		&domain.CatalogItem{},
		&domain.League{},
		&domain.LeaguePresence{},
		&domain.LeagueStats{},
		&domain.OddsMeta{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		ItemType:    NewItemTypeRepository(db),
		CatalogItem: NewCatalogItemRepository(db),
		League:      NewLeagueRepository(db),
		Presence:    NewPresenceRepository(db),
		Stats:       NewStatsRepository(db),
		OddsMeta:    NewOddsMetaRepository(db),
	}
}

type transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) repository.Transactor {
	return &transactor{db: db}
}

func (t *transactor) Transaction(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// translateNotFound maps gorm's record-not-found onto the repository
// sentinel so callers never depend on gorm.
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}
