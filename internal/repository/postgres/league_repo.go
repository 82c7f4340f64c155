package postgres

import (
	"context"
	"errors"

	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type leagueRepository struct {
	db *gorm.DB
}

func NewLeagueRepository(db *gorm.DB) *leagueRepository {
	return &leagueRepository{db: db}
}

func (r *leagueRepository) GetByName(ctx context.Context, name string) (*domain.League, error) {
	var league domain.League
	err := r.db.WithContext(ctx).First(&league, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrLeagueNotFound
	}
	if err != nil {
		return nil, err
	}
	return &league, nil
}

func (r *leagueRepository) GetOrCreateByName(ctx context.Context, name string) (*domain.League, error) {
	league, err := r.GetByName(ctx, name)
	if err == nil {
		return league, nil
	}
	if !errors.Is(err, domain.ErrLeagueNotFound) {
		return nil, err
	}

	league = &domain.League{ID: uuid.New(), Name: name}
	if err := r.db.WithContext(ctx).Create(league).Error; err != nil {
		return nil, err
	}
	return league, nil
}

func (r *leagueRepository) GetActive(ctx context.Context) (*domain.League, error) {
	var league domain.League
	err := r.db.WithContext(ctx).First(&league, "is_active = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNoActiveLeague
	}
	if err != nil {
		return nil, err
	}
	return &league, nil
}

// SetActive flags one league active and clears the flag everywhere else in a
// single transaction, keeping at most one active row.
func (r *leagueRepository) SetActive(ctx context.Context, name string) (*domain.League, error) {
	var league *domain.League
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l domain.League
		if err := tx.First(&l, "name = ?", name).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLeagueNotFound
			}
			return err
		}

		if err := tx.Model(&domain.League{}).
			Where("is_active = ? AND id <> ?", true, l.ID).
			Update("is_active", false).Error; err != nil {
			return err
		}

		if err := tx.Model(&l).Update("is_active", true).Error; err != nil {
			return err
		}

		l.IsActive = true
		league = &l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return league, nil
}

func (r *leagueRepository) List(ctx context.Context) ([]*domain.League, error) {
	var leagues []*domain.League
	err := r.db.WithContext(ctx).Order("name ASC").Find(&leagues).Error
	if err != nil {
		return nil, err
	}
	return leagues, nil
}
