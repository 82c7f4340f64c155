package postgres

import (
	"context"

	"github.com/dom/poe-uniques-server/internal/domain"
	"gorm.io/gorm"
)

type itemTypeRepository struct {
	db *gorm.DB
}

func NewItemTypeRepository(db *gorm.DB) *itemTypeRepository {
	return &itemTypeRepository{db: db}
}

func (r *itemTypeRepository) Create(ctx context.Context, itemType *domain.ItemType) error {
	return r.db.WithContext(ctx).Create(itemType).Error
}

func (r *itemTypeRepository) Update(ctx context.Context, itemType *domain.ItemType) error {
	return r.db.WithContext(ctx).Save(itemType).Error
}

func (r *itemTypeRepository) GetByNameAndClass(ctx context.Context, name string, class domain.ItemClass) (*domain.ItemType, error) {
	var itemType domain.ItemType
	err := r.db.WithContext(ctx).First(&itemType, "name = ? AND class = ?", name, class).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &itemType, nil
}

// GetByName resolves a base type when the caller has no class hint. When
// the name exists under several classes, a classified row wins over an
// "other" row, then the lowest class alphabetically, so resolution is
// stable across runs.
func (r *itemTypeRepository) GetByName(ctx context.Context, name string) (*domain.ItemType, error) {
	var itemType domain.ItemType
	err := r.db.WithContext(ctx).
		Order("CASE WHEN class = 'other' THEN 1 ELSE 0 END, class ASC").
		First(&itemType, "name = ?", name).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &itemType, nil
}

func (r *itemTypeRepository) List(ctx context.Context, search string) ([]*domain.ItemType, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name ILIKE ? OR class ILIKE ? OR slot ILIKE ?", pattern, pattern, pattern)
	}

	var itemTypes []*domain.ItemType
	if err := q.Find(&itemTypes).Error; err != nil {
		return nil, err
	}
	return itemTypes, nil
}
