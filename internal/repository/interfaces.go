package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/google/uuid"
)

// ErrNotFound is returned by point lookups when no row matches. Callers map
// it to the domain-specific not-found error for their entity.
var ErrNotFound = errors.New("record not found")

type ItemTypeRepository interface {
	Create(ctx context.Context, itemType *domain.ItemType) error
	Update(ctx context.Context, itemType *domain.ItemType) error
	GetByName(ctx context.Context, name string) (*domain.ItemType, error)
	GetByNameAndClass(ctx context.Context, name string, class domain.ItemClass) (*domain.ItemType, error)
	List(ctx context.Context, search string) ([]*domain.ItemType, error)
}

type CatalogItemRepository interface {
	Create(ctx context.Context, item *domain.CatalogItem) error
	Update(ctx context.Context, item *domain.CatalogItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error)
	GetByExternalID(ctx context.Context, externalID int64) (*domain.CatalogItem, error)
	GetAll(ctx context.Context) ([]*domain.CatalogItem, error)
	List(ctx context.Context, leagueID uuid.UUID, filter UniqueFilter, page Page) ([]*UniqueRow, int64, error)
	GetDetail(ctx context.Context, id uuid.UUID, leagueID uuid.UUID) (*UniqueRow, error)
}

type LeagueRepository interface {
	GetByName(ctx context.Context, name string) (*domain.League, error)
	GetOrCreateByName(ctx context.Context, name string) (*domain.League, error)
	GetActive(ctx context.Context) (*domain.League, error)
	SetActive(ctx context.Context, name string) (*domain.League, error)
	List(ctx context.Context) ([]*domain.League, error)
}

type PresenceRepository interface {
	Record(ctx context.Context, itemID, leagueID uuid.UUID, observed time.Time) error
	Get(ctx context.Context, itemID, leagueID uuid.UUID) (*domain.LeaguePresence, error)
}

type StatsRepository interface {
	Upsert(ctx context.Context, stats *domain.LeagueStats) error
	Get(ctx context.Context, itemID, leagueID uuid.UUID) (*domain.LeagueStats, error)
}

type OddsMetaRepository interface {
	Upsert(ctx context.Context, meta *domain.OddsMeta) error
	GetByItemID(ctx context.Context, itemID uuid.UUID) (*domain.OddsMeta, error)
}

type Repositories struct {
	ItemType    ItemTypeRepository
	CatalogItem CatalogItemRepository
	League      LeagueRepository
	Presence    PresenceRepository
	Stats       StatsRepository
	OddsMeta    OddsMetaRepository
}

// Transactor runs fn against a transaction-scoped set of repositories.
// A returned error rolls the whole batch back.
type Transactor interface {
	Transaction(ctx context.Context, fn func(repos *Repositories) error) error
}
