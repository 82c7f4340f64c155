package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dom/poe-uniques-server/internal/config"
	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/dom/poe-uniques-server/internal/repository"
	"github.com/google/uuid"
)

// CatalogService serves league-scoped, ranked views of the catalog. It holds
// no league state of its own; the league is resolved on every call.
type CatalogService struct {
	repos    *repository.Repositories
	pageSize int
}

func NewCatalogService(repos *repository.Repositories, cfg *config.Config) *CatalogService {
	return &CatalogService{repos: repos, pageSize: cfg.PageSize}
}

type ListUniquesInput struct {
	League        string // optional override; empty = active league
	ItemTypeID    *uuid.UUID
	Class         domain.ItemClass
	Slot          domain.Slot
	RequiredLevel *int
	MinLevel      *int
	MaxLevel      *int
	Search        string
	Ordering      string // optional single-field override of the default ranking
	Page          int
}

type UniquesPage struct {
	League   *domain.League
	Items    []*repository.UniqueRow
	Page     int
	PageSize int
	Total    int64
}

// ResolveLeague picks the league to serve: an explicit name is looked up
// exactly, otherwise the single active league is used. Zero active leagues
// is a configuration error surfaced to the caller.
func (s *CatalogService) ResolveLeague(ctx context.Context, override string) (*domain.League, error) {
	name := strings.TrimSpace(override)
	if name != "" {
		return s.repos.League.GetByName(ctx, name)
	}
	return s.repos.League.GetActive(ctx)
}

func (s *CatalogService) ListUniques(ctx context.Context, in ListUniquesInput) (*UniquesPage, error) {
	if in.Class != "" && !domain.ValidItemClass(in.Class) {
		return nil, domain.ErrInvalidClass
	}
	if in.Slot != "" && !domain.ValidSlot(in.Slot) {
		return nil, domain.ErrInvalidSlot
	}
	if in.Ordering != "" && !repository.ValidOrdering(in.Ordering) {
		return nil, domain.ErrInvalidOrdering
	}

	league, err := s.ResolveLeague(ctx, in.League)
	if err != nil {
		return nil, err
	}

	page := in.Page
	if page < 1 {
		page = 1
	}

	filter := repository.UniqueFilter{
		ItemTypeID:    in.ItemTypeID,
		Class:         in.Class,
		Slot:          in.Slot,
		RequiredLevel: in.RequiredLevel,
		MinLevel:      in.MinLevel,
		MaxLevel:      in.MaxLevel,
		Search:        strings.TrimSpace(in.Search),
		Ordering:      in.Ordering,
	}

	rows, total, err := s.repos.CatalogItem.List(ctx, league.ID, filter, repository.Page{Number: page, Size: s.pageSize})
	if err != nil {
		return nil, err
	}

	return &UniquesPage{
		League:   league,
		Items:    rows,
		Page:     page,
		PageSize: s.pageSize,
		Total:    total,
	}, nil
}

// GetUnique returns one item with its type, latest stats for the resolved
// league and odds metadata, scoped the same way the list is. An item that
// exists but was never observed in the league is distinguished from an
// unknown id.
func (s *CatalogService) GetUnique(ctx context.Context, id uuid.UUID, leagueOverride string) (*repository.UniqueRow, *domain.League, error) {
	league, err := s.ResolveLeague(ctx, leagueOverride)
	if err != nil {
		return nil, nil, err
	}

	row, err := s.repos.CatalogItem.GetDetail(ctx, id, league.ID)
	if errors.Is(err, repository.ErrNotFound) {
		if _, idErr := s.repos.CatalogItem.GetByID(ctx, id); idErr == nil {
			return nil, nil, domain.ErrItemNotInLeague
		}
		return nil, nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return row, league, nil
}

func (s *CatalogService) ListItemTypes(ctx context.Context, search string) ([]*domain.ItemType, error) {
	return s.repos.ItemType.List(ctx, strings.TrimSpace(search))
}

func (s *CatalogService) ListLeagues(ctx context.Context) ([]*domain.League, error) {
	return s.repos.League.List(ctx)
}
