package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dom/poe-uniques-server/internal/config"
	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/dom/poe-uniques-server/internal/repository"
	"github.com/dom/poe-uniques-server/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type UniqueHandler struct {
	catalogService *service.CatalogService
	ninjaService   *service.NinjaService
	cfg            *config.Config
}

func NewUniqueHandler(catalogService *service.CatalogService, ninjaService *service.NinjaService, cfg *config.Config) *UniqueHandler {
	return &UniqueHandler{catalogService: catalogService, ninjaService: ninjaService, cfg: cfg}
}

type OddsResponse struct {
	Pool    string   `json:"pool"`
	Tier    *int     `json:"tier"`
	Chance  *float64 `json:"chance"`
	AvgOrbs *int     `json:"avgOrbs"`
	MinIlvl *int     `json:"minIlvl"`
	Source  string   `json:"source"`
}

type UniqueResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	ItemType      ItemTypeResponse `json:"itemType"`
	ExternalID    *int64           `json:"externalId"`
	RequiredLevel *int             `json:"requiredLevel"`
	ImageURL      string           `json:"imageUrl"`
	FlavourText   string           `json:"flavourText"`
	ModsText      string           `json:"modsText"`
	ChaosValue    *float64         `json:"chaosValue"`
	DivineValue   *float64         `json:"divineValue"`
	ListingCount  *int             `json:"listingCount"`
	Odds          *OddsResponse    `json:"odds"`
}

type LeagueResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

type UniquesListResponse struct {
	League   LeagueResponse   `json:"league"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	Total    int64            `json:"total"`
	Items    []UniqueResponse `json:"items"`
}

type SyncResponse struct {
	League           string                 `json:"league"`
	Counters         service.ImportCounters `json:"counters"`
	RowsFetched      int                    `json:"rowsFetched"`
	FailedCategories []string               `json:"failedCategories,omitempty"`
}

func (h *UniqueHandler) List(w http.ResponseWriter, r *http.Request) {
	in, err := parseListInput(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.catalogService.ListUniques(r.Context(), in)
	if err != nil {
		writeCatalogError(w, "unique.List", err)
		return
	}

	resp := UniquesListResponse{
		League:   leagueResponse(page.League),
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
		Items: lo.Map(page.Items, func(row *repository.UniqueRow, _ int) UniqueResponse {
			return uniqueResponse(row)
		}),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *UniqueHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid item id", http.StatusBadRequest)
		return
	}

	row, _, err := h.catalogService.GetUnique(r.Context(), id, r.URL.Query().Get("league"))
	if err != nil {
		writeCatalogError(w, "unique.Get", err)
		return
	}

	resp := uniqueResponse(row)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *UniqueHandler) Sync(w http.ResponseWriter, r *http.Request) {
	leagueName := r.URL.Query().Get("league")
	if leagueName == "" {
		league, err := h.catalogService.ResolveLeague(r.Context(), "")
		if err != nil {
			writeCatalogError(w, "unique.Sync", err)
			return
		}
		leagueName = league.Name
	}

	result, err := h.ninjaService.ImportMarket(r.Context(), service.MarketImportInput{
		League: leagueName,
		Delay:  h.cfg.RequestDelay,
	})
	if err != nil {
		writeCatalogError(w, "unique.Sync", err)
		return
	}

	resp := SyncResponse{
		League:           result.League,
		Counters:         result.Counters,
		RowsFetched:      result.RowsFetched,
		FailedCategories: result.FailedCategories,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func parseListInput(r *http.Request) (service.ListUniquesInput, error) {
	q := r.URL.Query()
	in := service.ListUniquesInput{
		League:   q.Get("league"),
		Class:    domain.ItemClass(q.Get("class")),
		Slot:     domain.Slot(q.Get("slot")),
		Search:   q.Get("search"),
		Ordering: q.Get("ordering"),
	}

	if v := q.Get("item_type"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return in, errors.New("invalid item_type id")
		}
		in.ItemTypeID = &id
	}

	var err error
	if in.RequiredLevel, err = parseIntParam(q.Get("required_level"), "required_level"); err != nil {
		return in, err
	}
	if in.MinLevel, err = parseIntParam(q.Get("min_level"), "min_level"); err != nil {
		return in, err
	}
	if in.MaxLevel, err = parseIntParam(q.Get("max_level"), "max_level"); err != nil {
		return in, err
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return in, errors.New("invalid page")
		}
		in.Page = page
	}

	return in, nil
}

func parseIntParam(v, name string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, errors.New("invalid " + name)
	}
	return &n, nil
}

func uniqueResponse(row *repository.UniqueRow) UniqueResponse {
	resp := UniqueResponse{
		ID:   row.ID.String(),
		Name: row.Name,
		ItemType: ItemTypeResponse{
			ID:    row.ItemTypeID.String(),
			Name:  row.ItemTypeName,
			Class: string(row.Class),
			Slot:  string(row.Slot),
		},
		ExternalID:    row.ExternalID,
		RequiredLevel: row.RequiredLevel,
		ImageURL:      row.ImageURL,
		FlavourText:   row.FlavourText,
		ModsText:      row.ModsText,
		ChaosValue:    row.ChaosValue,
		DivineValue:   row.DivineValue,
		ListingCount:  row.ListingCount,
	}

	if row.HasOdds {
		odds := &OddsResponse{
			Tier:    row.Tier,
			Chance:  row.Chance,
			AvgOrbs: row.AvgOrbs,
			MinIlvl: row.MinIlvl,
		}
		if row.OddsPool != nil {
			odds.Pool = *row.OddsPool
		}
		if row.OddsSource != nil {
			odds.Source = *row.OddsSource
		}
		resp.Odds = odds
	}

	return resp
}

func leagueResponse(league *domain.League) LeagueResponse {
	return LeagueResponse{
		ID:       league.ID.String(),
		Name:     league.Name,
		IsActive: league.IsActive,
	}
}

// writeCatalogError maps the domain error taxonomy onto HTTP statuses:
// validation errors are 400, not-found errors 404, anything else 500.
func writeCatalogError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNoActiveLeague),
		errors.Is(err, domain.ErrBlankLeague),
		errors.Is(err, domain.ErrNoFeedTypes),
		errors.Is(err, domain.ErrInvalidClass),
		errors.Is(err, domain.ErrInvalidSlot),
		errors.Is(err, domain.ErrInvalidOrdering):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrLeagueNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrItemNotInLeague):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Error().Err(err).Str("op", op).Msg("request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
