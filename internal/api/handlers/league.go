package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/dom/poe-uniques-server/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type LeagueHandler struct {
	catalogService *service.CatalogService
}

func NewLeagueHandler(catalogService *service.CatalogService) *LeagueHandler {
	return &LeagueHandler{catalogService: catalogService}
}

type LeaguesResponse struct {
	Leagues []LeagueResponse `json:"leagues"`
}

func (h *LeagueHandler) List(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.catalogService.ListLeagues(r.Context())
	if err != nil {
		log.Error().Err(err).Str("op", "league.List").Msg("request failed")
		http.Error(w, "Failed to list leagues", http.StatusInternalServerError)
		return
	}

	resp := LeaguesResponse{
		Leagues: lo.Map(leagues, func(l *domain.League, _ int) LeagueResponse {
			return leagueResponse(l)
		}),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
