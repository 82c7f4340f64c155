package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dom/poe-uniques-server/internal/domain"
	"github.com/dom/poe-uniques-server/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type ItemTypeHandler struct {
	catalogService *service.CatalogService
}

func NewItemTypeHandler(catalogService *service.CatalogService) *ItemTypeHandler {
	return &ItemTypeHandler{catalogService: catalogService}
}

type ItemTypeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`
	Slot  string `json:"slot"`
}

type ItemTypesResponse struct {
	ItemTypes []ItemTypeResponse `json:"itemTypes"`
}

func (h *ItemTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	itemTypes, err := h.catalogService.ListItemTypes(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		log.Error().Err(err).Str("op", "itemType.List").Msg("request failed")
		http.Error(w, "Failed to list item types", http.StatusInternalServerError)
		return
	}

	resp := ItemTypesResponse{
		ItemTypes: lo.Map(itemTypes, func(t *domain.ItemType, _ int) ItemTypeResponse {
			return ItemTypeResponse{
				ID:    t.ID.String(),
				Name:  t.Name,
				Class: string(t.Class),
				Slot:  string(t.Slot),
			}
		}),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
