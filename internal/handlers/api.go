package handlers

import (
	"net/http"

	"github.com/lehigh-university-libraries/artgrid/internal/models"
	"github.com/lehigh-university-libraries/artgrid/internal/pagination"
)

type artworksResponse struct {
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Data  []models.Artwork `json:"data"`
}

// HandleArtworks serves one page of artworks as JSON
func (h *Handler) HandleArtworks(w http.ResponseWriter, r *http.Request) {
	page := pagination.ParsePage(r.URL.Query().Get("page"))
	limit, ok := pagination.ParsePositive(r.URL.Query().Get("limit"))
	if !ok {
		limit = pagination.DefaultPageSize
	}

	rows, err := h.fetcher.FetchPage(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("Error fetching artworks", "page", page, "limit", limit, "err", err)
		h.writeError(w, "Failed to fetch artworks", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, artworksResponse{Page: page, Limit: limit, Data: rows})
}

// HandleSelection lists the caller's selected rows
func (h *Handler) HandleSelection(w http.ResponseWriter, r *http.Request) {
	selected := h.sessionView(w, r).Selected()
	rows := make([]models.Artwork, len(selected))
	for i, a := range selected {
		rows[i] = *a
	}
	h.writeJSON(w, map[string]any{
		"count": len(rows),
		"data":  rows,
	})
}
