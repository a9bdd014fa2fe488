package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/prepcheck/prepcheck/internal/geocode"
)

type GeocodeHandler struct {
	client *geocode.Client
	logger *slog.Logger
}

// NewGeocodeHandler accepts a nil client when no weather API key is
// configured; lookups then report the service as unavailable.
func NewGeocodeHandler(client *geocode.Client, logger *slog.Logger) *GeocodeHandler {
	return &GeocodeHandler{client: client, logger: logger}
}

func (h *GeocodeHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("q is required"))
		return
	}

	if h.client == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("geocoding is not configured"))
		return
	}

	places, err := h.client.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("geocode search", "query", query, "error", err)
		writeJSON(w, http.StatusBadGateway, errorBody("geocoding lookup failed"))
		return
	}
	if places == nil {
		places = []geocode.Place{}
	}
	writeJSON(w, http.StatusOK, places)
}
