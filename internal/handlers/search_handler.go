package handlers

import (
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/services/search"
)

// SearchHandler serves symbol lookups over the in-memory ticker index.
type SearchHandler struct {
	search *search.Service
	logger arbor.ILogger
}

// NewSearchHandler creates a search handler. search may be nil when the
// ticker asset failed to load; lookups then return an empty result.
func NewSearchHandler(s *search.Service, logger arbor.ILogger) *SearchHandler {
	return &SearchHandler{search: s, logger: logger}
}

// SymbolsHandler handles GET /api/search?q=...&limit=...
func (h *SearchHandler) SymbolsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		WriteError(w, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	if h.search == nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"count":   0,
			"matches": []search.Match{},
		})
		return
	}

	matches, err := h.search.Search(q, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(matches),
		"matches": matches,
	})
}
