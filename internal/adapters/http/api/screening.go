// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmjdxb/Rehab/internal/domain/screening"
)

// ScreeningHandler handles red/yellow flag screening requests.
type ScreeningHandler struct {
	deps Dependencies
}

// NewScreeningHandler creates a new screening handler.
func NewScreeningHandler(deps Dependencies) *ScreeningHandler {
	return &ScreeningHandler{deps: deps}
}

// HandleScreening handles POST /screening requests.
func (h *ScreeningHandler) HandleScreening(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var in screening.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Screen(r.Context(), in))
}
