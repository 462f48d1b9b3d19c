// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// Default and ceiling for the recommendations count parameter.
const (
	defaultRecommendCount = 5
	maxRecommendCount     = 25
)

// RecommendHandler handles exercise recommendation requests.
type RecommendHandler struct {
	deps Dependencies
}

// NewRecommendHandler creates a new recommendations handler.
func NewRecommendHandler(deps Dependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// HandleRecommendations handles GET /recommendations?injury=X&phase=Y&count=N.
func (h *RecommendHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()

	injury, ok := types.ParseInjuryType(q.Get("injury"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported_injury", fmt.Errorf("unsupported injury type %q", q.Get("injury")))
		return
	}
	phase, ok := types.ParsePhase(q.Get("phase"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown phase %q", q.Get("phase")))
		return
	}

	n := defaultRecommendCount
	if countStr := q.Get("count"); countStr != "" {
		v, err := strconv.Atoi(countStr)
		if err != nil || v < 1 || v > maxRecommendCount {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("count must be an integer between 1 and 25"))
			return
		}
		n = v
	}

	rec, err := h.deps.Recommendations(r.Context(), injury, phase, n)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
