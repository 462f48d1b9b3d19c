// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmjdxb/Rehab/internal/domain/engine"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// evaluateRequest is the payload for POST /evaluate. It is the
// stateless sibling of sessionRequest: nothing is persisted.
type evaluateRequest struct {
	Injury  string            `json:"injury"`
	Metrics engine.RawMetrics `json:"metrics"`
}

// EvaluateHandler handles dry-run evaluations.
type EvaluateHandler struct {
	deps Dependencies
}

// NewEvaluateHandler creates a new evaluate handler.
func NewEvaluateHandler(deps Dependencies) *EvaluateHandler {
	return &EvaluateHandler{deps: deps}
}

// HandleEvaluate handles POST /evaluate requests.
func (h *EvaluateHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Injury) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing injury"))
		return
	}
	res, err := h.deps.Evaluate(r.Context(), types.InjuryType(req.Injury), req.Metrics)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
