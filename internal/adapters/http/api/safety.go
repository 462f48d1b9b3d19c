// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmjdxb/Rehab/internal/domain/safety"
)

// safetyRequest is the payload for POST /safety.
type safetyRequest struct {
	Profile  safety.Profile         `json:"profile"`
	Exercise safety.ExerciseContext `json:"exercise"`
	Injury   safety.InjuryContext   `json:"injury"`
}

// SafetyHandler handles exercise clearance checks.
type SafetyHandler struct {
	deps Dependencies
}

// NewSafetyHandler creates a new safety handler.
func NewSafetyHandler(deps Dependencies) *SafetyHandler {
	return &SafetyHandler{deps: deps}
}

// HandleSafety handles POST /safety requests.
func (h *SafetyHandler) HandleSafety(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req safetyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.CheckSafety(r.Context(), req.Profile, req.Exercise, req.Injury))
}
