// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmjdxb/Rehab/internal/domain/progression"
)

// loadRequest is the payload for POST /progression/load.
type loadRequest struct {
	Weight  float64             `json:"weight"`
	Reps    int                 `json:"reps"`
	Formula progression.Formula `json:"formula"`
	Goal    progression.Goal    `json:"goal"`
}

// rpeRequest is the payload for POST /progression/rpe.
type rpeRequest struct {
	Weight     float64                  `json:"weight"`
	CurrentRPE float64                  `json:"current_rpe"`
	TargetRPE  float64                  `json:"target_rpe"`
	Kind       progression.ExerciseKind `json:"kind"`
}

// volumeRequest is the payload for POST /progression/volume.
type volumeRequest struct {
	Sets     int                  `json:"sets"`
	Reps     int                  `json:"reps"`
	Strategy progression.Strategy `json:"strategy"`
	Week     int                  `json:"week"`
}

// ProgressionHandler handles load and volume progression planning.
// Progression errors are all input errors, so they map to 400.
type ProgressionHandler struct {
	deps Dependencies
}

// NewProgressionHandler creates a new progression handler.
func NewProgressionHandler(deps Dependencies) *ProgressionHandler {
	return &ProgressionHandler{deps: deps}
}

// HandleLoad handles POST /progression/load requests.
func (h *ProgressionHandler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if !decodePost(w, r, &req) {
		return
	}
	rx, err := h.deps.PrescribeLoad(r.Context(), req.Weight, req.Reps, req.Formula, req.Goal)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeJSON(w, http.StatusOK, rx)
}

// HandleRPE handles POST /progression/rpe requests.
func (h *ProgressionHandler) HandleRPE(w http.ResponseWriter, r *http.Request) {
	var req rpeRequest
	if !decodePost(w, r, &req) {
		return
	}
	adj, err := h.deps.AdjustLoad(r.Context(), req.Weight, req.CurrentRPE, req.TargetRPE, req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeJSON(w, http.StatusOK, adj)
}

// HandleVolume handles POST /progression/volume requests.
func (h *ProgressionHandler) HandleVolume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if !decodePost(w, r, &req) {
		return
	}
	plan, err := h.deps.PlanVolume(r.Context(), req.Sets, req.Reps, req.Strategy, req.Week)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// decodePost rejects non-POST methods and malformed bodies, reporting
// whether the request survived.
func decodePost(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return false
	}
	return true
}
