// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmjdxb/Rehab/internal/domain/rts"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// rtsRequest is the payload for POST /rts.
type rtsRequest struct {
	Injury     string           `json:"injury"`
	SportLevel string           `json:"sport_level"`
	Battery    rts.BatteryInput `json:"battery"`
}

// RTSHandler handles return-to-sport battery scoring requests.
type RTSHandler struct {
	deps Dependencies
}

// NewRTSHandler creates a new return-to-sport handler.
func NewRTSHandler(deps Dependencies) *RTSHandler {
	return &RTSHandler{deps: deps}
}

// HandleRTS handles POST /rts requests.
func (h *RTSHandler) HandleRTS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req rtsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	injury, ok := types.ParseInjuryType(req.Injury)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported_injury", fmt.Errorf("unsupported injury type %q", req.Injury))
		return
	}
	level := rts.SportLevel(req.SportLevel)
	if level == "" {
		level = rts.LevelRecreational
	}
	writeJSON(w, http.StatusOK, h.deps.ScoreRTS(r.Context(), injury, level, req.Battery))
}
