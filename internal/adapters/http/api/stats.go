// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"
)

// StatsProvider reports the service counters shown on the clinician
// dashboard: store row counts, supported injury types and whether the
// service has been started.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// statsResponse wraps the raw counters with the service name and the
// time the snapshot was taken.
type statsResponse struct {
	Service     string                 `json:"service"`
	GeneratedAt time.Time              `json:"generated_at"`
	Stats       map[string]interface{} `json:"stats"`
}

// StatsHandler serves the dashboard counters.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Service:     "rehab-tracker",
		GeneratedAt: time.Now().UTC(),
		Stats:       h.statsProvider.GetStats(),
	})
}
