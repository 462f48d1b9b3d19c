// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmjdxb/Rehab/internal/domain/engine"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// sessionRequest is the payload for POST /sessions.
type sessionRequest struct {
	PatientID string            `json:"patient_id"`
	Injury    string            `json:"injury"`
	Metrics   engine.RawMetrics `json:"metrics"`
	Notes     string            `json:"notes"`
}

func (s sessionRequest) validate() error {
	switch {
	case strings.TrimSpace(s.PatientID) == "":
		return errors.New("missing patient_id")
	case strings.TrimSpace(s.Injury) == "":
		return errors.New("missing injury")
	}
	return nil
}

// SessionsHandler handles session recording and listing.
type SessionsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps Dependencies, maxLimit int) *SessionsHandler {
	return &SessionsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleSessions dispatches POST (record) and GET (list) on /sessions.
func (h *SessionsHandler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleRecord(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *SessionsHandler) handleRecord(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	rec, err := h.deps.RecordSession(r.Context(), req.PatientID, types.InjuryType(req.Injury), req.Metrics, req.Notes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *SessionsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if limitStr := q.Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("limit must be a positive integer"))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("limit must not exceed %d", h.maxLimit))
			return
		}
		limit = n
	}
	recs, err := h.deps.Sessions(r.Context(), q.Get("patient_id"), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// HandleExport handles GET /sessions/export, streaming an XLSX workbook.
func (h *SessionsHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="sessions.xlsx"`)
	if err := h.deps.ExportSessions(r.Context(), w, r.URL.Query().Get("patient_id")); err != nil {
		// Headers may already be out; nothing left to do but log-free abort.
		writeDomainError(w, err)
	}
}
