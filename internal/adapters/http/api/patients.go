// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// patientRequest is the payload for POST /patients.
type patientRequest struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Sex         string `json:"sex"`
	Injury      string `json:"injury"`
}

func (p patientRequest) validate() error {
	switch {
	case strings.TrimSpace(p.FirstName) == "":
		return errors.New("missing first_name")
	case strings.TrimSpace(p.LastName) == "":
		return errors.New("missing last_name")
	case strings.TrimSpace(p.Injury) == "":
		return errors.New("missing injury")
	}
	if _, ok := types.ParseInjuryType(p.Injury); !ok {
		return fmt.Errorf("unsupported injury type %q", p.Injury)
	}
	if p.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", p.DateOfBirth); err != nil {
			return errors.New("invalid date_of_birth; must be YYYY-MM-DD")
		}
	}
	return nil
}

// PatientsHandler handles the patient registry endpoints.
type PatientsHandler struct {
	deps Dependencies
}

// NewPatientsHandler creates a new patients handler.
func NewPatientsHandler(deps Dependencies) *PatientsHandler {
	return &PatientsHandler{deps: deps}
}

// HandlePatients dispatches POST (register) and GET (list) on /patients.
func (h *PatientsHandler) HandlePatients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleRegister(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *PatientsHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req patientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	p, err := h.deps.AddPatient(r.Context(), model.Patient{
		ID:          req.ID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Sex:         req.Sex,
		Injury:      types.InjuryType(req.Injury),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PatientsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	patients, err := h.deps.Patients(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

// HandleGetPatient handles GET /patients/{id} requests.
func (h *PatientsHandler) HandleGetPatient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /patients/
	id := strings.TrimPrefix(r.URL.Path, "/patients/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	p, err := h.deps.Patient(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
