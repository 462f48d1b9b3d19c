// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// exerciseRequest is the payload for POST /exercises.
type exerciseRequest struct {
	Injury      string `json:"injury"`
	Phase       string `json:"phase"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Goal        string `json:"goal"`
	Equipment   string `json:"equipment"`
	Progression string `json:"progression"`
	Evidence    string `json:"evidence"`
	VideoURL    string `json:"video_url"`
}

func (e exerciseRequest) validate() error {
	switch {
	case strings.TrimSpace(e.Name) == "":
		return errors.New("missing name")
	case strings.TrimSpace(e.Injury) == "":
		return errors.New("missing injury")
	case strings.TrimSpace(e.Phase) == "":
		return errors.New("missing phase")
	}
	if _, ok := types.ParseInjuryType(e.Injury); !ok {
		return fmt.Errorf("unsupported injury type %q", e.Injury)
	}
	if _, ok := types.ParsePhase(e.Phase); !ok {
		return fmt.Errorf("unknown phase %q", e.Phase)
	}
	return nil
}

// ExercisesHandler handles the exercise catalog endpoints.
type ExercisesHandler struct {
	deps Dependencies
}

// NewExercisesHandler creates a new exercises handler.
func NewExercisesHandler(deps Dependencies) *ExercisesHandler {
	return &ExercisesHandler{deps: deps}
}

// HandleExercises dispatches POST (add) and GET (search) on /exercises.
func (h *ExercisesHandler) HandleExercises(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleAdd(w, r)
	case http.MethodGet:
		h.handleSearch(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ExercisesHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	e := model.Exercise{
		Injury:      types.InjuryType(req.Injury),
		Phase:       types.Phase(req.Phase),
		Name:        req.Name,
		Type:        req.Type,
		Goal:        req.Goal,
		Equipment:   req.Equipment,
		Progression: req.Progression,
		Evidence:    req.Evidence,
		VideoURL:    req.VideoURL,
	}
	if err := h.deps.AddExercise(r.Context(), e); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *ExercisesHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	exercises, err := h.deps.SearchExercises(
		r.Context(),
		types.InjuryType(q.Get("injury")),
		types.Phase(q.Get("phase")),
		q.Get("type"),
		q.Get("q"),
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}
