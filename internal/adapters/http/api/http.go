// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmjdxb/Rehab/internal/adapters/repository"
	"github.com/dmjdxb/Rehab/internal/domain/engine"
	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/progression"
	"github.com/dmjdxb/Rehab/internal/domain/recommend"
	"github.com/dmjdxb/Rehab/internal/domain/rts"
	"github.com/dmjdxb/Rehab/internal/domain/safety"
	"github.com/dmjdxb/Rehab/internal/domain/screening"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RecordSession(ctx context.Context, patientID string, injury types.InjuryType, raw engine.RawMetrics, notes string) (model.SessionRecord, error)
	Evaluate(ctx context.Context, injury types.InjuryType, raw engine.RawMetrics) (engine.Result, error)
	Sessions(ctx context.Context, patientID string, limit int) ([]model.SessionRecord, error)
	ExportSessions(ctx context.Context, w io.Writer, patientID string) error

	AddPatient(ctx context.Context, p model.Patient) (model.Patient, error)
	Patient(ctx context.Context, id string) (model.Patient, error)
	Patients(ctx context.Context) ([]model.Patient, error)

	AddExercise(ctx context.Context, e model.Exercise) error
	SearchExercises(ctx context.Context, injury types.InjuryType, phase types.Phase, exerciseType, query string) ([]model.Exercise, error)
	Recommendations(ctx context.Context, injury types.InjuryType, phase types.Phase, n int) (recommend.Recommendation, error)

	Screen(ctx context.Context, in screening.Input) screening.Assessment
	ScoreRTS(ctx context.Context, injury types.InjuryType, level rts.SportLevel, in rts.BatteryInput) rts.Assessment

	CheckSafety(ctx context.Context, p safety.Profile, ex safety.ExerciseContext, inj safety.InjuryContext) safety.Assessment
	PrescribeLoad(ctx context.Context, weight float64, reps int, f progression.Formula, goal progression.Goal) (progression.Prescription, error)
	AdjustLoad(ctx context.Context, weight, currentRPE, targetRPE float64, kind progression.ExerciseKind) (progression.RPEAdjustment, error)
	PlanVolume(ctx context.Context, sets, reps int, strategy progression.Strategy, week int) (progression.VolumePlan, error)

	SupportedInjuries() []types.InjuryType
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	sessionsHandler  *SessionsHandler
	evaluateHandler  *EvaluateHandler
	patientsHandler  *PatientsHandler
	exercisesHandler *ExercisesHandler
	recommendHandler *RecommendHandler
	screeningHandler *ScreeningHandler
	rtsHandler       *RTSHandler
	safetyHandler    *SafetyHandler
	progressHandler  *ProgressionHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		sessionsHandler:  NewSessionsHandler(deps, maxLimit),
		evaluateHandler:  NewEvaluateHandler(deps),
		patientsHandler:  NewPatientsHandler(deps),
		exercisesHandler: NewExercisesHandler(deps),
		recommendHandler: NewRecommendHandler(deps),
		screeningHandler: NewScreeningHandler(deps),
		rtsHandler:       NewRTSHandler(deps),
		safetyHandler:    NewSafetyHandler(deps),
		progressHandler:  NewProgressionHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/sessions/export", MetricsMiddleware(s.sessionsHandler.HandleExport, "sessions_export"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandleSessions, "sessions"))
	mux.HandleFunc("/evaluate", MetricsMiddleware(s.evaluateHandler.HandleEvaluate, "evaluate"))
	mux.HandleFunc("/patients/", MetricsMiddleware(s.patientsHandler.HandleGetPatient, "patient"))
	mux.HandleFunc("/patients", MetricsMiddleware(s.patientsHandler.HandlePatients, "patients"))
	mux.HandleFunc("/exercises", MetricsMiddleware(s.exercisesHandler.HandleExercises, "exercises"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendHandler.HandleRecommendations, "recommendations"))
	mux.HandleFunc("/screening", MetricsMiddleware(s.screeningHandler.HandleScreening, "screening"))
	mux.HandleFunc("/rts", MetricsMiddleware(s.rtsHandler.HandleRTS, "rts"))
	mux.HandleFunc("/safety", MetricsMiddleware(s.safetyHandler.HandleSafety, "safety"))
	mux.HandleFunc("/progression/load", MetricsMiddleware(s.progressHandler.HandleLoad, "progression_load"))
	mux.HandleFunc("/progression/rpe", MetricsMiddleware(s.progressHandler.HandleRPE, "progression_rpe"))
	mux.HandleFunc("/progression/volume", MetricsMiddleware(s.progressHandler.HandleVolume, "progression_volume"))
}

type errorResponse struct {
	Code       string             `json:"code"`
	Message    string             `json:"message"`
	Violations []engine.Violation `json:"violations,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates domain error kinds to HTTP status codes:
// validation failures are 422 with the full violation list, unsupported
// injuries 400, missing records 404, duplicate IDs 409, anything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *engine.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code:       "invalid_metrics",
			Message:    verr.Error(),
			Violations: verr.Violations,
		})
	case errors.Is(err, engine.ErrUnsupportedInjury):
		writeError(w, http.StatusBadRequest, "unsupported_injury", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrDuplicateID):
		writeError(w, http.StatusConflict, "duplicate_id", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
