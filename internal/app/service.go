// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmjdxb/Rehab/internal/adapters/repository"
	"github.com/dmjdxb/Rehab/internal/domain/engine"
	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/progression"
	"github.com/dmjdxb/Rehab/internal/domain/recommend"
	"github.com/dmjdxb/Rehab/internal/domain/rts"
	"github.com/dmjdxb/Rehab/internal/domain/safety"
	"github.com/dmjdxb/Rehab/internal/domain/screening"
	"github.com/dmjdxb/Rehab/internal/domain/types"
	"github.com/dmjdxb/Rehab/pkg/logger"
	"github.com/dmjdxb/Rehab/pkg/metrics"
)

// Service wires the phase engine to the CSV stores and implements the
// API dependencies for the rehabilitation tracker.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine    *engine.Engine
	sessions  repository.SessionStore
	patients  repository.PatientStore
	exercises repository.ExerciseStore

	// Configuration
	sessionPath    string
	patientPath    string
	exercisePath   string
	thresholdsFile string
	trace          bool

	// State
	started bool

	// Logging
	logger logger.Logger

	now func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessionPath sets the session log file path.
func WithSessionPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.sessionPath = path
		}
	}
}

// WithPatientPath sets the patient registry file path.
func WithPatientPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.patientPath = path
		}
	}
}

// WithExercisePath sets the exercise catalog file path.
func WithExercisePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.exercisePath = path
		}
	}
}

// WithThresholdsFile points the engine at a YAML threshold override
// file. Empty means built-in tables only.
func WithThresholdsFile(path string) Option {
	return func(s *Service) {
		s.thresholdsFile = path
	}
}

// WithTrace controls whether evaluations carry gate-by-gate traces.
func WithTrace(enabled bool) Option {
	return func(s *Service) {
		s.trace = enabled
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sessionPath:  filepath.Join("data", "sessions.csv"),
		patientPath:  filepath.Join("data", "patients.csv"),
		exercisePath: filepath.Join("data", "exercises.csv"),
		trace:        true,
		now:          time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the engine and opens the stores.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting rehabilitation service...")

	engineOpts := []engine.Option{engine.WithTrace(s.trace)}
	if s.thresholdsFile != "" {
		tables, err := engine.LoadTables(ctx, s.thresholdsFile)
		if err != nil {
			return fmt.Errorf("load threshold tables: %w", err)
		}
		engineOpts = append(engineOpts, engine.WithTables(tables))
		s.logger.Info(ctx, "loaded threshold overrides",
			logger.String("file", s.thresholdsFile),
		)
	}
	eng, err := engine.New(engineOpts...)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	s.engine = eng

	for _, path := range []string{s.sessionPath, s.patientPath, s.exercisePath} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create data dir %s: %w", dir, err)
			}
		}
	}

	if s.sessions, err = repository.NewCSVSessionLog(s.sessionPath); err != nil {
		return err
	}
	if s.patients, err = repository.NewCSVPatientRegistry(s.patientPath); err != nil {
		return err
	}
	if s.exercises, err = repository.NewCSVExerciseCatalog(s.exercisePath); err != nil {
		return err
	}

	s.started = true
	s.logger.Info(ctx, "rehabilitation service started",
		logger.String("sessionLog", s.sessionPath),
		logger.String("patientRegistry", s.patientPath),
		logger.String("exerciseCatalog", s.exercisePath),
	)

	return nil
}

// Stop gracefully shuts down the service. The CSV stores hold no open
// handles between calls, so this only flips state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "rehabilitation service stopped")
}

// RecordSession validates raw metrics, evaluates the phase and alert
// set, appends the session to the log and keeps the patient registry's
// current phase in sync. The patient does not have to be registered;
// unregistered IDs simply skip the registry update.
func (s *Service) RecordSession(ctx context.Context, patientID string, injury types.InjuryType, raw engine.RawMetrics, notes string) (model.SessionRecord, error) {
	eng, sessions, patients, err := s.deps()
	if err != nil {
		return model.SessionRecord{}, err
	}

	res, err := s.evaluate(ctx, eng, injury, raw)
	if err != nil {
		return model.SessionRecord{}, err
	}

	rec := model.SessionRecord{
		ID:        uuid.NewString(),
		PatientID: patientID,
		Timestamp: s.now().UTC(),
		Injury:    res.Injury,
		Metrics:   res.Metrics,
		Phase:     res.Phase,
		Alerts:    res.Alerts,
		Notes:     notes,
	}
	if err := sessions.Append(ctx, rec); err != nil {
		return model.SessionRecord{}, err
	}
	metrics.RecordSessionRecorded()

	if patientID != "" {
		if err := patients.UpdatePhase(ctx, patientID, res.Phase, rec.Timestamp); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return model.SessionRecord{}, err
		}
	}

	s.logger.Info(ctx, "session recorded",
		logger.String("sessionID", rec.ID),
		logger.String("patientID", patientID),
		logger.String("injury", string(rec.Injury)),
		logger.String("phase", string(rec.Phase)),
		logger.Int("alerts", len(rec.Alerts)),
	)
	return rec, nil
}

// Evaluate runs validation and phase determination without persisting
// anything.
func (s *Service) Evaluate(ctx context.Context, injury types.InjuryType, raw engine.RawMetrics) (engine.Result, error) {
	eng, _, _, err := s.deps()
	if err != nil {
		return engine.Result{}, err
	}
	return s.evaluate(ctx, eng, injury, raw)
}

func (s *Service) evaluate(ctx context.Context, eng *engine.Engine, injury types.InjuryType, raw engine.RawMetrics) (engine.Result, error) {
	m, err := engine.ValidateMetrics(injury, raw)
	if err != nil {
		metrics.RecordValidationFailure()
		return engine.Result{}, err
	}

	start := time.Now()
	res, err := eng.Evaluate(ctx, injury, m)
	if err != nil {
		if errors.Is(err, engine.ErrUnsupportedInjury) {
			metrics.RecordUnsupportedInjury()
		}
		return engine.Result{}, err
	}
	metrics.RecordEvaluationLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordEvaluation(string(res.Phase))
	for _, a := range res.Alerts {
		metrics.RecordAlert(string(a.Severity))
	}
	return res, nil
}

// Sessions lists recorded sessions, optionally filtered by patient and
// capped at limit.
func (s *Service) Sessions(ctx context.Context, patientID string, limit int) ([]model.SessionRecord, error) {
	_, sessions, _, err := s.deps()
	if err != nil {
		return nil, err
	}
	return sessions.List(ctx, patientID, limit)
}

// ExportSessions writes the session history as an XLSX workbook.
func (s *Service) ExportSessions(ctx context.Context, w io.Writer, patientID string) error {
	_, sessions, _, err := s.deps()
	if err != nil {
		return err
	}
	recs, err := sessions.List(ctx, patientID, 0)
	if err != nil {
		return err
	}
	if err := repository.WriteSessionsXLSX(w, recs); err != nil {
		return err
	}
	metrics.RecordExport()
	return nil
}

// AddPatient registers a patient. The current phase starts Unclassified
// until a session is recorded.
func (s *Service) AddPatient(ctx context.Context, p model.Patient) (model.Patient, error) {
	_, _, patients, err := s.deps()
	if err != nil {
		return model.Patient{}, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CurrentPhase == "" {
		p.CurrentPhase = types.PhaseUnclassified
	}
	p.LastUpdated = s.now().UTC()
	if err := patients.Add(ctx, p); err != nil {
		return model.Patient{}, err
	}
	s.logger.Info(ctx, "patient registered",
		logger.String("patientID", p.ID),
		logger.String("injury", string(p.Injury)),
	)
	return p, nil
}

// Patient returns one registered patient.
func (s *Service) Patient(ctx context.Context, id string) (model.Patient, error) {
	_, _, patients, err := s.deps()
	if err != nil {
		return model.Patient{}, err
	}
	return patients.Get(ctx, id)
}

// Patients lists all registered patients.
func (s *Service) Patients(ctx context.Context) ([]model.Patient, error) {
	_, _, patients, err := s.deps()
	if err != nil {
		return nil, err
	}
	return patients.List(ctx)
}

// AddExercise adds a catalog entry.
func (s *Service) AddExercise(ctx context.Context, e model.Exercise) error {
	s.mu.RLock()
	exercises, started := s.exercises, s.started
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}
	if e.DateAdded == "" {
		e.DateAdded = s.now().UTC().Format("2006-01-02")
	}
	return exercises.Add(ctx, e)
}

// SearchExercises filters the catalog.
func (s *Service) SearchExercises(ctx context.Context, injury types.InjuryType, phase types.Phase, exerciseType, query string) ([]model.Exercise, error) {
	s.mu.RLock()
	exercises, started := s.exercises, s.started
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}
	return exercises.Search(ctx, injury, phase, exerciseType, query)
}

// Recommendations builds phase guidance plus ranked catalog exercises.
func (s *Service) Recommendations(ctx context.Context, injury types.InjuryType, phase types.Phase, n int) (recommend.Recommendation, error) {
	s.mu.RLock()
	exercises, started := s.exercises, s.started
	s.mu.RUnlock()
	if !started {
		return recommend.Recommendation{}, ErrNotStarted
	}
	if _, ok := types.ParsePhase(string(phase)); !ok {
		return recommend.Recommendation{}, fmt.Errorf("%w: %q", ErrUnknownPhase, phase)
	}
	return recommend.Build(ctx, exercises, injury, phase, n)
}

// Screen runs the red and yellow flag questionnaire assessment.
func (s *Service) Screen(_ context.Context, in screening.Input) screening.Assessment {
	return screening.Assess(in, s.now())
}

// ScoreRTS scores a return-to-sport hop test battery.
func (s *Service) ScoreRTS(_ context.Context, injury types.InjuryType, level rts.SportLevel, in rts.BatteryInput) rts.Assessment {
	return rts.ScoreBattery(injury, level, in, s.now())
}

// CheckSafety screens an exercise prescription for contraindications
// and injury-phase precautions.
func (s *Service) CheckSafety(_ context.Context, p safety.Profile, ex safety.ExerciseContext, inj safety.InjuryContext) safety.Assessment {
	return safety.Check(p, ex, inj, s.now())
}

// PrescribeLoad estimates a 1RM from a submaximal set and derives the
// goal-specific working-load band.
func (s *Service) PrescribeLoad(_ context.Context, weight float64, reps int, f progression.Formula, goal progression.Goal) (progression.Prescription, error) {
	oneRM, err := progression.EstimateOneRM(weight, reps, f)
	if err != nil {
		return progression.Prescription{}, err
	}
	return progression.PrescribeLoads(oneRM, goal)
}

// AdjustLoad recommends an RPE-driven load change.
func (s *Service) AdjustLoad(_ context.Context, weight, currentRPE, targetRPE float64, kind progression.ExerciseKind) (progression.RPEAdjustment, error) {
	return progression.AdjustByRPE(weight, currentRPE, targetRPE, kind)
}

// PlanVolume plans the next week's set and rep targets.
func (s *Service) PlanVolume(_ context.Context, sets, reps int, strategy progression.Strategy, week int) (progression.VolumePlan, error) {
	return progression.ProgressVolume(sets, reps, strategy, week)
}

// SupportedInjuries returns the injury types the engine has tables for.
func (s *Service) SupportedInjuries() []types.InjuryType {
	return types.InjuryTypes()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		if n, err := s.sessions.Count(ctx); err == nil {
			stats["totalSessions"] = n
			metrics.UpdateTotalSessions(n)
		}
		if ps, err := s.patients.List(ctx); err == nil {
			stats["totalPatients"] = len(ps)
			metrics.UpdateTotalPatients(len(ps))
		}
		if n, err := s.exercises.Count(ctx); err == nil {
			stats["totalExercises"] = n
			metrics.UpdateTotalExercises(n)
		}
		stats["supportedInjuries"] = len(types.InjuryTypes())
	}

	return stats
}

// deps snapshots the started components under the read lock.
func (s *Service) deps() (*engine.Engine, repository.SessionStore, repository.PatientStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, nil, ErrNotStarted
	}
	return s.engine, s.sessions, s.patients, nil
}
