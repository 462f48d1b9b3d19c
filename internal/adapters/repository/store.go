// Package repository persists sessions, patients and the exercise
// catalog as flat CSV files.
//
// The session log is append-only: the engine produces a Result, the
// store writes it, and nothing ever reads history back into phase
// determination. Each store guards its file with a mutex; reads load
// the whole file, which is fine at clinician scale.
package repository

import (
	"context"
	"time"

	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// SessionStore records and lists assessment sessions.
type SessionStore interface {
	// Append writes one session row. Append-only; rows are never updated.
	Append(ctx context.Context, rec model.SessionRecord) error

	// List returns sessions for a patient, newest last. patientID ""
	// lists everyone. limit <= 0 means no limit.
	List(ctx context.Context, patientID string, limit int) ([]model.SessionRecord, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)
}

// PatientStore manages the patient registry.
type PatientStore interface {
	Add(ctx context.Context, p model.Patient) error
	Get(ctx context.Context, id string) (model.Patient, error)
	List(ctx context.Context) ([]model.Patient, error)

	// UpdatePhase rewrites the patient's current phase, stamping the row
	// with the caller's update time.
	UpdatePhase(ctx context.Context, id string, phase types.Phase, at time.Time) error
}

// ExerciseStore manages the searchable exercise catalog.
type ExerciseStore interface {
	Add(ctx context.Context, e model.Exercise) error

	// Search filters by injury, phase and exercise type (empty values
	// match everything) and by a case-insensitive free-text query over
	// name, goal and equipment.
	Search(ctx context.Context, injury types.InjuryType, phase types.Phase, exerciseType, query string) ([]model.Exercise, error)

	Count(ctx context.Context) (int, error)
}
