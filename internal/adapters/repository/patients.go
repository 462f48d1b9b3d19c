package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

var patientHeader = []string{
	"PatientID", "FirstName", "LastName", "DateOfBirth", "Sex",
	"Injury", "CurrentPhase", "LastUpdated",
}

// CSVPatientRegistry implements PatientStore over a CSV file.
type CSVPatientRegistry struct {
	mu   sync.Mutex
	path string
}

// NewCSVPatientRegistry opens (or creates) the registry at path.
func NewCSVPatientRegistry(path string) (*CSVPatientRegistry, error) {
	r := &CSVPatientRegistry{path: path}
	if err := ensureHeader(path, patientHeader); err != nil {
		return nil, fmt.Errorf("init patient registry: %w", err)
	}
	return r, nil
}

// Add appends a new patient. Fails with ErrDuplicateID when the ID is
// already registered.
func (r *CSVPatientRegistry) Add(ctx context.Context, p model.Patient) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("add patient: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := readAll(r.path)
	if err != nil {
		return fmt.Errorf("read patient registry: %w", err)
	}
	for _, row := range rows {
		if len(row) > 0 && row[0] == p.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open patient registry: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(patientRow(p)); err != nil {
		return fmt.Errorf("write patient row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush patient registry: %w", err)
	}
	return nil
}

// Get returns the patient with the given ID or ErrNotFound.
func (r *CSVPatientRegistry) Get(ctx context.Context, id string) (model.Patient, error) {
	if err := ctx.Err(); err != nil {
		return model.Patient{}, fmt.Errorf("get patient: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := readAll(r.path)
	if err != nil {
		return model.Patient{}, fmt.Errorf("read patient registry: %w", err)
	}
	for _, row := range rows {
		if len(row) > 0 && row[0] == id {
			return parsePatientRow(row)
		}
	}
	return model.Patient{}, fmt.Errorf("%w: patient %s", ErrNotFound, id)
}

// List returns all registered patients in file order.
func (r *CSVPatientRegistry) List(ctx context.Context) ([]model.Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := readAll(r.path)
	if err != nil {
		return nil, fmt.Errorf("read patient registry: %w", err)
	}
	out := make([]model.Patient, 0, len(rows))
	for _, row := range rows {
		p, err := parsePatientRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// UpdatePhase rewrites the patient's current phase, stamping the row
// with the caller's update time so the registry stays deterministic
// under an injected clock.
func (r *CSVPatientRegistry) UpdatePhase(ctx context.Context, id string, phase types.Phase, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("update patient phase: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := readAll(r.path)
	if err != nil {
		return fmt.Errorf("read patient registry: %w", err)
	}
	found := false
	for _, row := range rows {
		if len(row) == len(patientHeader) && row[0] == id {
			row[6] = string(phase)
			row[7] = at.UTC().Format(time.RFC3339)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: patient %s", ErrNotFound, id)
	}
	if err := writeAll(r.path, patientHeader, rows); err != nil {
		return fmt.Errorf("rewrite patient registry: %w", err)
	}
	return nil
}

func patientRow(p model.Patient) []string {
	return []string{
		p.ID,
		p.FirstName,
		p.LastName,
		p.DateOfBirth,
		p.Sex,
		string(p.Injury),
		string(p.CurrentPhase),
		p.LastUpdated.UTC().Format(time.RFC3339),
	}
}

func parsePatientRow(row []string) (model.Patient, error) {
	if len(row) != len(patientHeader) {
		return model.Patient{}, fmt.Errorf("%w: want %d columns, got %d", ErrBadRow, len(patientHeader), len(row))
	}
	updated, err := time.Parse(time.RFC3339, row[7])
	if err != nil {
		return model.Patient{}, fmt.Errorf("%w: bad timestamp %q", ErrBadRow, row[7])
	}
	return model.Patient{
		ID:           row[0],
		FirstName:    row[1],
		LastName:     row[2],
		DateOfBirth:  row[3],
		Sex:          row[4],
		Injury:       types.InjuryType(row[5]),
		CurrentPhase: types.Phase(row[6]),
		LastUpdated:  updated,
	}, nil
}
