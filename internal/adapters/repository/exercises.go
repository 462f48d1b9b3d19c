package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

var exerciseHeader = []string{
	"Injury", "Phase", "Name", "Type", "Goal", "Equipment",
	"Progression", "Evidence", "VideoURL", "DateAdded",
}

// CSVExerciseCatalog implements ExerciseStore over a CSV file.
type CSVExerciseCatalog struct {
	mu   sync.Mutex
	path string
}

// NewCSVExerciseCatalog opens (or creates) the catalog at path.
func NewCSVExerciseCatalog(path string) (*CSVExerciseCatalog, error) {
	c := &CSVExerciseCatalog{path: path}
	if err := ensureHeader(path, exerciseHeader); err != nil {
		return nil, fmt.Errorf("init exercise catalog: %w", err)
	}
	return c, nil
}

// Add appends an exercise to the catalog.
func (c *CSVExerciseCatalog) Add(ctx context.Context, e model.Exercise) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("add exercise: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open exercise catalog: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exerciseRow(e)); err != nil {
		return fmt.Errorf("write exercise row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush exercise catalog: %w", err)
	}
	return nil
}

// Search filters the catalog. Empty injury, phase and exerciseType
// match everything; query is matched case-insensitively against name,
// goal and equipment.
func (c *CSVExerciseCatalog) Search(ctx context.Context, injury types.InjuryType, phase types.Phase, exerciseType, query string) ([]model.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search exercises: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := readAll(c.path)
	if err != nil {
		return nil, fmt.Errorf("read exercise catalog: %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Exercise, 0)
	for _, row := range rows {
		e, err := parseExerciseRow(row)
		if err != nil {
			return nil, err
		}
		if injury != "" && e.Injury != injury {
			continue
		}
		if phase != "" && e.Phase != phase {
			continue
		}
		if exerciseType != "" && !strings.EqualFold(e.Type, exerciseType) {
			continue
		}
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Count returns the number of catalog entries.
func (c *CSVExerciseCatalog) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := readAll(c.path)
	if err != nil {
		return 0, fmt.Errorf("read exercise catalog: %w", err)
	}
	return len(rows), nil
}

func matchesQuery(e model.Exercise, query string) bool {
	for _, field := range []string{e.Name, e.Goal, e.Equipment} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func exerciseRow(e model.Exercise) []string {
	return []string{
		string(e.Injury),
		string(e.Phase),
		e.Name,
		e.Type,
		e.Goal,
		e.Equipment,
		e.Progression,
		e.Evidence,
		e.VideoURL,
		e.DateAdded,
	}
}

func parseExerciseRow(row []string) (model.Exercise, error) {
	if len(row) != len(exerciseHeader) {
		return model.Exercise{}, fmt.Errorf("%w: want %d columns, got %d", ErrBadRow, len(exerciseHeader), len(row))
	}
	return model.Exercise{
		Injury:      types.InjuryType(row[0]),
		Phase:       types.Phase(row[1]),
		Name:        row[2],
		Type:        row[3],
		Goal:        row[4],
		Equipment:   row[5],
		Progression: row[6],
		Evidence:    row[7],
		VideoURL:    row[8],
		DateAdded:   row[9],
	}, nil
}
