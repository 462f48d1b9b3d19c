package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// Session log column layout. This is the persisted-state contract the
// engine's output must satisfy; keep it stable.
var sessionHeader = []string{
	"Timestamp", "SessionID", "PatientID", "Injury",
	"PeakForce", "LeftLimb", "RightLimb", "SymmetryIndex", "RFD",
	"PainScore", "DaysSinceSurgery", "RangeOfMotion", "SwellingGrade",
	"Phase", "Alerts", "Notes",
}

// Alert serialization separators inside the single Alerts column.
const (
	alertSep      = " | "
	alertFieldSep = "::"
)

// CSVSessionLog implements SessionStore over an append-only CSV file.
type CSVSessionLog struct {
	mu   sync.Mutex
	path string
}

// NewCSVSessionLog opens (or creates) the session log at path and
// writes the header when the file is new.
func NewCSVSessionLog(path string) (*CSVSessionLog, error) {
	s := &CSVSessionLog{path: path}
	if err := ensureHeader(path, sessionHeader); err != nil {
		return nil, fmt.Errorf("init session log: %w", err)
	}
	return s, nil
}

// Append writes one session row.
func (s *CSVSessionLog) Append(ctx context.Context, rec model.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(sessionRow(rec)); err != nil {
		return fmt.Errorf("write session row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush session log: %w", err)
	}
	return nil
}

// List returns sessions for a patient, oldest first. patientID ""
// lists everyone; limit <= 0 means no limit (it keeps the most recent
// rows when applied).
func (s *CSVSessionLog) List(ctx context.Context, patientID string, limit int) ([]model.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readAll(s.path)
	if err != nil {
		return nil, fmt.Errorf("read session log: %w", err)
	}

	var out []model.SessionRecord
	for _, row := range rows {
		rec, err := parseSessionRow(row)
		if err != nil {
			return nil, err
		}
		if patientID != "" && rec.PatientID != patientID {
			continue
		}
		out = append(out, rec)
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// Count returns the number of stored sessions.
func (s *CSVSessionLog) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readAll(s.path)
	if err != nil {
		return 0, fmt.Errorf("read session log: %w", err)
	}
	return len(rows), nil
}

func sessionRow(rec model.SessionRecord) []string {
	return []string{
		rec.Timestamp.UTC().Format(time.RFC3339),
		rec.ID,
		rec.PatientID,
		string(rec.Injury),
		formatFloat(rec.Metrics.PeakForce),
		formatFloat(rec.Metrics.LeftLimb),
		formatFloat(rec.Metrics.RightLimb),
		formatFloat(rec.Metrics.LSI),
		formatFloat(rec.Metrics.RFD),
		strconv.Itoa(rec.Metrics.PainScore),
		formatOptInt(rec.Metrics.DaysSinceSurgery),
		formatOptFloat(rec.Metrics.RangeOfMotion),
		formatOptInt(rec.Metrics.SwellingGrade),
		string(rec.Phase),
		serializeAlerts(rec.Alerts),
		rec.Notes,
	}
}

func parseSessionRow(row []string) (model.SessionRecord, error) {
	if len(row) != len(sessionHeader) {
		return model.SessionRecord{}, fmt.Errorf("%w: want %d columns, got %d", ErrBadRow, len(sessionHeader), len(row))
	}
	ts, err := time.Parse(time.RFC3339, row[0])
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("%w: bad timestamp %q", ErrBadRow, row[0])
	}

	rec := model.SessionRecord{
		ID:        row[1],
		PatientID: row[2],
		Timestamp: ts,
		Injury:    types.InjuryType(row[3]),
		Phase:     types.Phase(row[13]),
		Alerts:    parseAlerts(row[14]),
		Notes:     row[15],
	}

	var perr error
	num := func(s string) float64 {
		if s == "" || perr != nil {
			return 0
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			perr = fmt.Errorf("%w: bad number %q", ErrBadRow, s)
		}
		return v
	}
	rec.Metrics.PeakForce = num(row[4])
	rec.Metrics.LeftLimb = num(row[5])
	rec.Metrics.RightLimb = num(row[6])
	rec.Metrics.LSI = num(row[7])
	rec.Metrics.RFD = num(row[8])
	rec.Metrics.PainScore = int(num(row[9]))
	if row[10] != "" {
		v := int(num(row[10]))
		rec.Metrics.DaysSinceSurgery = &v
	}
	if row[11] != "" {
		v := num(row[11])
		rec.Metrics.RangeOfMotion = &v
	}
	if row[12] != "" {
		v := int(num(row[12]))
		rec.Metrics.SwellingGrade = &v
	}
	if perr != nil {
		return model.SessionRecord{}, perr
	}
	return rec, nil
}

func serializeAlerts(alerts []types.Alert) string {
	parts := make([]string, len(alerts))
	for i, a := range alerts {
		parts[i] = string(a.Severity) + alertFieldSep + a.Code + alertFieldSep + a.Message
	}
	return strings.Join(parts, alertSep)
}

func parseAlerts(s string) []types.Alert {
	if s == "" {
		return []types.Alert{}
	}
	parts := strings.Split(s, alertSep)
	out := make([]types.Alert, 0, len(parts))
	for _, p := range parts {
		fields := strings.SplitN(p, alertFieldSep, 3)
		if len(fields) != 3 {
			continue
		}
		out = append(out, types.Alert{
			Severity: types.Severity(fields[0]),
			Code:     fields[1],
			Message:  fields[2],
		})
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
