package engine

import (
	"fmt"

	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// PhaseGate is one (phase, predicate) pair in a threshold table.
// A gate is satisfied when every declared bound holds:
//
//	PainScore <= MaxPain  (inclusive)
//	LSI       >= MinLSI   (inclusive)
//	RFD       >= MinRFD   (inclusive)
//
// A nil bound is unbounded in that direction. Unconditional gates
// ignore all bounds and always match; they serve as the catch-all at
// the bottom of a table.
type PhaseGate struct {
	Phase         types.Phase
	MaxPain       *int
	MinLSI        *float64
	MinRFD        *float64
	Unconditional bool
}

// Satisfied reports whether the gate's predicate holds for m.
func (g PhaseGate) Satisfied(m model.ClinicalMetrics) bool {
	if g.Unconditional {
		return true
	}
	if g.MaxPain != nil && m.PainScore > *g.MaxPain {
		return false
	}
	if g.MinLSI != nil && m.LSI < *g.MinLSI {
		return false
	}
	if g.MinRFD != nil && m.RFD < *g.MinRFD {
		return false
	}
	return true
}

// describe renders the gate's bounds for the explanation trace.
func (g PhaseGate) describe() string {
	if g.Unconditional {
		return "unconditional"
	}
	s := ""
	if g.MaxPain != nil {
		s += fmt.Sprintf("pain<=%d ", *g.MaxPain)
	}
	if g.MinLSI != nil {
		s += fmt.Sprintf("lsi>=%.0f ", *g.MinLSI)
	}
	if g.MinRFD != nil {
		s += fmt.Sprintf("rfd>=%.0f ", *g.MinRFD)
	}
	if s == "" {
		return "unbounded"
	}
	return s[:len(s)-1]
}

// AlertRule is an independent predicate over metrics. A rule fires when
// every declared bound holds (conjunction):
//
//	PainScore >= MinPain  (inclusive)
//	PainScore <  MaxPain  (exclusive)
//	LSI       <  MaxLSI   (exclusive)
//	RFD       <  MaxRFD   (exclusive)
//
// A nil bound is unbounded in that direction. All rules in a table are
// evaluated on every call; a firing rule never influences the phase.
type AlertRule struct {
	Code     string
	Severity types.Severity
	Message  string
	MinPain  *int
	MaxPain  *int
	MaxLSI   *float64
	MaxRFD   *float64
}

// Fires reports whether the rule's predicate holds for m.
func (r AlertRule) Fires(m model.ClinicalMetrics) bool {
	if r.MinPain != nil && m.PainScore < *r.MinPain {
		return false
	}
	if r.MaxPain != nil && m.PainScore >= *r.MaxPain {
		return false
	}
	if r.MaxLSI != nil && m.LSI >= *r.MaxLSI {
		return false
	}
	if r.MaxRFD != nil && m.RFD >= *r.MaxRFD {
		return false
	}
	return true
}

// Table is the per-injury threshold configuration: phase gates in
// declared priority order (most advanced phase first) plus the alert
// rule set. Tables are read-only after startup.
type Table struct {
	Injury types.InjuryType
	Gates  []PhaseGate
	Alerts []AlertRule
}

// Phases returns the phase labels the table can produce, in priority order.
func (t Table) Phases() []types.Phase {
	out := make([]types.Phase, len(t.Gates))
	for i, g := range t.Gates {
		out[i] = g.Phase
	}
	return out
}

// validate rejects structurally malformed tables at load time.
func (t Table) validate() error {
	if t.Injury == "" {
		return fmt.Errorf("%w: table missing injury type", ErrMalformedTable)
	}
	if len(t.Gates) == 0 {
		return fmt.Errorf("%w: table %q has no phase gates", ErrMalformedTable, t.Injury)
	}
	seen := make(map[types.Phase]bool, len(t.Gates))
	for _, g := range t.Gates {
		if g.Phase == "" {
			return fmt.Errorf("%w: table %q has a gate without a phase", ErrMalformedTable, t.Injury)
		}
		if seen[g.Phase] {
			return fmt.Errorf("%w: table %q declares phase %q twice", ErrMalformedTable, t.Injury, g.Phase)
		}
		seen[g.Phase] = true
	}
	for _, r := range t.Alerts {
		if r.Code == "" || r.Message == "" {
			return fmt.Errorf("%w: table %q has an alert rule without code or message", ErrMalformedTable, t.Injury)
		}
		switch r.Severity {
		case types.SeverityInfo, types.SeverityWarning, types.SeverityCritical:
		default:
			return fmt.Errorf("%w: table %q alert %q has unknown severity %q", ErrMalformedTable, t.Injury, r.Code, r.Severity)
		}
	}
	return nil
}

// helpers for building literal tables.
func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
