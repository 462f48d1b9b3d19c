// Package engine determines rehabilitation phases and clinical alerts
// from per-session metrics.
//
// The engine is a pure function of its inputs: the injury-specific
// threshold tables are loaded once at startup and are read-only
// afterwards, so concurrent evaluations need no locking. Phase gates
// are checked in declared priority order, most advanced phase first,
// and the first satisfied gate wins; alert rules are all evaluated
// independently and never influence the phase.
package engine

import (
	"context"
	"fmt"

	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// GateTrace explains one phase gate evaluation for clinician review.
type GateTrace struct {
	Phase     types.Phase `json:"phase"`
	Predicate string      `json:"predicate"`
	Satisfied bool        `json:"satisfied"`
	Selected  bool        `json:"selected"`
}

// Result is the outcome of one evaluation. The metrics are echoed back
// for audit logging; the trace records every gate decision and its
// generation never changes the returned phase.
type Result struct {
	Injury  types.InjuryType      `json:"injury"`
	Phase   types.Phase           `json:"phase"`
	Alerts  []types.Alert         `json:"alerts"`
	Metrics model.ClinicalMetrics `json:"metrics"`
	Trace   []GateTrace           `json:"trace,omitempty"`
}

// Engine evaluates clinical metrics against per-injury threshold tables.
type Engine struct {
	tables map[types.InjuryType]Table
	trace  bool
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTables replaces the built-in threshold tables.
func WithTables(tables map[types.InjuryType]Table) Option {
	return func(e *Engine) {
		if len(tables) > 0 {
			e.tables = tables
		}
	}
}

// WithTrace controls whether results carry the gate-by-gate explanation.
func WithTrace(enabled bool) Option {
	return func(e *Engine) {
		e.trace = enabled
	}
}

// New constructs an Engine. Tables default to DefaultTables and are
// validated up front; a malformed table is a startup error, never a
// per-call one.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		tables: DefaultTables(),
		trace:  true,
	}
	for _, opt := range opts {
		opt(e)
	}
	for injury, t := range e.tables {
		if t.Injury == "" {
			t.Injury = injury
		}
		if err := t.validate(); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Supports reports whether a threshold table exists for the injury type.
func (e *Engine) Supports(injury types.InjuryType) bool {
	_, ok := e.tables[injury]
	return ok
}

// Phases returns the phase set the engine can produce for an injury
// type, in priority order.
func (e *Engine) Phases(injury types.InjuryType) ([]types.Phase, error) {
	t, ok := e.tables[injury]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedInjury, injury)
	}
	return t.Phases(), nil
}

// Evaluate determines the rehabilitation phase and alert set for the
// given metrics. It is deterministic and side-effect free; ctx is
// accepted to satisfy the project-wide convention and is not consulted,
// as evaluation never blocks.
func (e *Engine) Evaluate(_ context.Context, injury types.InjuryType, m model.ClinicalMetrics) (Result, error) {
	t, ok := e.tables[injury]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedInjury, injury)
	}

	res := Result{
		Injury:  injury,
		Phase:   types.PhaseUnclassified,
		Alerts:  []types.Alert{},
		Metrics: m,
	}

	// First satisfied gate in declared order wins; later gates are still
	// walked when tracing so the clinician sees the full picture.
	matched := false
	for _, g := range t.Gates {
		ok := g.Satisfied(m)
		selected := ok && !matched
		if selected {
			res.Phase = g.Phase
			matched = true
		}
		if e.trace {
			res.Trace = append(res.Trace, GateTrace{
				Phase:     g.Phase,
				Predicate: g.describe(),
				Satisfied: ok,
				Selected:  selected,
			})
		}
		if matched && !e.trace {
			break
		}
	}

	// Every alert rule is evaluated; no short-circuiting.
	for _, r := range t.Alerts {
		if r.Fires(m) {
			res.Alerts = append(res.Alerts, types.Alert{
				Code:     r.Code,
				Severity: r.Severity,
				Message:  r.Message,
			})
		}
	}

	return res, nil
}
