package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// RawMetrics is the untyped textual form input for one assessment, as
// submitted by the presentation layer. Empty strings mean the field was
// left blank.
type RawMetrics struct {
	PeakForce        string `json:"peak_force"`
	LeftLimb         string `json:"left_limb"`
	RightLimb        string `json:"right_limb"`
	LSI              string `json:"lsi"`
	RFD              string `json:"rfd"`
	PainScore        string `json:"pain_score"`
	DaysSinceSurgery string `json:"days_since_surgery"`
	RangeOfMotion    string `json:"range_of_motion"`
	SwellingGrade    string `json:"swelling_grade"`
}

// Violation is a single field-level constraint failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violated constraint so the caller
// can surface all problems at once.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Field + ": " + v.Message
	}
	return "invalid metrics: " + strings.Join(msgs, "; ")
}

// Domain bounds for metric fields.
const (
	maxPainScore    = 10
	maxLSIPercent   = 200
	maxSwellingGrad = 3
)

// ValidateMetrics coerces raw form input into a typed ClinicalMetrics
// bundle, enforcing presence and range constraints. All violations are
// collected, not just the first. Whether the injury type has a
// threshold table is Evaluate's concern, not validation's; an unknown
// injury with well-formed metrics passes here and fails there with
// ErrUnsupportedInjury.
//
// The LSI is derived from the per-limb forces when both are supplied
// (min/max as a percentage, the weaker limb over the stronger);
// otherwise the lsi field itself is required.
func ValidateMetrics(_ types.InjuryType, raw RawMetrics) (model.ClinicalMetrics, error) {
	var (
		m    model.ClinicalMetrics
		errs []Violation
	)
	add := func(field, format string, args ...any) {
		errs = append(errs, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// peak_force: optional, non-negative.
	if raw.PeakForce != "" {
		v, err := strconv.ParseFloat(raw.PeakForce, 64)
		switch {
		case err != nil:
			add("peak_force", "not a number: %q", raw.PeakForce)
		case v < 0:
			add("peak_force", "must be >= 0, got %g", v)
		default:
			m.PeakForce = v
		}
	}

	// Limb forces: optional as a pair; used to derive the LSI.
	left, leftOK := parseOptionalForce("left_limb", raw.LeftLimb, add)
	right, rightOK := parseOptionalForce("right_limb", raw.RightLimb, add)
	m.LeftLimb, m.RightLimb = left, right

	switch {
	case leftOK && rightOK && math.Max(left, right) > 0:
		weaker, stronger := math.Min(left, right), math.Max(left, right)
		m.LSI = math.Round(weaker/stronger*1000) / 10
	case raw.LSI == "":
		add("lsi", "required: supply lsi directly or both limb forces")
	default:
		v, err := strconv.ParseFloat(raw.LSI, 64)
		switch {
		case err != nil:
			add("lsi", "not a number: %q", raw.LSI)
		case v < 0 || v > maxLSIPercent:
			add("lsi", "must be within [0, %d], got %g", maxLSIPercent, v)
		default:
			m.LSI = v
		}
	}

	// rfd: required, non-negative percentage of baseline.
	if raw.RFD == "" {
		add("rfd", "required")
	} else {
		v, err := strconv.ParseFloat(raw.RFD, 64)
		switch {
		case err != nil:
			add("rfd", "not a number: %q", raw.RFD)
		case v < 0:
			add("rfd", "must be >= 0, got %g", v)
		default:
			m.RFD = v
		}
	}

	// pain_score: required integer in [0, 10].
	if raw.PainScore == "" {
		add("pain_score", "required")
	} else {
		v, err := strconv.Atoi(raw.PainScore)
		switch {
		case err != nil:
			add("pain_score", "not an integer: %q", raw.PainScore)
		case v < 0 || v > maxPainScore:
			add("pain_score", "must be within [0, %d], got %d", maxPainScore, v)
		default:
			m.PainScore = v
		}
	}

	// days_since_surgery: optional non-negative integer.
	if raw.DaysSinceSurgery != "" {
		v, err := strconv.Atoi(raw.DaysSinceSurgery)
		switch {
		case err != nil:
			add("days_since_surgery", "not an integer: %q", raw.DaysSinceSurgery)
		case v < 0:
			add("days_since_surgery", "must be >= 0, got %d", v)
		default:
			m.DaysSinceSurgery = &v
		}
	}

	// range_of_motion: optional non-negative degrees.
	if raw.RangeOfMotion != "" {
		v, err := strconv.ParseFloat(raw.RangeOfMotion, 64)
		switch {
		case err != nil:
			add("range_of_motion", "not a number: %q", raw.RangeOfMotion)
		case v < 0:
			add("range_of_motion", "must be >= 0, got %g", v)
		default:
			m.RangeOfMotion = &v
		}
	}

	// swelling_grade: optional integer in [0, 3].
	if raw.SwellingGrade != "" {
		v, err := strconv.Atoi(raw.SwellingGrade)
		switch {
		case err != nil:
			add("swelling_grade", "not an integer: %q", raw.SwellingGrade)
		case v < 0 || v > maxSwellingGrad:
			add("swelling_grade", "must be within [0, %d], got %d", maxSwellingGrad, v)
		default:
			m.SwellingGrade = &v
		}
	}

	if len(errs) > 0 {
		return model.ClinicalMetrics{}, &ValidationError{Violations: errs}
	}
	return m, nil
}

func parseOptionalForce(field, raw string, add func(field, format string, args ...any)) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	switch {
	case err != nil:
		add(field, "not a number: %q", raw)
		return 0, false
	case v < 0:
		add(field, "must be >= 0, got %g", v)
		return 0, false
	}
	return v, true
}
