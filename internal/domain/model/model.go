// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// ClinicalMetrics is the validated input bundle for one assessment.
// Optional fields are pointers; nil means the clinician did not record them.
type ClinicalMetrics struct {
	// PeakForce is the maximum force output from testing, in Newtons.
	PeakForce float64 `json:"peak_force"`

	// LeftLimb and RightLimb are per-limb force readings in Newtons.
	// Zero when the LSI was supplied directly instead of derived.
	LeftLimb  float64 `json:"left_limb"`
	RightLimb float64 `json:"right_limb"`

	// LSI is the limb symmetry index as a percentage, domain [0, 200].
	LSI float64 `json:"lsi"`

	// RFD is the rate of force development as a percentage of baseline.
	RFD float64 `json:"rfd"`

	// PainScore is the subjective 0-10 pain rating during testing.
	PainScore int `json:"pain_score"`

	// DaysSinceSurgery counts days since the operative date, when known.
	DaysSinceSurgery *int `json:"days_since_surgery,omitempty"`

	// RangeOfMotion is the measured joint ROM in degrees, when recorded.
	RangeOfMotion *float64 `json:"range_of_motion,omitempty"`

	// SwellingGrade is the observed effusion grade 0-3, when recorded.
	SwellingGrade *int `json:"swelling_grade,omitempty"`
}

// SessionRecord is one persisted assessment row in the session log.
// Rows are append-only; the engine never reads them back for phase
// determination.
type SessionRecord struct {
	ID        string           `json:"id"`
	PatientID string           `json:"patient_id"`
	Timestamp time.Time        `json:"timestamp"`
	Injury    types.InjuryType `json:"injury"`
	Metrics   ClinicalMetrics  `json:"metrics"`
	Phase     types.Phase      `json:"phase"`
	Alerts    []types.Alert    `json:"alerts"`
	Notes     string           `json:"notes,omitempty"`
}

// Patient is a row in the patient registry.
type Patient struct {
	ID           string           `json:"id"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	DateOfBirth  string           `json:"date_of_birth"` // YYYY-MM-DD
	Sex          string           `json:"sex"`
	Injury       types.InjuryType `json:"injury"`
	CurrentPhase types.Phase      `json:"current_phase"`
	LastUpdated  time.Time        `json:"last_updated"`
}

// Age returns the patient's age in whole years at now.
// Returns 0 when the date of birth cannot be parsed.
func (p Patient) Age(now time.Time) int {
	dob, err := time.Parse("2006-01-02", p.DateOfBirth)
	if err != nil {
		return 0
	}
	years := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Exercise is a row in the exercise catalog.
type Exercise struct {
	Injury      types.InjuryType `json:"injury"`
	Phase       types.Phase      `json:"phase"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Goal        string           `json:"goal"`
	Equipment   string           `json:"equipment"`
	Progression string           `json:"progression"`
	Evidence    string           `json:"evidence"`
	VideoURL    string           `json:"video_url,omitempty"`
	DateAdded   string           `json:"date_added"` // YYYY-MM-DD
}
