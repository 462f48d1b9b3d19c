// Package safety implements pre-exercise contraindication checking.
//
// A prescription is screened against the patient's medical status
// (ACSM-derived absolute and relative contraindications) and against an
// injury/phase precaution matrix, then graded on a five-step safety
// ladder. Like the screening package, the check is a pure function of
// its inputs.
package safety

import (
	"strings"
	"time"

	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// Level is the overall safety outcome, worst first.
type Level string

// Safety levels.
const (
	LevelUnsafe       Level = "unsafe"
	LevelHighRisk     Level = "high_risk"
	LevelModerateRisk Level = "moderate_risk"
	LevelLowRisk      Level = "low_risk"
	LevelSafe         Level = "safe"
)

// Grade ranks a precaution.
type Grade string

// Precaution grades.
const (
	GradeHigh   Grade = "high"
	GradeMedium Grade = "medium"
)

// Intensity buckets for the prescribed exercise.
type Intensity string

// Exercise intensities.
const (
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
)

// Medication identifiers checked for exercise interactions.
const (
	MedBetaBlockers  = "beta_blockers"
	MedBloodThinners = "blood_thinners"
)

// Profile is the patient's medical status relevant to exercise
// clearance. Zero values mean the finding is absent.
type Profile struct {
	Age int `json:"age"`

	// Cardiovascular.
	UnstableAngina         bool `json:"unstable_angina"`
	UncontrolledArrhythmia bool `json:"uncontrolled_arrhythmia"`
	RecentCardiacEvent     bool `json:"recent_cardiac_event"`
	SystolicBP             int  `json:"systolic_bp"`

	// Respiratory and metabolic.
	SeverePulmonaryEdema bool    `json:"severe_pulmonary_edema"`
	BloodGlucose         float64 `json:"blood_glucose"`

	// Infectious.
	Fever             bool `json:"fever"`
	SystemicInfection bool `json:"systemic_infection"`

	// Pregnancy.
	Pregnant  bool `json:"pregnant"`
	Trimester int  `json:"trimester"`

	Medications []string `json:"medications"`
}

// ExerciseContext describes the exercise being prescribed.
type ExerciseContext struct {
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Intensity       Intensity `json:"intensity"`
	Position        string    `json:"position"`
	ContactRisk     bool      `json:"contact_risk"`
	LoadBearing     bool      `json:"load_bearing"`
	RequiresFullROM bool      `json:"requires_full_rom"`
}

// InjuryContext localises the check to the patient's current injury
// state. ROMLimitation is the percentage below normal range.
type InjuryContext struct {
	Injury        types.InjuryType `json:"injury"`
	Phase         types.Phase      `json:"phase"`
	CurrentPain   float64          `json:"current_pain"`
	ROMLimitation float64          `json:"rom_limitation"`
}

// Contraindication is one absolute or relative finding against the
// prescription.
type Contraindication struct {
	Category string `json:"category"`
	Finding  string `json:"finding"`
	Action   string `json:"action"`
	Evidence string `json:"evidence"`
}

// Precaution is an injury- or symptom-specific caution that does not
// by itself prohibit the exercise.
type Precaution struct {
	Category       string `json:"category"`
	Finding        string `json:"finding"`
	Grade          Grade  `json:"grade"`
	Recommendation string `json:"recommendation"`
	Alternative    string `json:"alternative,omitempty"`
}

// Modification is a concrete change that makes the prescription safer.
type Modification struct {
	Kind      string `json:"kind"`
	Change    string `json:"change"`
	Rationale string `json:"rationale"`
}

// Assessment is the overall clearance outcome.
type Assessment struct {
	Absolute             []Contraindication `json:"absolute"`
	Relative             []Contraindication `json:"relative"`
	Precautions          []Precaution       `json:"precautions"`
	Modifications        []Modification     `json:"modifications"`
	Level                Level              `json:"level"`
	Recommendation       string             `json:"recommendation"`
	ExerciseCleared      bool               `json:"exercise_cleared"`
	RequiresModification bool               `json:"requires_modification"`
	AssessedAt           time.Time          `json:"assessed_at"`
}

// Glucose and blood pressure cutoffs for the systemic checks.
const (
	severeHyperglycemia = 300
	severeHypertension  = 180
	olderAdultAge       = 65
	loadBearingPainMax  = 3
	romLimitMax         = 20
)

// Check screens one prescription and derives the overall safety level.
func Check(p Profile, ex ExerciseContext, inj InjuryContext, now time.Time) Assessment {
	absolute := absoluteContraindications(p, ex)
	relative := relativeContraindications(p, ex)
	precautions := phasePrecautions(ex, inj)
	precautions = append(precautions, symptomPrecautions(ex, inj)...)
	mods := modifications(relative, precautions, inj)
	level, rec := safetyLevel(absolute, relative, precautions)

	return Assessment{
		Absolute:             absolute,
		Relative:             relative,
		Precautions:          precautions,
		Modifications:        mods,
		Level:                level,
		Recommendation:       rec,
		ExerciseCleared:      len(absolute) == 0,
		RequiresModification: len(relative) > 0 || len(precautions) > 0,
		AssessedAt:           now,
	}
}

func absoluteContraindications(p Profile, ex ExerciseContext) []Contraindication {
	var out []Contraindication
	if p.UnstableAngina {
		out = append(out, Contraindication{"Cardiovascular", "Unstable angina", "Exercise prohibited until medical clearance", "ACSM Guidelines 2022"})
	}
	if p.UncontrolledArrhythmia {
		out = append(out, Contraindication{"Cardiovascular", "Uncontrolled cardiac arrhythmia", "Cardiology clearance required", "Exercise physiology guidelines"})
	}
	if p.SeverePulmonaryEdema {
		out = append(out, Contraindication{"Respiratory", "Severe pulmonary edema", "Exercise contraindicated", "Respiratory medicine guidelines"})
	}
	if p.BloodGlucose > severeHyperglycemia {
		out = append(out, Contraindication{"Metabolic", "Severe hyperglycemia (>300 mg/dL)", "Medical management required before exercise", "Diabetes exercise guidelines"})
	}
	if p.Fever || p.SystemicInfection {
		out = append(out, Contraindication{"Infectious", "Fever or systemic infection", "Wait until fever-free for 24 hours", "Exercise immunology research"})
	}
	if ex.Intensity == IntensityHigh && p.RecentCardiacEvent {
		out = append(out, Contraindication{"Exercise-Specific", "High-intensity exercise post-cardiac event", "Reduce to low-moderate intensity", "Cardiac rehabilitation guidelines"})
	}
	return out
}

func relativeContraindications(p Profile, ex ExerciseContext) []Contraindication {
	var out []Contraindication
	if p.Age > olderAdultAge && ex.Intensity == IntensityHigh {
		out = append(out, Contraindication{"Age-Related", "High-intensity exercise in older adults", "Progressive intensity increase with monitoring", "Geriatric exercise guidelines"})
	}
	if p.SystolicBP > severeHypertension {
		out = append(out, Contraindication{"Cardiovascular", "Severe hypertension (SBP >180)", "Lower intensity, avoid Valsalva maneuvers", "Hypertension exercise guidelines"})
	}
	if p.Pregnant {
		if strings.EqualFold(ex.Position, "supine") && p.Trimester > 1 {
			out = append(out, Contraindication{"Pregnancy", "Supine exercises after first trimester", "Modify to side-lying or inclined positions", "ACOG exercise guidelines"})
		}
		kind := strings.ToLower(ex.Type)
		if kind == "contact" || kind == "high_impact" || kind == "high impact" {
			out = append(out, Contraindication{"Pregnancy", "Contact or high-impact exercise during pregnancy", "Substitute with low-impact alternatives", "Prenatal exercise research"})
		}
	}
	for _, med := range p.Medications {
		switch med {
		case MedBetaBlockers:
			out = append(out, Contraindication{"Medication", "Beta-blocker use affecting heart rate response", "Use RPE instead of heart rate for intensity", "Exercise pharmacology"})
		case MedBloodThinners:
			if ex.ContactRisk {
				out = append(out, Contraindication{"Medication", "Anticoagulant use with contact exercise", "Avoid exercises with fall or contact risk", "Anticoagulation guidelines"})
			}
		}
	}
	return out
}

// phaseRules lists exercise tokens to avoid or treat with caution for
// one injury phase. Tokens match case-insensitively against the
// exercise type and name.
type phaseRules struct {
	avoid   []string
	caution []string
}

var precautionMatrix = map[types.InjuryType]map[types.Phase]phaseRules{
	types.InjuryACL: {
		types.PhaseEarly: {
			avoid:   []string{"pivot", "cutting", "jumping"},
			caution: []string{"closed chain", "deep squat"},
		},
		types.PhaseMid: {
			avoid:   []string{"unrestricted pivot", "competitive"},
			caution: []string{"plyometric", "sport specific"},
		},
		types.PhaseLate: {
			avoid:   []string{"unpredictable"},
			caution: []string{"reactive", "full speed"},
		},
	},
	types.InjuryAchilles: {
		types.PhaseEarly: {
			avoid:   []string{"jumping", "running", "calf raise"},
			caution: []string{"weight bearing", "dorsiflexion"},
		},
		types.PhaseMid: {
			avoid:   []string{"high impact", "explosive"},
			caution: []string{"eccentric", "plyometric"},
		},
	},
	types.InjuryHamstring: {
		types.PhaseEarly: {
			avoid:   []string{"sprint", "aggressive stretch", "eccentric"},
			caution: []string{"hip flexion", "knee extension"},
		},
		types.PhaseMid: {
			avoid:   []string{"ballistic", "max effort"},
			caution: []string{"eccentric", "running"},
		},
	},
	types.InjuryRotatorCuff: {
		types.PhaseEarly: {
			avoid:   []string{"overhead", "behind back", "heavy lift"},
			caution: []string{"external rotation", "abduction"},
		},
		types.PhaseMid: {
			avoid:   []string{"overhead sport", "heavy resistance"},
			caution: []string{"overhead", "resistance"},
		},
	},
}

// alternatives suggests a safe substitute per avoided token, injury and
// phase.
var alternatives = map[string]map[types.InjuryType]map[types.Phase]string{
	"jumping": {
		types.InjuryACL: {
			types.PhaseEarly: "Stationary bike",
			types.PhaseMid:   "Step-ups",
			types.PhaseLate:  "Controlled hops",
		},
		types.InjuryAchilles: {
			types.PhaseEarly: "Upper body cardio",
			types.PhaseMid:   "Pool walking",
			types.PhaseLate:  "Low-impact plyometrics",
		},
	},
	"running": {
		types.InjuryAchilles: {
			types.PhaseEarly: "Cycling",
			types.PhaseMid:   "Elliptical",
			types.PhaseLate:  "Treadmill walking",
		},
		types.InjuryHamstring: {
			types.PhaseEarly: "Swimming",
			types.PhaseMid:   "Walking",
			types.PhaseLate:  "Jogging",
		},
	},
	"overhead": {
		types.InjuryRotatorCuff: {
			types.PhaseEarly: "Below-shoulder exercises",
			types.PhaseMid:   "Limited overhead work",
			types.PhaseLate:  "Progressive overhead loading",
		},
	},
}

const defaultAlternative = "Consult the treating therapist for an alternative"

func phasePrecautions(ex ExerciseContext, inj InjuryContext) []Precaution {
	rules, ok := precautionMatrix[inj.Injury][inj.Phase]
	if !ok {
		return nil
	}
	var out []Precaution
	for _, token := range rules.avoid {
		if !matches(token, ex) {
			continue
		}
		alt := alternatives[token][inj.Injury][inj.Phase]
		if alt == "" {
			alt = defaultAlternative
		}
		out = append(out, Precaution{
			Category:       "Injury-Specific",
			Finding:        "Exercise type contraindicated for " + string(inj.Injury) + " in " + string(inj.Phase) + " phase",
			Grade:          GradeHigh,
			Recommendation: "Avoid " + token + " exercises",
			Alternative:    alt,
		})
	}
	for _, token := range rules.caution {
		if !matches(token, ex) {
			continue
		}
		out = append(out, Precaution{
			Category:       "Injury-Specific",
			Finding:        "Exercise requires caution for " + string(inj.Injury) + " in " + string(inj.Phase) + " phase",
			Grade:          GradeMedium,
			Recommendation: "Proceed carefully with " + token + " exercises",
		})
	}
	return out
}

func matches(token string, ex ExerciseContext) bool {
	return strings.Contains(strings.ToLower(ex.Type), token) ||
		strings.Contains(strings.ToLower(ex.Name), token)
}

func symptomPrecautions(ex ExerciseContext, inj InjuryContext) []Precaution {
	var out []Precaution
	if inj.CurrentPain > loadBearingPainMax && ex.LoadBearing {
		out = append(out, Precaution{
			Category:       "Pain-Based",
			Finding:        "Moderate pain with load-bearing exercise",
			Grade:          GradeMedium,
			Recommendation: "Reduce load or switch to a non-weight-bearing alternative",
		})
	}
	if inj.ROMLimitation > romLimitMax && ex.RequiresFullROM {
		out = append(out, Precaution{
			Category:       "Range of Motion",
			Finding:        "Exercise requires range beyond current capability",
			Grade:          GradeMedium,
			Recommendation: "Modify the exercise to work within the available range",
		})
	}
	return out
}

func modifications(relative []Contraindication, precautions []Precaution, inj InjuryContext) []Modification {
	var out []Modification
	if len(relative) > 0 {
		out = append(out, Modification{"Intensity", "Reduce exercise intensity by 25-50%", "Relative contraindications present"})
	}
	if len(precautions) > 0 {
		out = append(out, Modification{"Duration", "Reduce exercise duration, increase rest periods", "Precautions require careful monitoring"})
	}
	for _, c := range relative {
		if strings.Contains(c.Finding, "Supine") {
			out = append(out, Modification{"Position", "Avoid supine positions, use inclined or side-lying", "Position-specific contraindication"})
			break
		}
	}
	if inj.Phase == types.PhaseEarly {
		out = append(out, Modification{"Load", "Use bodyweight or minimal resistance only", "Early phase injury protection"})
	}
	return out
}

// safetyLevel aggregates finding counts into the ladder outcome. Any
// absolute contraindication dominates; three relatives or four
// precautions outrank smaller counts.
func safetyLevel(absolute, relative []Contraindication, precautions []Precaution) (Level, string) {
	switch {
	case len(absolute) > 0:
		return LevelUnsafe, "Exercise prohibited - address contraindications first"
	case len(relative) >= 3 || len(precautions) >= 4:
		return LevelHighRisk, "Significant modifications required - consider alternative exercises"
	case len(relative) >= 1 || len(precautions) >= 2:
		return LevelModerateRisk, "Exercise with modifications and close monitoring"
	case len(precautions) >= 1:
		return LevelLowRisk, "Exercise with minor modifications"
	default:
		return LevelSafe, "Exercise cleared as prescribed"
	}
}
