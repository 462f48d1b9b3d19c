// Package screening implements red- and yellow-flag detection for
// immediate-referral triage.
//
// Red flags are findings that warrant medical referral before
// rehabilitation continues; yellow flags are psychosocial factors that
// slow recovery. Flag predicates follow the clinic's screening
// worksheet (APTA/JOSPT-derived) and, like the phase engine, are pure
// functions of the submitted questionnaire.
package screening

import "time"

// Region localises the complaint for region-specific checks.
type Region string

// Screened body regions.
const (
	RegionSpine    Region = "spine"
	RegionKnee     Region = "knee"
	RegionShoulder Region = "shoulder"
	RegionAnkle    Region = "ankle"
)

// Severity grades a red flag.
type Severity string

// Red flag severities, worst first.
const (
	SeverityEmergency Severity = "emergency"
	SeverityHigh      Severity = "high"
	SeverityMedium    Severity = "medium"
)

// RiskLevel is the overall triage outcome.
type RiskLevel string

// Triage risk levels, worst first.
const (
	RiskEmergency RiskLevel = "emergency"
	RiskHigh      RiskLevel = "high"
	RiskModerate  RiskLevel = "moderate"
	RiskLow       RiskLevel = "low"
	RiskMinimal   RiskLevel = "minimal"
)

// Input is the screening questionnaire for one patient.
type Input struct {
	Age    int    `json:"age"`
	Region Region `json:"region"`

	// Systemic indicators.
	NewOnsetPain          bool `json:"new_onset_pain"`
	ProgressivePain       bool `json:"progressive_pain"`
	Fever                 bool `json:"fever"`
	UnexplainedWeightLoss bool `json:"unexplained_weight_loss"`
	NightSweats           bool `json:"night_sweats"`
	ConstantProgressive   bool `json:"constant_progressive_pain"`
	NightPainNoRelief     bool `json:"night_pain_no_relief"`

	// Spine.
	BladderDysfunction  bool `json:"bladder_dysfunction"`
	BowelDysfunction    bool `json:"bowel_dysfunction"`
	SaddleAnesthesia    bool `json:"saddle_anesthesia"`
	ProgressiveWeakness bool `json:"progressive_weakness"`
	SignificantTrauma   bool `json:"significant_trauma"`

	// Knee.
	JointEffusion      bool `json:"joint_effusion"`
	PulseDeficit       bool `json:"pulse_deficit"`
	ColdLimb           bool `json:"cold_limb"`
	OttawaKneePositive bool `json:"ottawa_knee_positive"`

	// Shoulder.
	AbsentPulse        bool `json:"absent_pulse"`
	BrachialPlexusSign bool `json:"brachial_plexus_signs"`

	// Ankle.
	OttawaAnklePositive bool `json:"ottawa_ankle_positive"`
	SevereSwelling      bool `json:"severe_swelling"`
	SeverePain          bool `json:"severe_pain"`

	// Psychosocial.
	JobDissatisfaction bool `json:"job_dissatisfaction"`
	DepressionPositive bool `json:"depression_screening_positive"`
	FearAvoidanceHigh  bool `json:"fear_avoidance_high"`
	PoorSocialSupport  bool `json:"poor_social_support"`
}

// RedFlag is one triggered referral indicator.
type RedFlag struct {
	Category string   `json:"category"`
	Flag     string   `json:"flag"`
	Severity Severity `json:"severity"`
	Action   string   `json:"action"`
}

// YellowFlag is one psychosocial recovery-risk indicator.
type YellowFlag struct {
	Category     string `json:"category"`
	Flag         string `json:"flag"`
	Impact       string `json:"impact"`
	Intervention string `json:"intervention"`
}

// Recommendation is a prioritised follow-up action.
type Recommendation struct {
	Priority  string `json:"priority"`
	Action    string `json:"action"`
	Timeframe string `json:"timeframe"`
	Rationale string `json:"rationale"`
}

// Assessment is the overall screening outcome.
type Assessment struct {
	RedFlags          []RedFlag        `json:"red_flags"`
	YellowFlags       []YellowFlag     `json:"yellow_flags"`
	RiskLevel         RiskLevel        `json:"risk_level"`
	ImmediateReferral bool             `json:"immediate_referral_needed"`
	Recommendations   []Recommendation `json:"recommendations"`
	AssessedAt        time.Time        `json:"assessed_at"`
}

// Age boundaries for the systemic checks.
const (
	olderOnsetAge       = 50
	youngProgressiveAge = 20
)

// Assess runs the full red/yellow flag battery and derives the overall
// risk level.
func Assess(in Input, now time.Time) Assessment {
	red := systemicFlags(in)
	switch in.Region {
	case RegionSpine:
		red = append(red, spinalFlags(in)...)
	case RegionKnee:
		red = append(red, kneeFlags(in)...)
	case RegionShoulder:
		red = append(red, shoulderFlags(in)...)
	case RegionAnkle:
		red = append(red, ankleFlags(in)...)
	}
	yellow := psychosocialFlags(in)
	risk := riskLevel(red, yellow)

	return Assessment{
		RedFlags:          red,
		YellowFlags:       yellow,
		RiskLevel:         risk,
		ImmediateReferral: len(red) > 0,
		Recommendations:   recommendations(risk, yellow),
		AssessedAt:        now,
	}
}

func systemicFlags(in Input) []RedFlag {
	var flags []RedFlag
	if in.Age > olderOnsetAge && in.NewOnsetPain {
		flags = append(flags, RedFlag{"Age-related", "New onset pain >50 years", SeverityHigh, "Rule out malignancy, fracture"})
	}
	if in.Age < youngProgressiveAge && in.ProgressivePain {
		flags = append(flags, RedFlag{"Age-related", "Progressive pain <20 years", SeverityHigh, "Rule out infection, tumor"})
	}
	if in.Fever {
		flags = append(flags, RedFlag{"Constitutional", "Fever with musculoskeletal pain", SeverityHigh, "Immediate medical evaluation - infection"})
	}
	if in.UnexplainedWeightLoss {
		flags = append(flags, RedFlag{"Constitutional", "Unexplained weight loss", SeverityHigh, "Rule out malignancy"})
	}
	if in.NightSweats {
		flags = append(flags, RedFlag{"Constitutional", "Night sweats with pain", SeverityMedium, "Medical evaluation - systemic disease"})
	}
	if in.ConstantProgressive {
		flags = append(flags, RedFlag{"Pain Pattern", "Constant, progressive, non-mechanical pain", SeverityHigh, "Rule out serious pathology"})
	}
	if in.NightPainNoRelief {
		flags = append(flags, RedFlag{"Pain Pattern", "Severe night pain, no relief with rest", SeverityHigh, "Rule out tumor, infection"})
	}
	return flags
}

func spinalFlags(in Input) []RedFlag {
	var flags []RedFlag
	if in.BladderDysfunction || in.BowelDysfunction {
		flags = append(flags, RedFlag{"Neurological Emergency", "Bladder/bowel dysfunction", SeverityEmergency, "IMMEDIATE emergency referral - cauda equina"})
	}
	if in.SaddleAnesthesia {
		flags = append(flags, RedFlag{"Neurological Emergency", "Saddle anesthesia", SeverityEmergency, "IMMEDIATE emergency referral - cauda equina"})
	}
	if in.ProgressiveWeakness {
		flags = append(flags, RedFlag{"Neurological", "Progressive neurological weakness", SeverityHigh, "Urgent neurological evaluation"})
	}
	if in.SignificantTrauma {
		flags = append(flags, RedFlag{"Trauma", "History of significant trauma", SeverityHigh, "Rule out fracture - imaging needed"})
	}
	return flags
}

func kneeFlags(in Input) []RedFlag {
	var flags []RedFlag
	if in.JointEffusion && in.Fever {
		flags = append(flags, RedFlag{"Infection", "Joint effusion with fever", SeverityHigh, "Rule out septic arthritis"})
	}
	if in.PulseDeficit || in.ColdLimb {
		flags = append(flags, RedFlag{"Vascular", "Vascular compromise signs", SeverityEmergency, "IMMEDIATE vascular surgery referral"})
	}
	if in.OttawaKneePositive {
		flags = append(flags, RedFlag{"Fracture", "Ottawa Knee Rule positive", SeverityHigh, "X-ray indicated"})
	}
	return flags
}

func shoulderFlags(in Input) []RedFlag {
	var flags []RedFlag
	if in.AbsentPulse {
		flags = append(flags, RedFlag{"Vascular", "Absent or diminished pulse", SeverityEmergency, "IMMEDIATE vascular evaluation"})
	}
	if in.BrachialPlexusSign {
		flags = append(flags, RedFlag{"Neurological", "Brachial plexus compromise", SeverityHigh, "Urgent neurological evaluation"})
	}
	return flags
}

func ankleFlags(in Input) []RedFlag {
	var flags []RedFlag
	if in.OttawaAnklePositive {
		flags = append(flags, RedFlag{"Fracture", "Ottawa Ankle Rule positive", SeverityHigh, "X-ray indicated"})
	}
	if in.SevereSwelling && in.SeverePain {
		flags = append(flags, RedFlag{"Compartment Syndrome", "Severe pain with severe swelling", SeverityEmergency, "IMMEDIATE surgical evaluation"})
	}
	return flags
}

func psychosocialFlags(in Input) []YellowFlag {
	var flags []YellowFlag
	if in.JobDissatisfaction {
		flags = append(flags, YellowFlag{"Occupational", "High job dissatisfaction", "Delayed recovery", "Address work-related concerns"})
	}
	if in.DepressionPositive {
		flags = append(flags, YellowFlag{"Psychological", "Depression screening positive", "Poor treatment outcomes", "Consider psychological support"})
	}
	if in.FearAvoidanceHigh {
		flags = append(flags, YellowFlag{"Psychological", "High fear-avoidance beliefs", "Chronic disability risk", "Cognitive-behavioral approach"})
	}
	if in.PoorSocialSupport {
		flags = append(flags, YellowFlag{"Social", "Poor social support", "Slower recovery", "Enhance support systems"})
	}
	return flags
}

// riskLevel aggregates flag counts into the overall triage outcome.
// Any emergency flag dominates; two high flags outrank one; three or
// more yellow flags alone reach moderate.
func riskLevel(red []RedFlag, yellow []YellowFlag) RiskLevel {
	var emergency, high int
	for _, f := range red {
		switch f.Severity {
		case SeverityEmergency:
			emergency++
		case SeverityHigh:
			high++
		}
	}
	switch {
	case emergency > 0:
		return RiskEmergency
	case high >= 2:
		return RiskHigh
	case high >= 1:
		return RiskModerate
	case len(yellow) >= 3:
		return RiskModerate
	case len(yellow) >= 1:
		return RiskLow
	default:
		return RiskMinimal
	}
}

func recommendations(risk RiskLevel, yellow []YellowFlag) []Recommendation {
	var recs []Recommendation
	switch risk {
	case RiskEmergency:
		recs = append(recs, Recommendation{"IMMEDIATE", "Emergency medical referral", "Within hours", "Life or limb-threatening condition possible"})
	case RiskHigh:
		recs = append(recs, Recommendation{"URGENT", "Medical evaluation within 24-48 hours", "1-2 days", "Serious pathology needs ruling out"})
	case RiskModerate:
		recs = append(recs, Recommendation{"ROUTINE", "Medical consultation recommended", "1-2 weeks", "Monitor for progression, address yellow flags"})
	}
	if len(yellow) > 0 {
		recs = append(recs, Recommendation{"PREVENTIVE", "Address psychosocial factors", "Ongoing", "Optimize recovery potential"})
	}
	return recs
}
