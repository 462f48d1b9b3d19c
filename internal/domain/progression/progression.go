// Package progression implements evidence-based load progression:
// one-repetition-maximum estimation, goal-specific load prescriptions,
// RPE-driven load adjustment and week-over-week volume planning.
//
// The formulas and tables follow published strength and conditioning
// references (Epley, Brzycki, Zourdos RPE research, ACSM prescription
// ranges) and, like the phase engine, are pure functions of their
// inputs.
package progression

import (
	"fmt"
	"math"
)

// Formula selects a one-repetition-maximum estimation equation.
type Formula string

// Supported 1RM formulas. The empty formula defaults to Epley.
const (
	FormulaEpley    Formula = "epley"
	FormulaBrzycki  Formula = "brzycki"
	FormulaLander   Formula = "lander"
	FormulaLombardi Formula = "lombardi"
	FormulaMayhew   Formula = "mayhew"
)

// Estimation formulas lose validity beyond this rep count.
const maxEstimationReps = 30

// EstimateOneRM estimates a one-repetition maximum from a submaximal
// set. A single-rep set is returned as-is.
func EstimateOneRM(weight float64, reps int, f Formula) (float64, error) {
	if weight <= 0 || reps <= 0 {
		return 0, fmt.Errorf("%w: weight %.1f, reps %d", ErrBadLift, weight, reps)
	}
	if reps > maxEstimationReps {
		return 0, fmt.Errorf("%w: reps %d exceeds %d", ErrBadLift, reps, maxEstimationReps)
	}
	if reps == 1 {
		return weight, nil
	}
	r := float64(reps)
	var est float64
	switch f {
	case "", FormulaEpley:
		est = weight * (1 + r/30)
	case FormulaBrzycki:
		est = weight * (36 / (37 - r))
	case FormulaLander:
		est = weight * (100 / (101.3 - 2.67123*r))
	case FormulaLombardi:
		est = weight * math.Pow(r, 0.10)
	case FormulaMayhew:
		est = weight * (100 / (52.2 + 41.9*math.Exp(-0.055*r)))
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormula, f)
	}
	return round1(est), nil
}

// Goal selects a training-goal prescription band.
type Goal string

// Training goals. Unrecognised goals fall back to GoalRehabEarly, the
// most conservative band.
const (
	GoalStrength    Goal = "strength"
	GoalHypertrophy Goal = "hypertrophy"
	GoalPower       Goal = "power"
	GoalEndurance   Goal = "endurance"
	GoalRehabEarly  Goal = "rehab_early"
	GoalRehabLate   Goal = "rehab_late"
)

// Range is an inclusive numeric band.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IntRange is an inclusive integer band.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Prescription is a goal-specific loading plan anchored to an
// estimated 1RM.
type Prescription struct {
	Goal             Goal     `json:"goal"`
	OneRM            float64  `json:"one_rm_estimate"`
	LoadRange        Range    `json:"load_range"`
	IntensityPercent IntRange `json:"intensity_percent"`
	Reps             IntRange `json:"reps"`
	Sets             IntRange `json:"sets"`
	Rest             string   `json:"rest"`
	Frequency        string   `json:"frequency"`
	Progression      string   `json:"progression"`
}

type prescriptionBand struct {
	intensity   IntRange
	reps        IntRange
	sets        IntRange
	rest        string
	frequency   string
	progression string
}

var prescriptionTable = map[Goal]prescriptionBand{
	GoalStrength: {
		intensity:   IntRange{85, 100},
		reps:        IntRange{1, 6},
		sets:        IntRange{3, 6},
		rest:        "3-5 minutes",
		frequency:   "2-3x/week",
		progression: "2-10% when target reps achieved",
	},
	GoalHypertrophy: {
		intensity:   IntRange{67, 85},
		reps:        IntRange{6, 12},
		sets:        IntRange{3, 6},
		rest:        "30-90 seconds",
		frequency:   "2-3x/week",
		progression: "2-5% when target reps achieved",
	},
	GoalPower: {
		intensity:   IntRange{75, 95},
		reps:        IntRange{1, 5},
		sets:        IntRange{3, 5},
		rest:        "2-5 minutes",
		frequency:   "3x/week",
		progression: "Focus on speed of movement, then load",
	},
	GoalEndurance: {
		intensity:   IntRange{50, 67},
		reps:        IntRange{12, 20},
		sets:        IntRange{2, 3},
		rest:        "30 seconds",
		frequency:   "3-4x/week",
		progression: "Increase reps first, then load",
	},
	GoalRehabEarly: {
		intensity:   IntRange{40, 60},
		reps:        IntRange{10, 15},
		sets:        IntRange{2, 3},
		rest:        "60-90 seconds",
		frequency:   "3-5x/week",
		progression: "Pain-free range, then reps, then load",
	},
	GoalRehabLate: {
		intensity:   IntRange{60, 80},
		reps:        IntRange{8, 12},
		sets:        IntRange{3, 4},
		rest:        "90-120 seconds",
		frequency:   "3-4x/week",
		progression: "5% increases when form maintained",
	},
}

// PrescribeLoads derives the working-load band for the goal from an
// estimated 1RM.
func PrescribeLoads(oneRM float64, goal Goal) (Prescription, error) {
	if oneRM <= 0 {
		return Prescription{}, fmt.Errorf("%w: one rm %.1f", ErrBadLift, oneRM)
	}
	band, ok := prescriptionTable[goal]
	if !ok {
		goal = GoalRehabEarly
		band = prescriptionTable[goal]
	}
	return Prescription{
		Goal:  goal,
		OneRM: oneRM,
		LoadRange: Range{
			Min: round1(oneRM * float64(band.intensity.Min) / 100),
			Max: round1(oneRM * float64(band.intensity.Max) / 100),
		},
		IntensityPercent: band.intensity,
		Reps:             band.reps,
		Sets:             band.sets,
		Rest:             band.rest,
		Frequency:        band.frequency,
		Progression:      band.progression,
	}, nil
}

// ExerciseKind modifies RPE-based load estimates for exercise
// stability demands.
type ExerciseKind string

// Exercise kinds. Unrecognised kinds use the compound modifier.
const (
	KindCompound   ExerciseKind = "compound"
	KindIsolation  ExerciseKind = "isolation"
	KindUnilateral ExerciseKind = "unilateral"
	KindBalance    ExerciseKind = "balance"
	KindFunctional ExerciseKind = "functional"
)

var kindModifiers = map[ExerciseKind]float64{
	KindCompound:   1.0,
	KindIsolation:  0.95,
	KindUnilateral: 0.90,
	KindBalance:    0.85,
	KindFunctional: 0.88,
}

// rpePercent maps a rating of perceived exertion to %1RM (Zourdos et
// al., 2016).
var rpePercent = map[float64]float64{
	10:  100,
	9.5: 97,
	9:   94,
	8.5: 91,
	8:   88,
	7.5: 85,
	7:   82,
	6.5: 79,
	6:   76,
	5.5: 73,
	5:   70,
}

// RPEAdjustment is a load change derived from perceived-exertion
// targets.
type RPEAdjustment struct {
	CurrentWeight     float64 `json:"current_weight"`
	CurrentRPE        float64 `json:"current_rpe"`
	TargetRPE         float64 `json:"target_rpe"`
	RecommendedWeight float64 `json:"recommended_weight"`
	EstimatedOneRM    float64 `json:"estimated_1rm"`
	PercentChange     float64 `json:"percent_change"`
	Modifier          float64 `json:"exercise_modifier"`
	Notes             string  `json:"notes"`
}

// AdjustByRPE recommends the weight that should land on the target RPE
// given the weight the current RPE was observed at.
func AdjustByRPE(weight, currentRPE, targetRPE float64, kind ExerciseKind) (RPEAdjustment, error) {
	if weight <= 0 {
		return RPEAdjustment{}, fmt.Errorf("%w: weight %.1f", ErrBadLift, weight)
	}
	curPct, ok := rpePercent[currentRPE]
	if !ok {
		return RPEAdjustment{}, fmt.Errorf("%w: current rpe %.1f", ErrBadRPE, currentRPE)
	}
	tgtPct, ok := rpePercent[targetRPE]
	if !ok {
		return RPEAdjustment{}, fmt.Errorf("%w: target rpe %.1f", ErrBadRPE, targetRPE)
	}
	modifier, ok := kindModifiers[kind]
	if !ok {
		modifier = kindModifiers[KindCompound]
	}

	estOneRM := weight / (curPct / 100) * modifier
	target := estOneRM * (tgtPct / 100) * modifier
	change := (target - weight) / weight * 100

	return RPEAdjustment{
		CurrentWeight:     weight,
		CurrentRPE:        currentRPE,
		TargetRPE:         targetRPE,
		RecommendedWeight: round1(target),
		EstimatedOneRM:    round1(estOneRM),
		PercentChange:     round1(change),
		Modifier:          modifier,
		Notes:             rpeNotes(currentRPE, targetRPE, change),
	}, nil
}

func rpeNotes(current, target, change float64) string {
	switch {
	case target > current && change > 15:
		return "Large increase suggested - progress gradually over 2-3 sessions"
	case target > current && change > 10:
		return "Moderate increase - monitor form and technique closely"
	case target > current:
		return "Appropriate progression - advance when ready"
	case target < current:
		return "Deload recommended - focus on movement quality and recovery"
	default:
		return "Maintain current load - consider volume or frequency changes"
	}
}

// Strategy selects a weekly volume progression scheme.
type Strategy string

// Volume progression strategies. Unrecognised strategies fall back to
// linear.
const (
	StrategyLinear      Strategy = "linear"
	StrategyStepLoading Strategy = "step_loading"
	StrategyUndulating  Strategy = "undulating"
	StrategyBlock       Strategy = "block"
)

type strategyBand struct {
	weeklyIncrease  float64
	maxIncrease     float64
	deloadFrequency int
}

var strategyTable = map[Strategy]strategyBand{
	StrategyLinear:      {weeklyIncrease: 2.5, maxIncrease: 10, deloadFrequency: 4},
	StrategyStepLoading: {weeklyIncrease: 5, maxIncrease: 15, deloadFrequency: 3},
	StrategyUndulating:  {weeklyIncrease: 3, maxIncrease: 20, deloadFrequency: 4},
	StrategyBlock:       {weeklyIncrease: 4, maxIncrease: 12, deloadFrequency: 3},
}

// Volume progression bounds.
const (
	repCeiling     = 15
	repSwitchover  = 12
	repFloor       = 8
	deloadRepFloor = 5
	deloadFactor   = 0.6
)

// VolumePlan is the next week's set and rep targets.
type VolumePlan struct {
	CurrentVolume int     `json:"current_volume"`
	Sets          int     `json:"sets"`
	Reps          int     `json:"reps"`
	NewVolume     int     `json:"new_volume"`
	ChangePercent float64 `json:"change_percent"`
	Deload        bool    `json:"deload"`
	Notes         string  `json:"notes"`
	Week          int     `json:"week"`
}

// ProgressVolume plans the next week's volume: reps advance first up
// to the switchover point, then a set is added and reps reset. Every
// deload-frequency-th week cuts volume for recovery.
func ProgressVolume(sets, reps int, strategy Strategy, week int) (VolumePlan, error) {
	if sets <= 0 || reps <= 0 || week <= 0 {
		return VolumePlan{}, fmt.Errorf("%w: sets %d, reps %d, week %d", ErrBadVolume, sets, reps, week)
	}
	band, ok := strategyTable[strategy]
	if !ok {
		band = strategyTable[StrategyLinear]
	}

	deload := week%band.deloadFrequency == 0
	var newSets, newReps int
	var notes string
	switch {
	case deload:
		newSets = maxInt(1, int(math.Round(float64(sets)*deloadFactor)))
		newReps = maxInt(deloadRepFloor, int(math.Round(float64(reps)*deloadFactor)))
		notes = "Deload week - reduce volume for recovery"
	case reps < repSwitchover:
		newSets = sets
		newReps = minInt(repCeiling, reps+1)
		notes = fmt.Sprintf("Increase reps by 1 (%.1f%% volume increase)", band.weeklyIncrease)
	default:
		newSets = sets + 1
		newReps = maxInt(repFloor, reps-2)
		notes = fmt.Sprintf("Add 1 set, reset reps (%.1f%% volume increase)", band.weeklyIncrease)
	}

	current := sets * reps
	next := newSets * newReps
	return VolumePlan{
		CurrentVolume: current,
		Sets:          newSets,
		Reps:          newReps,
		NewVolume:     next,
		ChangePercent: round1(float64(next-current) / float64(current) * 100),
		Deload:        deload,
		Notes:         notes,
		Week:          week,
	}, nil
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
