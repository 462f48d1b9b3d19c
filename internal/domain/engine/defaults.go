package engine

import (
	"fmt"

	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// gatePoints is one progression boundary: the maximum tolerable pain and
// the minimum LSI/RFD required to sit above that boundary.
type gatePoints struct {
	lsi  float64
	rfd  float64
	pain int
}

// standardTable builds the four-phase table used by every supported
// injury: Return to Sport, Late and Mid are gated on the three
// progression boundaries, Early is the unconditional catch-all. Gates
// are declared most advanced first; that declaration order is the
// priority order used for tie-breaking.
func standardTable(injury types.InjuryType, earlyToMid, midToLate, lateToRTS gatePoints) Table {
	rfdFloor := lateToRTS.rfd - 5
	return Table{
		Injury: injury,
		Gates: []PhaseGate{
			{Phase: types.PhaseReturnToSport, MaxPain: intp(lateToRTS.pain), MinLSI: floatp(lateToRTS.lsi), MinRFD: floatp(lateToRTS.rfd)},
			{Phase: types.PhaseLate, MaxPain: intp(midToLate.pain), MinLSI: floatp(midToLate.lsi), MinRFD: floatp(midToLate.rfd)},
			{Phase: types.PhaseMid, MaxPain: intp(earlyToMid.pain), MinLSI: floatp(earlyToMid.lsi), MinRFD: floatp(earlyToMid.rfd)},
			{Phase: types.PhaseEarly, Unconditional: true},
		},
		Alerts: []AlertRule{
			{
				Code:     "severe_pain",
				Severity: types.SeverityCritical,
				Message:  "Severe pain reported during testing; reassess before loading further.",
				MinPain:  intp(7),
			},
			{
				Code:     "high_pain_low_symmetry",
				Severity: types.SeverityCritical,
				Message:  "High pain combined with a large limb asymmetry; urgent clinical review recommended.",
				MinPain:  intp(7),
				MaxLSI:   floatp(70),
			},
			{
				Code:     "reinjury_risk",
				Severity: types.SeverityWarning,
				Message:  "LSI below 90% increases re-injury risk; consider additional strengthening.",
				MaxLSI:   floatp(90),
			},
			{
				Code:     "persistent_pain",
				Severity: types.SeverityInfo,
				Message:  "Persistent pain during testing; monitor and review at the next session.",
				MinPain:  intp(3),
				MaxPain:  intp(7),
			},
			{
				Code:     "low_rfd",
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("RFD below the %s floor of %.0f%%; prioritise explosive strength development.", injury, rfdFloor),
				MaxRFD:   floatp(rfdFloor),
			},
		},
	}
}

// DefaultTables returns the built-in threshold configuration for all
// supported injury types. The progression boundaries carry over from the
// clinic's evidence-based worksheet; confirm against current literature
// before adjusting.
func DefaultTables() map[types.InjuryType]Table {
	build := func(e2m, m2l, l2r gatePoints) func(types.InjuryType) Table {
		return func(it types.InjuryType) Table { return standardTable(it, e2m, m2l, l2r) }
	}

	specs := map[types.InjuryType]func(types.InjuryType) Table{
		types.InjuryACL:               build(gatePoints{70, 60, 4}, gatePoints{85, 80, 2}, gatePoints{90, 90, 1}),
		types.InjuryAchilles:          build(gatePoints{65, 50, 5}, gatePoints{80, 75, 3}, gatePoints{90, 85, 1}),
		types.InjuryHamstring:         build(gatePoints{75, 65, 4}, gatePoints{85, 80, 2}, gatePoints{90, 90, 1}),
		types.InjuryPatellarTendon:    build(gatePoints{70, 55, 4}, gatePoints{85, 75, 2}, gatePoints{90, 85, 1}),
		types.InjuryRotatorCuff:       build(gatePoints{65, 50, 5}, gatePoints{80, 70, 3}, gatePoints{85, 80, 1}),
		types.InjuryGroin:             build(gatePoints{70, 60, 4}, gatePoints{85, 80, 2}, gatePoints{90, 85, 1}),
		types.InjuryProximalHamstring: build(gatePoints{70, 60, 5}, gatePoints{80, 75, 3}, gatePoints{90, 85, 1}),
		types.InjuryATFL:              build(gatePoints{75, 65, 4}, gatePoints{85, 80, 2}, gatePoints{90, 90, 1}),
	}

	tables := make(map[types.InjuryType]Table, len(specs))
	for injury, buildTable := range specs {
		tables[injury] = buildTable(injury)
	}
	return tables
}
