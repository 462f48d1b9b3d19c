// Package recommend maps a rehabilitation phase to exercise guidance
// and ranks catalog exercises for it.
package recommend

import (
	"context"
	"sort"

	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

// Guidance is the per-phase focus sheet shown alongside specific
// exercises.
type Guidance struct {
	Focus []string `json:"focus"`
	Types []string `json:"exercise_types"`
	Avoid []string `json:"avoid"`
}

// ForPhase returns the focus sheet for a phase. Unknown phases get the
// Early sheet, the most conservative option.
func ForPhase(phase types.Phase) Guidance {
	sheets := map[types.Phase]Guidance{
		types.PhaseEarly: {
			Focus: []string{"Pain management", "Range of motion", "Basic strengthening"},
			Types: []string{"Mobility", "Isometric", "Light Strength"},
			Avoid: []string{"Plyometric", "High-intensity movements"},
		},
		types.PhaseMid: {
			Focus: []string{"Progressive strengthening", "Functional movement", "Endurance"},
			Types: []string{"Strength", "Mobility", "Neuromuscular"},
			Avoid: []string{"High-impact plyometrics"},
		},
		types.PhaseLate: {
			Focus: []string{"Sport-specific strength", "Power development", "Movement quality"},
			Types: []string{"Strength", "Plyometric", "Neuromuscular"},
			Avoid: []string{"Excessive volume without recovery"},
		},
		types.PhaseReturnToSport: {
			Focus: []string{"Sport-specific training", "Reactive strength", "Competition prep"},
			Types: []string{"Plyometric", "Neuromuscular", "Sport-specific"},
			Avoid: []string{"Deconditioning"},
		},
	}
	if g, ok := sheets[phase]; ok {
		return g
	}
	return sheets[types.PhaseEarly]
}

// CatalogSearcher is the slice of the exercise catalog this package
// needs.
type CatalogSearcher interface {
	Search(ctx context.Context, injury types.InjuryType, phase types.Phase, exerciseType, query string) ([]model.Exercise, error)
}

// Recommendation is the guidance sheet plus ranked catalog exercises.
type Recommendation struct {
	Injury    types.InjuryType `json:"injury"`
	Phase     types.Phase      `json:"phase"`
	Guidance  Guidance         `json:"guidance"`
	Exercises []model.Exercise `json:"exercises"`
}

// Build assembles a recommendation for an injury and phase. Exercises
// matching both injury and phase come first; when the catalog has none,
// the phase match alone is used so the clinician still gets options.
// Results are ranked by how early the exercise type appears in the
// phase's recommended type list, then capped at n.
func Build(ctx context.Context, catalog CatalogSearcher, injury types.InjuryType, phase types.Phase, n int) (Recommendation, error) {
	g := ForPhase(phase)

	exercises, err := catalog.Search(ctx, injury, phase, "", "")
	if err != nil {
		return Recommendation{}, err
	}
	if len(exercises) == 0 {
		exercises, err = catalog.Search(ctx, "", phase, "", "")
		if err != nil {
			return Recommendation{}, err
		}
	}

	priority := func(exerciseType string) int {
		for i, t := range g.Types {
			if t == exerciseType {
				return i
			}
		}
		return len(g.Types)
	}
	sort.SliceStable(exercises, func(i, j int) bool {
		return priority(exercises[i].Type) < priority(exercises[j].Type)
	})
	if n > 0 && len(exercises) > n {
		exercises = exercises[:n]
	}

	return Recommendation{
		Injury:    injury,
		Phase:     phase,
		Guidance:  g,
		Exercises: exercises,
	}, nil
}
