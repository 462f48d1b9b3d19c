package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/dmjdxb/Rehab/internal/adapters/repository"
	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

func TestCSVExerciseCatalog(t *testing.T) {
	Convey("Given a catalog with a handful of exercises", t, func() {
		path := filepath.Join(t.TempDir(), "exercises.csv")
		cat, err := repository.NewCSVExerciseCatalog(path)
		So(err, ShouldBeNil)
		ctx := context.Background()

		seed := []model.Exercise{
			{Injury: types.InjuryACL, Phase: types.PhaseEarly, Name: "Quad Sets", Type: "Isometric", Goal: "Quad activation", Equipment: "None", DateAdded: "2026-01-10"},
			{Injury: types.InjuryACL, Phase: types.PhaseLate, Name: "Single Leg Box Jump", Type: "Plyometric", Goal: "Reactive strength", Equipment: "Plyo box", DateAdded: "2026-01-11"},
			{Injury: types.InjuryAchilles, Phase: types.PhaseMid, Name: "Eccentric Heel Drop", Type: "Strength", Goal: "Tendon loading", Equipment: "Step", DateAdded: "2026-01-12"},
			{Injury: types.InjuryAchilles, Phase: types.PhaseEarly, Name: "Seated Calf Raise", Type: "Isometric", Goal: "Early calf loading", Equipment: "Machine", DateAdded: "2026-01-13"},
		}
		for _, e := range seed {
			So(cat.Add(ctx, e), ShouldBeNil)
		}

		Convey("When filtering by injury", func() {
			got, err := cat.Search(ctx, types.InjuryACL, "", "", "")
			So(err, ShouldBeNil)

			Convey("Then only that injury's exercises return", func() {
				So(len(got), ShouldEqual, 2)
				for _, e := range got {
					So(e.Injury, ShouldEqual, types.InjuryACL)
				}
			})
		})

		Convey("When filtering by injury and phase", func() {
			got, err := cat.Search(ctx, types.InjuryACL, types.PhaseLate, "", "")
			So(err, ShouldBeNil)

			Convey("Then the filter conjunction applies", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0].Name, ShouldEqual, "Single Leg Box Jump")
			})
		})

		Convey("When filtering by exercise type", func() {
			got, err := cat.Search(ctx, "", "", "isometric", "")
			So(err, ShouldBeNil)

			Convey("Then the type match is case-insensitive", func() {
				So(len(got), ShouldEqual, 2)
			})
		})

		Convey("When searching free text", func() {
			got, err := cat.Search(ctx, "", "", "", "tendon")
			So(err, ShouldBeNil)

			Convey("Then name, goal and equipment are all searched", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0].Name, ShouldEqual, "Eccentric Heel Drop")
			})
		})

		Convey("When nothing matches", func() {
			got, err := cat.Search(ctx, types.InjuryGroin, "", "", "")
			So(err, ShouldBeNil)

			Convey("Then an empty, non-nil slice returns", func() {
				So(got, ShouldNotBeNil)
				So(len(got), ShouldEqual, 0)
			})
		})

		Convey("When counting", func() {
			n, err := cat.Count(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 4)
		})
	})
}
