package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/dmjdxb/Rehab/internal/adapters/repository"
	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

func TestCSVPatientRegistry(t *testing.T) {
	Convey("Given a fresh patient registry", t, func() {
		path := filepath.Join(t.TempDir(), "patients.csv")
		reg, err := repository.NewCSVPatientRegistry(path)
		So(err, ShouldBeNil)
		ctx := context.Background()

		p := model.Patient{
			ID:           "p-1",
			FirstName:    "Maya",
			LastName:     "Okafor",
			DateOfBirth:  "1994-06-02",
			Sex:          "F",
			Injury:       types.InjuryACL,
			CurrentPhase: types.PhaseUnclassified,
			LastUpdated:  time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		}

		Convey("When a patient is registered", func() {
			So(reg.Add(ctx, p), ShouldBeNil)

			Convey("Then Get returns the stored row", func() {
				got, err := reg.Get(ctx, "p-1")
				So(err, ShouldBeNil)
				So(got.FirstName, ShouldEqual, "Maya")
				So(got.Injury, ShouldEqual, types.InjuryACL)
				So(got.CurrentPhase, ShouldEqual, types.PhaseUnclassified)
				So(got.LastUpdated.Equal(p.LastUpdated), ShouldBeTrue)
			})

			Convey("And re-registering the same ID is rejected", func() {
				err := reg.Add(ctx, p)
				So(errors.Is(err, repository.ErrDuplicateID), ShouldBeTrue)
			})

			Convey("And List includes the patient", func() {
				got, err := reg.List(ctx)
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
			})
		})

		Convey("When the current phase is updated", func() {
			at := time.Date(2026, 2, 3, 14, 30, 0, 0, time.UTC)
			So(reg.Add(ctx, p), ShouldBeNil)
			So(reg.UpdatePhase(ctx, "p-1", types.PhaseMid, at), ShouldBeNil)

			Convey("Then the new phase and the given timestamp are persisted", func() {
				got, err := reg.Get(ctx, "p-1")
				So(err, ShouldBeNil)
				So(got.CurrentPhase, ShouldEqual, types.PhaseMid)
				So(got.LastUpdated.Equal(at), ShouldBeTrue)
			})

			Convey("And other rows are untouched", func() {
				other := p
				other.ID = "p-2"
				So(reg.Add(ctx, other), ShouldBeNil)
				So(reg.UpdatePhase(ctx, "p-1", types.PhaseLate, at), ShouldBeNil)

				got, err := reg.Get(ctx, "p-2")
				So(err, ShouldBeNil)
				So(got.CurrentPhase, ShouldEqual, types.PhaseUnclassified)
			})
		})

		Convey("When looking up an unknown ID", func() {
			_, err := reg.Get(ctx, "missing")

			Convey("Then the not-found kind is returned", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When updating an unknown ID", func() {
			err := reg.UpdatePhase(ctx, "missing", types.PhaseMid, time.Now())

			Convey("Then the not-found kind is returned", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}
