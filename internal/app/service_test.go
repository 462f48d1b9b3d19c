package service_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	app "github.com/dmjdxb/Rehab/internal/app"
	"github.com/dmjdxb/Rehab/internal/domain/engine"
	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/progression"
	"github.com/dmjdxb/Rehab/internal/domain/rts"
	"github.com/dmjdxb/Rehab/internal/domain/safety"
	"github.com/dmjdxb/Rehab/internal/domain/screening"
	"github.com/dmjdxb/Rehab/internal/domain/types"
	"github.com/dmjdxb/Rehab/pkg/logger"
)

func newTestService(t *testing.T) *app.Service {
	t.Helper()
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	return app.New(
		app.WithSessionPath(filepath.Join(dir, "sessions.csv")),
		app.WithPatientPath(filepath.Join(dir, "patients.csv")),
		app.WithExercisePath(filepath.Join(dir, "exercises.csv")),
	)
}

func goodMetrics() engine.RawMetrics {
	return engine.RawMetrics{LSI: "92", RFD: "91", PainScore: "1"}
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given an unstarted service", t, func() {
		svc := newTestService(t)

		Convey("When used before Start", func() {
			_, err := svc.Sessions(context.Background(), "", 0)

			Convey("Then the not-started kind is returned", func() {
				So(errors.Is(err, app.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When started twice", func() {
			ctx := context.Background()
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then the second start is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})
}

func TestServiceSessions(t *testing.T) {
	Convey("Given a started service with a registered patient", t, func() {
		svc := newTestService(t)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		p, err := svc.AddPatient(ctx, model.Patient{
			ID:          "p-1",
			FirstName:   "Jon",
			LastName:    "Reyes",
			DateOfBirth: "1998-11-23",
			Injury:      types.InjuryACL,
		})
		So(err, ShouldBeNil)
		So(p.CurrentPhase, ShouldEqual, types.PhaseUnclassified)

		Convey("When a session is recorded", func() {
			rec, err := svc.RecordSession(ctx, "p-1", types.InjuryACL, goodMetrics(), "cleared hop testing")
			So(err, ShouldBeNil)

			Convey("Then the record carries the evaluation outcome", func() {
				So(rec.ID, ShouldNotBeEmpty)
				So(rec.Phase, ShouldEqual, types.PhaseReturnToSport)
				So(len(rec.Alerts), ShouldEqual, 0)
				So(rec.Notes, ShouldEqual, "cleared hop testing")
			})

			Convey("And the session is persisted", func() {
				got, err := svc.Sessions(ctx, "p-1", 0)
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].ID, ShouldEqual, rec.ID)
			})

			Convey("And the patient's current phase follows", func() {
				got, err := svc.Patient(ctx, "p-1")
				So(err, ShouldBeNil)
				So(got.CurrentPhase, ShouldEqual, types.PhaseReturnToSport)
			})
		})

		Convey("When recording for an unregistered patient", func() {
			rec, err := svc.RecordSession(ctx, "walk-in-7", types.InjuryAchilles, engine.RawMetrics{LSI: "60", RFD: "45", PainScore: "6"}, "")

			Convey("Then the session is still logged", func() {
				So(err, ShouldBeNil)
				So(rec.Phase, ShouldEqual, types.PhaseEarly)

				got, err := svc.Sessions(ctx, "walk-in-7", 0)
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
			})
		})

		Convey("When the metrics are invalid", func() {
			_, err := svc.RecordSession(ctx, "p-1", types.InjuryACL, engine.RawMetrics{PainScore: "eleven"}, "")

			Convey("Then a validation error surfaces and nothing is logged", func() {
				var verr *engine.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)

				got, err := svc.Sessions(ctx, "p-1", 0)
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 0)
			})
		})

		Convey("When recording an unsupported injury", func() {
			_, err := svc.RecordSession(ctx, "p-1", types.InjuryType("Elbow"), goodMetrics(), "")

			Convey("Then the unsupported kind surfaces and nothing is logged", func() {
				So(errors.Is(err, engine.ErrUnsupportedInjury), ShouldBeTrue)

				got, err := svc.Sessions(ctx, "p-1", 0)
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 0)
			})
		})

		Convey("When evaluating without recording", func() {
			res, err := svc.Evaluate(ctx, types.InjuryACL, goodMetrics())
			So(err, ShouldBeNil)

			Convey("Then the outcome matches a recorded evaluation but persists nothing", func() {
				So(res.Phase, ShouldEqual, types.PhaseReturnToSport)
				got, err := svc.Sessions(ctx, "", 0)
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 0)
			})
		})

		Convey("When exporting the history", func() {
			_, err := svc.RecordSession(ctx, "p-1", types.InjuryACL, goodMetrics(), "")
			So(err, ShouldBeNil)

			var buf bytes.Buffer
			So(svc.ExportSessions(ctx, &buf, ""), ShouldBeNil)

			Convey("Then a non-empty workbook is produced", func() {
				So(buf.Len(), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestServiceCatalogAndAssessments(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newTestService(t)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When exercises are added and recommended", func() {
			So(svc.AddExercise(ctx, model.Exercise{
				Injury: types.InjuryACL, Phase: types.PhaseLate,
				Name: "Depth Jump", Type: "Plyometric", Goal: "Reactive strength",
			}), ShouldBeNil)
			So(svc.AddExercise(ctx, model.Exercise{
				Injury: types.InjuryACL, Phase: types.PhaseLate,
				Name: "Back Squat", Type: "Strength", Goal: "Limb strength",
			}), ShouldBeNil)

			rec, err := svc.Recommendations(ctx, types.InjuryACL, types.PhaseLate, 5)
			So(err, ShouldBeNil)

			Convey("Then catalog entries come back ranked for the phase", func() {
				So(len(rec.Exercises), ShouldEqual, 2)
				So(rec.Exercises[0].Name, ShouldEqual, "Back Squat")
			})
		})

		Convey("When recommending for a bogus phase", func() {
			_, err := svc.Recommendations(ctx, types.InjuryACL, types.Phase("Intermediate"), 5)

			Convey("Then the unknown-phase kind is returned", func() {
				So(errors.Is(err, app.ErrUnknownPhase), ShouldBeTrue)
			})
		})

		Convey("When screening a questionnaire", func() {
			a := svc.Screen(ctx, screening.Input{Age: 55, NewOnsetPain: true})

			Convey("Then the assessment reflects the systemic flag", func() {
				So(a.RiskLevel, ShouldEqual, screening.RiskModerate)
			})
		})

		Convey("When scoring a return-to-sport battery", func() {
			a := svc.ScoreRTS(ctx, types.InjuryACL, rts.LevelRecreational, rts.BatteryInput{
				SingleHop: rts.TestInput{Injured: 148, Uninjured: 150},
			})

			Convey("Then the battery is scored", func() {
				So(len(a.Tests), ShouldEqual, 1)
				So(a.Tests[0].Passed, ShouldBeTrue)
			})
		})

		Convey("When checking exercise safety", func() {
			a := svc.CheckSafety(ctx, safety.Profile{Fever: true},
				safety.ExerciseContext{Name: "Walking", Type: "endurance"},
				safety.InjuryContext{Injury: types.InjuryACL, Phase: types.PhaseMid})

			Convey("Then the absolute block surfaces", func() {
				So(a.Level, ShouldEqual, safety.LevelUnsafe)
				So(a.ExerciseCleared, ShouldBeFalse)
			})
		})

		Convey("When prescribing loads from a submaximal set", func() {
			rx, err := svc.PrescribeLoad(ctx, 100, 5, progression.FormulaEpley, progression.GoalStrength)

			Convey("Then the band is anchored to the estimated 1RM", func() {
				So(err, ShouldBeNil)
				So(rx.OneRM, ShouldEqual, 116.7)
				So(rx.LoadRange.Min, ShouldEqual, 99.2)
				So(rx.LoadRange.Max, ShouldEqual, 116.7)
			})
		})

		Convey("When adjusting load by RPE", func() {
			adj, err := svc.AdjustLoad(ctx, 100, 8, 9, progression.KindCompound)

			Convey("Then the recommended weight climbs", func() {
				So(err, ShouldBeNil)
				So(adj.RecommendedWeight, ShouldEqual, 106.8)
			})
		})

		Convey("When planning a deload week", func() {
			plan, err := svc.PlanVolume(ctx, 3, 10, progression.StrategyLinear, 4)

			Convey("Then volume is cut for recovery", func() {
				So(err, ShouldBeNil)
				So(plan.Deload, ShouldBeTrue)
				So(plan.Sets, ShouldEqual, 2)
				So(plan.Reps, ShouldEqual, 6)
			})
		})

		Convey("When asking for stats", func() {
			stats := svc.GetStats()

			Convey("Then the store counts are present", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["totalSessions"], ShouldEqual, 0)
				So(stats["totalPatients"], ShouldEqual, 0)
				So(stats["supportedInjuries"], ShouldEqual, 8)
			})
		})
	})
}
