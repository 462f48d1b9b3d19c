package progression_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/dmjdxb/Rehab/internal/domain/progression"
)

func TestEstimateOneRM(t *testing.T) {
	Convey("Given a submaximal set of 100 for 5", t, func() {
		Convey("When estimated with Epley", func() {
			est, err := progression.EstimateOneRM(100, 5, progression.FormulaEpley)

			Convey("Then the estimate is 116.7", func() {
				So(err, ShouldBeNil)
				So(est, ShouldEqual, 116.7)
			})
		})

		Convey("When estimated with Brzycki", func() {
			est, err := progression.EstimateOneRM(100, 5, progression.FormulaBrzycki)

			Convey("Then the estimate is 112.5", func() {
				So(err, ShouldBeNil)
				So(est, ShouldEqual, 112.5)
			})
		})

		Convey("When no formula is named", func() {
			est, err := progression.EstimateOneRM(100, 5, "")

			Convey("Then Epley is the default", func() {
				So(err, ShouldBeNil)
				So(est, ShouldEqual, 116.7)
			})
		})
	})

	Convey("Given a single-rep set", t, func() {
		est, err := progression.EstimateOneRM(140, 1, progression.FormulaLombardi)

		Convey("Then the weight is the estimate", func() {
			So(err, ShouldBeNil)
			So(est, ShouldEqual, 140.0)
		})
	})

	Convey("Given bad input", t, func() {
		Convey("When the weight is zero", func() {
			_, err := progression.EstimateOneRM(0, 5, progression.FormulaEpley)
			So(errors.Is(err, progression.ErrBadLift), ShouldBeTrue)
		})

		Convey("When the rep count is past the estimation range", func() {
			_, err := progression.EstimateOneRM(100, 31, progression.FormulaEpley)
			So(errors.Is(err, progression.ErrBadLift), ShouldBeTrue)
		})

		Convey("When the formula is unknown", func() {
			_, err := progression.EstimateOneRM(100, 5, progression.Formula("oconner"))
			So(errors.Is(err, progression.ErrUnknownFormula), ShouldBeTrue)
		})
	})
}

func TestPrescribeLoads(t *testing.T) {
	Convey("Given an estimated 1RM of 100", t, func() {
		Convey("When prescribing for strength", func() {
			rx, err := progression.PrescribeLoads(100, progression.GoalStrength)

			Convey("Then the band is 85-100% of 1RM", func() {
				So(err, ShouldBeNil)
				So(rx.LoadRange.Min, ShouldEqual, 85.0)
				So(rx.LoadRange.Max, ShouldEqual, 100.0)
				So(rx.Reps.Max, ShouldEqual, 6)
				So(rx.Rest, ShouldEqual, "3-5 minutes")
			})
		})

		Convey("When the goal is unknown", func() {
			rx, err := progression.PrescribeLoads(100, progression.Goal("bulking"))

			Convey("Then the conservative early-rehab band applies", func() {
				So(err, ShouldBeNil)
				So(rx.Goal, ShouldEqual, progression.GoalRehabEarly)
				So(rx.LoadRange.Min, ShouldEqual, 40.0)
				So(rx.LoadRange.Max, ShouldEqual, 60.0)
			})
		})

		Convey("When the 1RM is not positive", func() {
			_, err := progression.PrescribeLoads(0, progression.GoalStrength)
			So(errors.Is(err, progression.ErrBadLift), ShouldBeTrue)
		})
	})
}

func TestAdjustByRPE(t *testing.T) {
	Convey("Given 100 lifted at RPE 8", t, func() {
		Convey("When targeting RPE 9 on a compound lift", func() {
			adj, err := progression.AdjustByRPE(100, 8, 9, progression.KindCompound)

			Convey("Then the load climbs to 106.8", func() {
				So(err, ShouldBeNil)
				So(adj.EstimatedOneRM, ShouldEqual, 113.6)
				So(adj.RecommendedWeight, ShouldEqual, 106.8)
				So(adj.PercentChange, ShouldEqual, 6.8)
				So(adj.Notes, ShouldEqual, "Appropriate progression - advance when ready")
			})
		})

		Convey("When targeting a lower RPE", func() {
			adj, err := progression.AdjustByRPE(100, 8, 7, progression.KindCompound)

			Convey("Then a deload is recommended", func() {
				So(err, ShouldBeNil)
				So(adj.RecommendedWeight, ShouldBeLessThan, 100.0)
				So(adj.Notes, ShouldStartWith, "Deload recommended")
			})
		})

		Convey("When the RPE is off the half-step scale", func() {
			_, err := progression.AdjustByRPE(100, 7.2, 9, progression.KindCompound)
			So(errors.Is(err, progression.ErrBadRPE), ShouldBeTrue)
		})
	})
}

func TestProgressVolume(t *testing.T) {
	Convey("Given a 3x10 scheme on linear progression", t, func() {
		Convey("When planning week 1", func() {
			plan, err := progression.ProgressVolume(3, 10, progression.StrategyLinear, 1)

			Convey("Then a rep is added", func() {
				So(err, ShouldBeNil)
				So(plan.Sets, ShouldEqual, 3)
				So(plan.Reps, ShouldEqual, 11)
				So(plan.Deload, ShouldBeFalse)
			})
		})

		Convey("When planning week 4", func() {
			plan, err := progression.ProgressVolume(3, 10, progression.StrategyLinear, 4)

			Convey("Then the week is a deload", func() {
				So(err, ShouldBeNil)
				So(plan.Deload, ShouldBeTrue)
				So(plan.Sets, ShouldEqual, 2)
				So(plan.Reps, ShouldEqual, 6)
				So(plan.ChangePercent, ShouldEqual, -60.0)
			})
		})
	})

	Convey("Given the rep ceiling has been reached", t, func() {
		plan, err := progression.ProgressVolume(3, 12, progression.StrategyStepLoading, 1)

		Convey("Then a set is added and reps reset", func() {
			So(err, ShouldBeNil)
			So(plan.Sets, ShouldEqual, 4)
			So(plan.Reps, ShouldEqual, 10)
		})
	})

	Convey("Given bad input", t, func() {
		_, err := progression.ProgressVolume(0, 10, progression.StrategyLinear, 1)
		So(errors.Is(err, progression.ErrBadVolume), ShouldBeTrue)
	})
}
