package screening_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/dmjdxb/Rehab/internal/domain/screening"
)

func TestAssess(t *testing.T) {
	now := time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC)

	Convey("Given a clean questionnaire", t, func() {
		in := screening.Input{Age: 30, Region: screening.RegionKnee}

		Convey("When assessed", func() {
			a := screening.Assess(in, now)

			Convey("Then the risk is minimal with no referral", func() {
				So(a.RiskLevel, ShouldEqual, screening.RiskMinimal)
				So(a.ImmediateReferral, ShouldBeFalse)
				So(a.RedFlags, ShouldBeEmpty)
				So(a.YellowFlags, ShouldBeEmpty)
				So(a.Recommendations, ShouldBeEmpty)
				So(a.AssessedAt.Equal(now), ShouldBeTrue)
			})
		})
	})

	Convey("Given cauda equina indicators on a spinal complaint", t, func() {
		in := screening.Input{
			Age:                35,
			Region:             screening.RegionSpine,
			BladderDysfunction: true,
			SaddleAnesthesia:   true,
		}

		Convey("When assessed", func() {
			a := screening.Assess(in, now)

			Convey("Then the outcome is an emergency with immediate referral", func() {
				So(a.RiskLevel, ShouldEqual, screening.RiskEmergency)
				So(a.ImmediateReferral, ShouldBeTrue)
				So(len(a.RedFlags), ShouldEqual, 2)
				So(a.Recommendations[0].Priority, ShouldEqual, "IMMEDIATE")
			})
		})
	})

	Convey("Given two high-severity systemic findings", t, func() {
		in := screening.Input{
			Age:                   55,
			Region:                screening.RegionShoulder,
			NewOnsetPain:          true,
			UnexplainedWeightLoss: true,
		}

		Convey("When assessed", func() {
			a := screening.Assess(in, now)

			Convey("Then the risk is high", func() {
				So(a.RiskLevel, ShouldEqual, screening.RiskHigh)
				So(a.ImmediateReferral, ShouldBeTrue)
			})
		})
	})

	Convey("Given a single high flag", t, func() {
		in := screening.Input{Age: 28, Region: screening.RegionAnkle, OttawaAnklePositive: true}

		Convey("When assessed", func() {
			a := screening.Assess(in, now)

			Convey("Then the risk is moderate", func() {
				So(a.RiskLevel, ShouldEqual, screening.RiskModerate)
			})
		})
	})

	Convey("Given only psychosocial flags", t, func() {
		Convey("When one yellow flag is present", func() {
			a := screening.Assess(screening.Input{Age: 40, FearAvoidanceHigh: true}, now)

			Convey("Then the risk is low with a preventive recommendation", func() {
				So(a.RiskLevel, ShouldEqual, screening.RiskLow)
				So(a.ImmediateReferral, ShouldBeFalse)
				So(len(a.Recommendations), ShouldEqual, 1)
				So(a.Recommendations[0].Priority, ShouldEqual, "PREVENTIVE")
			})
		})

		Convey("When three yellow flags stack up", func() {
			a := screening.Assess(screening.Input{
				Age:                40,
				JobDissatisfaction: true,
				DepressionPositive: true,
				PoorSocialSupport:  true,
			}, now)

			Convey("Then the risk climbs to moderate", func() {
				So(a.RiskLevel, ShouldEqual, screening.RiskModerate)
				So(len(a.YellowFlags), ShouldEqual, 3)
			})
		})
	})

	Convey("Given region-specific findings outside the complaint region", t, func() {
		in := screening.Input{Age: 30, Region: screening.RegionKnee, OttawaAnklePositive: true}

		Convey("When assessed", func() {
			a := screening.Assess(in, now)

			Convey("Then they are not counted", func() {
				So(a.RedFlags, ShouldBeEmpty)
				So(a.RiskLevel, ShouldEqual, screening.RiskMinimal)
			})
		})
	})

	Convey("Given knee vascular compromise", t, func() {
		in := screening.Input{Age: 25, Region: screening.RegionKnee, ColdLimb: true}

		Convey("When assessed", func() {
			a := screening.Assess(in, now)

			Convey("Then it is graded an emergency", func() {
				So(a.RiskLevel, ShouldEqual, screening.RiskEmergency)
				So(a.RedFlags[0].Severity, ShouldEqual, screening.SeverityEmergency)
			})
		})
	})
}
