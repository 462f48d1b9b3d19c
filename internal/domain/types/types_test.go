package types_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/dmjdxb/Rehab/internal/domain/types"
)

func TestParseInjuryType(t *testing.T) {
	Convey("Given the supported injury set", t, func() {
		Convey("Then every listed injury parses back to itself", func() {
			for _, it := range types.InjuryTypes() {
				parsed, ok := types.ParseInjuryType(string(it))
				So(ok, ShouldBeTrue)
				So(parsed, ShouldEqual, it)
			}
		})

		Convey("And unknown or differently-cased names are rejected", func() {
			for _, s := range []string{"", "acl", "Elbow", "ACL "} {
				_, ok := types.ParseInjuryType(s)
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestParsePhase(t *testing.T) {
	Convey("Given the phase labels", t, func() {
		Convey("Then each known label parses", func() {
			for _, p := range []types.Phase{
				types.PhaseUnclassified,
				types.PhaseEarly,
				types.PhaseMid,
				types.PhaseLate,
				types.PhaseReturnToSport,
			} {
				parsed, ok := types.ParsePhase(string(p))
				So(ok, ShouldBeTrue)
				So(parsed, ShouldEqual, p)
			}
		})

		Convey("And anything else is rejected", func() {
			_, ok := types.ParsePhase("Intermediate")
			So(ok, ShouldBeFalse)
		})
	})
}
