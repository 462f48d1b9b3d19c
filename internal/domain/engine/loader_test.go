package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/dmjdxb/Rehab/internal/domain/engine"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

func writeThresholds(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTables(t *testing.T) {
	Convey("Given a threshold file overriding one injury", t, func() {
		path := writeThresholds(t, `
tables:
  ACL:
    gates:
      - phase: Late
        max_pain: 2
        min_lsi: 80
      - phase: Early
        unconditional: true
    alerts:
      - code: custom_alert
        severity: warning
        message: custom message
        max_lsi: 75
`)

		Convey("When loaded", func() {
			tables, err := engine.LoadTables(context.Background(), path)
			So(err, ShouldBeNil)

			Convey("Then the overridden injury uses the file's table wholesale", func() {
				acl := tables[types.InjuryACL]
				So(acl.Phases(), ShouldResemble, []types.Phase{types.PhaseLate, types.PhaseEarly})
				So(len(acl.Alerts), ShouldEqual, 1)
				So(acl.Alerts[0].Code, ShouldEqual, "custom_alert")
			})

			Convey("And untouched injuries keep the built-in defaults", func() {
				achilles := tables[types.InjuryAchilles]
				So(len(achilles.Gates), ShouldEqual, 4)
				So(achilles.Phases()[0], ShouldEqual, types.PhaseReturnToSport)
			})

			Convey("And an engine built on them honours the override", func() {
				eng, err := engine.New(engine.WithTables(tables))
				So(err, ShouldBeNil)
				res, err := eng.Evaluate(context.Background(), types.InjuryACL, metricsWith(85, 0, 1))
				So(err, ShouldBeNil)
				So(res.Phase, ShouldEqual, types.PhaseLate)
			})
		})
	})

	Convey("Given a threshold file naming an unknown injury", t, func() {
		path := writeThresholds(t, `
tables:
  Elbow:
    gates:
      - phase: Early
        unconditional: true
`)

		Convey("When loaded", func() {
			_, err := engine.LoadTables(context.Background(), path)

			Convey("Then loading fails with a malformed-table error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown injury type")
			})
		})
	})

	Convey("Given a threshold file with an unknown phase label", t, func() {
		path := writeThresholds(t, `
tables:
  ACL:
    gates:
      - phase: Intermediate
`)

		Convey("When loaded", func() {
			_, err := engine.LoadTables(context.Background(), path)

			Convey("Then loading fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown phase")
			})
		})
	})

	Convey("Given a missing file", t, func() {
		Convey("When loaded", func() {
			_, err := engine.LoadTables(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))

			Convey("Then loading fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
