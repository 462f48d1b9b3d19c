package repository_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/dmjdxb/Rehab/internal/adapters/repository"
	"github.com/dmjdxb/Rehab/internal/domain/model"
	"github.com/dmjdxb/Rehab/internal/domain/types"
)

func sampleSession(id, patientID string, ts time.Time) model.SessionRecord {
	days := 90
	return model.SessionRecord{
		ID:        id,
		PatientID: patientID,
		Timestamp: ts,
		Injury:    types.InjuryACL,
		Metrics: model.ClinicalMetrics{
			PeakForce:        540.5,
			LeftLimb:         450,
			RightLimb:        500,
			LSI:              90,
			RFD:              82.5,
			PainScore:        2,
			DaysSinceSurgery: &days,
		},
		Phase: types.PhaseLate,
		Alerts: []types.Alert{
			{Code: "reinjury_risk", Severity: types.SeverityWarning, Message: "LSI below 90%"},
		},
		Notes: "steady progress, knee quiet",
	}
}

func TestCSVSessionLog(t *testing.T) {
	Convey("Given a fresh session log", t, func() {
		path := filepath.Join(t.TempDir(), "sessions.csv")
		log, err := repository.NewCSVSessionLog(path)
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When a session is appended and read back", func() {
			rec := sampleSession("s-1", "p-1", time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))
			So(log.Append(ctx, rec), ShouldBeNil)

			got, err := log.List(ctx, "", 0)
			So(err, ShouldBeNil)

			Convey("Then the roundtrip preserves every field", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0].ID, ShouldEqual, "s-1")
				So(got[0].PatientID, ShouldEqual, "p-1")
				So(got[0].Injury, ShouldEqual, types.InjuryACL)
				So(got[0].Phase, ShouldEqual, types.PhaseLate)
				So(got[0].Metrics.LSI, ShouldEqual, 90.0)
				So(got[0].Metrics.RFD, ShouldEqual, 82.5)
				So(got[0].Metrics.PainScore, ShouldEqual, 2)
				So(*got[0].Metrics.DaysSinceSurgery, ShouldEqual, 90)
				So(got[0].Metrics.RangeOfMotion, ShouldBeNil)
				So(got[0].Alerts, ShouldResemble, rec.Alerts)
				So(got[0].Notes, ShouldEqual, rec.Notes)
			})
		})

		Convey("When sessions for several patients accumulate", func() {
			base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
			for i, pid := range []string{"p-1", "p-2", "p-1", "p-1"} {
				rec := sampleSession(fmt.Sprintf("s-%d", i), pid, base.Add(time.Duration(i)*time.Hour))
				So(log.Append(ctx, rec), ShouldBeNil)
			}

			Convey("Then the patient filter narrows the listing", func() {
				got, err := log.List(ctx, "p-1", 0)
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 3)
				for _, rec := range got {
					So(rec.PatientID, ShouldEqual, "p-1")
				}
			})

			Convey("And the limit keeps the most recent rows", func() {
				got, err := log.List(ctx, "p-1", 2)
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 2)
				So(got[1].Timestamp.After(got[0].Timestamp), ShouldBeTrue)
			})

			Convey("And Count sees every row", func() {
				n, err := log.Count(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 4)
			})
		})

		Convey("When the log is reopened", func() {
			So(log.Append(ctx, sampleSession("s-1", "p-1", time.Now().UTC())), ShouldBeNil)

			reopened, err := repository.NewCSVSessionLog(path)
			So(err, ShouldBeNil)

			Convey("Then existing rows survive", func() {
				n, err := reopened.Count(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When a session has no alerts", func() {
			rec := sampleSession("s-2", "p-9", time.Now().UTC())
			rec.Alerts = []types.Alert{}
			So(log.Append(ctx, rec), ShouldBeNil)

			got, err := log.List(ctx, "p-9", 0)
			So(err, ShouldBeNil)

			Convey("Then it reads back with an empty alert slice", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0].Alerts, ShouldResemble, []types.Alert{})
			})
		})
	})
}
