package repository_test

import (
	"bytes"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/dmjdxb/Rehab/internal/adapters/repository"
	"github.com/dmjdxb/Rehab/internal/domain/model"
)

func TestWriteSessionsXLSX(t *testing.T) {
	Convey("Given two recorded sessions", t, func() {
		sessions := []model.SessionRecord{
			sampleSession("s-1", "p-1", time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)),
			sampleSession("s-2", "p-2", time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC)),
		}

		Convey("When exported", func() {
			var buf bytes.Buffer
			So(repository.WriteSessionsXLSX(&buf, sessions), ShouldBeNil)

			Convey("Then the workbook opens and carries header plus data rows", func() {
				f, err := excelize.OpenReader(&buf)
				So(err, ShouldBeNil)
				defer f.Close()

				rows, err := f.GetRows("Sessions")
				So(err, ShouldBeNil)
				So(len(rows), ShouldEqual, 3)
				So(rows[0][0], ShouldEqual, "Timestamp")
				So(rows[0][1], ShouldEqual, "SessionID")
				So(rows[1][1], ShouldEqual, "s-1")
				So(rows[2][2], ShouldEqual, "p-2")
			})
		})

		Convey("When exporting an empty history", func() {
			var buf bytes.Buffer
			So(repository.WriteSessionsXLSX(&buf, nil), ShouldBeNil)

			Convey("Then the workbook still has the header row", func() {
				f, err := excelize.OpenReader(&buf)
				So(err, ShouldBeNil)
				defer f.Close()

				rows, err := f.GetRows("Sessions")
				So(err, ShouldBeNil)
				So(len(rows), ShouldEqual, 1)
			})
		})
	})
}
