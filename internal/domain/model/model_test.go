package model_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/dmjdxb/Rehab/internal/domain/model"
)

func TestPatientAge(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	Convey("Given a patient with a parseable date of birth", t, func() {
		p := model.Patient{DateOfBirth: "1998-11-23"}

		Convey("Then the age counts whole years only", func() {
			So(p.Age(now), ShouldEqual, 27)
			afterBirthday := time.Date(2026, 11, 24, 0, 0, 0, 0, time.UTC)
			So(p.Age(afterBirthday), ShouldEqual, 28)
		})
	})

	Convey("Given an unparseable or future date of birth", t, func() {
		Convey("Then the age is zero", func() {
			So(model.Patient{DateOfBirth: "23/11/1998"}.Age(now), ShouldEqual, 0)
			So(model.Patient{DateOfBirth: "2030-01-01"}.Age(now), ShouldEqual, 0)
		})
	})
}
