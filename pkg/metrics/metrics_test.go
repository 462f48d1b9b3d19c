package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When created on a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it registers without panicking", func() {
				So(manager, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When created with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("clinic"),
				WithSubsystem("rehab"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When the package-level recorders run", func() {
			RecordSessionRecorded()
			RecordEvaluation("Return to Sport")
			RecordAlert("critical")
			RecordEvaluationLatency(1.5)
			RecordValidationFailure()
			RecordUnsupportedInjury()
			RecordExport()
			UpdateTotalPatients(3)
			UpdateTotalSessions(12)
			UpdateTotalExercises(40)
			RecordHTTPRequest("sessions", "POST", "201")
			RecordHTTPRequestDuration("sessions", "POST", "201", 4.2)

			Convey("Then the custom registry gathers them", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["rehab_tracker_sessions_recorded_total"], ShouldBeTrue)
				So(names["rehab_tracker_evaluations_total"], ShouldBeTrue)
				So(names["rehab_tracker_alerts_total"], ShouldBeTrue)
				So(names["rehab_tracker_http_requests_total"], ShouldBeTrue)
			})
		})
	})
}
