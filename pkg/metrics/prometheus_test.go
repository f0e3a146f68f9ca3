package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/lumora/skillsense/pkg/metrics"
)

func gatherNames(registry *prometheus.Registry) map[string]struct{} {
	families, err := registry.Gather()
	So(err, ShouldBeNil)
	names := make(map[string]struct{}, len(families))
	for _, f := range families {
		names[f.GetName()] = struct{}{}
	}
	return names
}

func TestManagerRegistration(t *testing.T) {
	Convey("Given a manager with an isolated registry", t, func() {
		registry := prometheus.NewRegistry()
		metrics.NewManager(metrics.WithPrometheusRegistry(registry))

		names := gatherNames(registry)

		Convey("Then the analysis pipeline metrics are registered", func() {
			So(names, ShouldContainKey, "skillsense_analytics_sessions_recorded_total")
			So(names, ShouldContainKey, "skillsense_analytics_analyses_completed_total")
			So(names, ShouldContainKey, "skillsense_analytics_analysis_latency_milliseconds")
			So(names, ShouldContainKey, "skillsense_analytics_trend_latency_milliseconds")
			So(names, ShouldContainKey, "skillsense_analytics_queue_size")
		})

		Convey("Then the latency histogram carries the millisecond layout", func() {
			families, err := registry.Gather()
			So(err, ShouldBeNil)

			var bounds []float64
			for _, f := range families {
				if f.GetName() != "skillsense_analytics_analysis_latency_milliseconds" {
					continue
				}
				for _, b := range f.GetMetric()[0].GetHistogram().GetBucket() {
					bounds = append(bounds, b.GetUpperBound())
				}
			}
			So(bounds, ShouldNotBeEmpty)
			So(bounds[0], ShouldEqual, 0.5)
			So(bounds[len(bounds)-1], ShouldEqual, 5000)
		})
	})

	Convey("Given a manager with a custom namespace", t, func() {
		registry := prometheus.NewRegistry()
		metrics.NewManager(
			metrics.WithPrometheusRegistry(registry),
			metrics.WithNamespace("sandbox"),
		)

		names := gatherNames(registry)
		So(names, ShouldContainKey, "sandbox_analytics_sessions_recorded_total")
	})
}

func TestGlobalRegistry(t *testing.T) {
	Convey("Given the package-level registry", t, func() {
		registry := metrics.GetRegistry()
		So(registry, ShouldNotBeNil)

		metrics.RecordSessionRecorded()
		metrics.RecordAnalysisLatency(12)
		metrics.UpdateQueueSize(3)

		names := gatherNames(registry)
		So(names, ShouldContainKey, "skillsense_analytics_sessions_recorded_total")
	})
}
