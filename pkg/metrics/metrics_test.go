package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then defaults apply", func() {
				So(m, ShouldNotBeNil)
				So(m.Enabled(), ShouldBeTrue)
				So(m.SampleInterval(), ShouldEqual, defaultSampleInterval)
				So(m.namespace, ShouldEqual, "swish")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithLatencyBuckets([]float64{1, 5, 10}),
				WithMetricsEnabled(false),
				WithSampleInterval(5*time.Second),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(m.Enabled(), ShouldBeFalse)
				So(m.SampleInterval(), ShouldEqual, 5*time.Second)
				So(m.histogramBuckets, ShouldResemble, []float64{1, 5, 10})

				m.standingsComputed.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_standings_computed_total")
			})
		})

		Convey("When zero values are passed", func() {
			m := NewManager(
				WithNamespace(""),
				WithLatencyBuckets(nil),
				WithSampleInterval(0),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the defaults are kept", func() {
				So(m.namespace, ShouldEqual, "swish")
				So(m.histogramBuckets, ShouldResemble, defaultLatencyBuckets)
				So(m.SampleInterval(), ShouldEqual, defaultSampleInterval)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		SetEnabled(true)

		Convey("When recording refreshes", func() {
			before := value(globalManager.refreshes.WithLabelValues("ok"))
			RecordRefresh("ok", 12.5)
			RecordRefresh("ok", 3)

			Convey("Then the outcome counter grows", func() {
				So(value(globalManager.refreshes.WithLabelValues("ok")), ShouldEqual, before+2)
			})
		})

		Convey("When recording ingestion and folding", func() {
			before := value(globalManager.recordsIngested.WithLabelValues("player"))
			RecordRecordsIngested("player", 40)
			RecordDuplicateRows(0)
			RecordAliasFolds("player", 3)
			UpdateEntities("l-1", "player", 12)

			Convey("Then counters and gauges reflect the values", func() {
				So(value(globalManager.recordsIngested.WithLabelValues("player")), ShouldEqual, before+40)
				So(value(globalManager.entitiesMerged.WithLabelValues("l-1", "player")), ShouldEqual, 12)
			})
		})

		Convey("When recording is disabled", func() {
			SetEnabled(false)
			defer SetEnabled(true)
			before := value(globalManager.refreshErrors)
			RecordRefreshError()

			Convey("Then pipeline counters are untouched", func() {
				So(value(globalManager.refreshErrors), ShouldEqual, before)
			})
		})

		Convey("When recording operational metrics", func() {
			So(func() {
				UpdateQueueSize(3)
				UpdateQueueCapacity(64)
				UpdateWorkerCount(2)
				UpdateLeagues(1)
				UpdateSnapshotTime("l-1", time.Now())
				RecordHTTPRequest("/leagues/{leagueID}/players", "GET", "200")
				RecordHTTPRequestDuration("/leagues/{leagueID}/players", "GET", "200", 1.2)
				RecordRateLimited()
				RecordErrorByComponent("datastore", "not_found")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
			}, ShouldNotPanic)
			So(value(globalManager.queueCapacity), ShouldEqual, 64)
		})

		Convey("Then the custom registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
			So(SampleInterval(), ShouldEqual, defaultSampleInterval)
		})
	})
}

func value(c prometheus.Metric) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return -1
	}
	if m.Counter != nil {
		return m.GetCounter().GetValue()
	}
	return m.GetGauge().GetValue()
}
