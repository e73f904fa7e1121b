// Package metrics provides Prometheus metrics for the league statistics service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultSampleInterval = 10 * time.Second
)

// refresh builds take milliseconds to seconds; HTTP reads are sub-millisecond
var defaultLatencyBuckets = []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000} //nolint:gochecknoglobals // bucket layout

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	sampleInterval   time.Duration
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Refresh pipeline
	refreshes         *prometheus.CounterVec
	refreshErrors     prometheus.Counter
	refreshCoalesced  prometheus.Counter
	refreshLatency    prometheus.Histogram
	recordsIngested   *prometheus.CounterVec
	duplicateRows     prometheus.Counter
	entitiesMerged    *prometheus.GaugeVec
	aliasFolds        *prometheus.CounterVec
	standingsComputed prometheus.Counter
	leaguesServed     prometheus.Gauge
	snapshotLastUnix  *prometheus.GaugeVec

	// Queue and workers
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	workerCount   prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     prometheus.Counter

	errorsByComponent *prometheus.CounterVec

	// Runtime
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "swish",
		subsystem:        "stats",
		histogramBuckets: defaultLatencyBuckets,
		enabled:          true,
		sampleInterval:   defaultSampleInterval,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// Enabled reports whether recording is switched on.
func (m *Manager) Enabled() bool { return m.enabled }

// SampleInterval is how often runtime gauges should be sampled.
func (m *Manager) SampleInterval() time.Duration { return m.sampleInterval }

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.refreshes = auto.NewCounterVec(
		m.counterOpts("refreshes_total", "Total number of league refreshes by outcome"),
		[]string{"outcome"},
	)
	m.refreshErrors = auto.NewCounter(m.counterOpts("refresh_errors_total", "Total number of failed league refreshes"))
	m.refreshCoalesced = auto.NewCounter(m.counterOpts("refresh_coalesced_total", "Refresh requests folded into an already pending refresh"))
	m.refreshLatency = auto.NewHistogram(m.histogramOpts("refresh_latency_milliseconds", "League refresh latency in milliseconds"))
	m.recordsIngested = auto.NewCounterVec(
		m.counterOpts("records_ingested_total", "Raw stat rows read from the data store"),
		[]string{"kind"},
	)
	m.duplicateRows = auto.NewCounter(m.counterOpts("duplicate_rows_total", "Raw rows dropped as exact duplicates"))
	m.entitiesMerged = auto.NewGaugeVec(
		m.gaugeOpts("entities", "Canonical entities in the latest snapshot by kind"),
		[]string{"league", "kind"},
	)
	m.aliasFolds = auto.NewCounterVec(
		m.counterOpts("alias_folds_total", "Source spellings folded into an existing entity"),
		[]string{"kind"},
	)
	m.standingsComputed = auto.NewCounter(m.counterOpts("standings_computed_total", "Standings tables computed"))
	m.leaguesServed = auto.NewGauge(m.gaugeOpts("leagues", "Leagues with a published snapshot"))
	m.snapshotLastUnix = auto.NewGaugeVec(
		m.gaugeOpts("snapshot_last_unix", "Unix timestamp of the last published snapshot"),
		[]string{"league"},
	)

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Current size of the refresh queue"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum refresh queue capacity"))
	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Current number of refresh workers"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRateLimited = auto.NewCounter(m.counterOpts("http_rate_limited_total", "Requests rejected by the rate limiter"))

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
}

// RecordRefresh counts a finished refresh and its latency.
func RecordRefresh(outcome string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.refreshes.WithLabelValues(outcome).Inc()
	globalManager.refreshLatency.Observe(latencyMs)
}

// RecordRefreshError increments the failed refresh counter.
func RecordRefreshError() {
	if !globalManager.enabled {
		return
	}
	globalManager.refreshErrors.Inc()
}

// RecordRefreshCoalesced increments the coalesced refresh counter.
func RecordRefreshCoalesced() {
	if !globalManager.enabled {
		return
	}
	globalManager.refreshCoalesced.Inc()
}

// RecordRecordsIngested adds n raw rows of the given kind (player, team, schedule).
func RecordRecordsIngested(kind string, n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.recordsIngested.WithLabelValues(kind).Add(float64(n))
}

// RecordDuplicateRows adds n dropped duplicate rows.
func RecordDuplicateRows(n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.duplicateRows.Add(float64(n))
}

// UpdateEntities sets the entity count of a league snapshot.
func UpdateEntities(league, kind string, n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.entitiesMerged.WithLabelValues(league, kind).Set(float64(n))
}

// RecordAliasFolds adds n folded spellings for kind.
func RecordAliasFolds(kind string, n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.aliasFolds.WithLabelValues(kind).Add(float64(n))
}

// RecordStandingsComputed counts n computed standings tables.
func RecordStandingsComputed(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.standingsComputed.Add(float64(n))
}

// UpdateLeagues sets the number of leagues with a snapshot.
func UpdateLeagues(n int) {
	globalManager.leaguesServed.Set(float64(n))
}

// UpdateSnapshotTime records when a league snapshot was published.
func UpdateSnapshotTime(league string, at time.Time) {
	globalManager.snapshotLastUnix.WithLabelValues(league).Set(float64(at.Unix()))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request rejected by the limiter.
func RecordRateLimited() {
	globalManager.httpRateLimited.Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// SetEnabled switches recording of pipeline counters on or off.
func SetEnabled(enabled bool) {
	globalManager.enabled = enabled
}

// SampleInterval is the global manager's runtime sampling interval.
func SampleInterval() time.Duration {
	return globalManager.sampleInterval
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
