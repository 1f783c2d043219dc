package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "uv_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for the UV pipeline.
type Metrics struct {
	// Upstream feed.
	FeedFetches      *prometheus.CounterVec // labels: year={current,previous}, outcome={ok,error,too_small}
	FeedFallbacks    prometheus.Counter
	UpstreamDuration *prometheus.HistogramVec // labels: target={feed,stations}

	// Parsing and aggregation.
	ParseAttempts  *prometheus.CounterVec // labels: delimiter, outcome={success,failure}
	RowsAccepted   prometheus.Counter
	RowsRejected   *prometheus.CounterVec // labels: reason
	HourlyRecords  prometheus.Counter
	MockResults    *prometheus.CounterVec // labels: class={unavailable,no_data,unparseable,error}
	LoadDuration   prometheus.Histogram
	LastSuccessful prometheus.Gauge

	// Caches and station directory.
	CacheLookups  *prometheus.CounterVec // labels: result={hit,miss}
	StationFetch  *prometheus.CounterVec // labels: outcome={success,error,empty}
	StationsKnown prometheus.Gauge

	// Optional sink.
	MessagesProduced prometheus.Counter
	SinkErrors       prometheus.Counter
	SinkEnabled      prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_fetches_total",
			Help:      "Measurement file downloads by year and outcome.",
		}, []string{"year", "outcome"}),
		FeedFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_fallbacks_total",
			Help:      "Times the previous year's file was used.",
		}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream HTTP request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"target"}),
		ParseAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_attempts_total",
			Help:      "Feed parse attempts by delimiter and outcome.",
		}, []string{"delimiter", "outcome"}),
		RowsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_accepted_total",
			Help:      "Feed rows that passed validation.",
		}),
		RowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_rejected_total",
			Help:      "Feed rows dropped during validation, by reason.",
		}, []string{"reason"}),
		HourlyRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hourly_records_total",
			Help:      "Hourly station records produced by aggregation.",
		}),
		MockResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mock_results_total",
			Help:      "Synthetic results served, by cause.",
		}, []string{"class"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of an uncached fetch-parse-aggregate cycle.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		LastSuccessful: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last load that produced real data.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by result.",
		}, []string{"result"}),
		StationFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "station_fetches_total",
			Help:      "Station directory fetches by outcome.",
		}, []string{"outcome"}),
		StationsKnown: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stations_known",
			Help:      "Stations in the cached directory.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Hourly records written to the sink topic.",
		}),
		SinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Failed sink writes.",
		}),
		SinkEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sink_enabled",
			Help:      "1 when the Kafka sink is enabled, 0 otherwise.",
		}),
	}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.FeedFetches,
		m.FeedFallbacks,
		m.UpstreamDuration,
		m.ParseAttempts,
		m.RowsAccepted,
		m.RowsRejected,
		m.HourlyRecords,
		m.MockResults,
		m.LoadDuration,
		m.LastSuccessful,
		m.CacheLookups,
		m.StationFetch,
		m.StationsKnown,
		m.MessagesProduced,
		m.SinkErrors,
		m.SinkEnabled,
	}
}
