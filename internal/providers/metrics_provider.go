package providers

import (
	"time"

	"dbpd/internal/models"
	"dbpd/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncEvaluationsTotal()
	IncSuppressionsTotal(reason string)
	IncPresentationsTotal(variant string, outcome string)
	ObservePersistenceDuration(duration time.Duration)
	ObserveStatusProbeDuration(duration time.Duration)
	IncStatusProbeFailures()
	SetDefaultBrowser(isDefault bool)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	evaluationsTotal    prometheus.Counter
	suppressionsTotal   *prometheus.CounterVec
	presentationsTotal  *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	statusProbeDuration prometheus.Histogram
	statusProbeFailures prometheus.Counter
	defaultBrowser      prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncEvaluationsTotal() {
	m.evaluationsTotal.Inc()
}

func (m *MetricsProvider) IncSuppressionsTotal(reason string) {
	m.suppressionsTotal.WithLabelValues(reason).Inc()
}

func (m *MetricsProvider) IncPresentationsTotal(variant string, outcome string) {
	m.presentationsTotal.WithLabelValues(variant, outcome).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObserveStatusProbeDuration(duration time.Duration) {
	m.statusProbeDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStatusProbeFailures() {
	m.statusProbeFailures.Inc()
}

func (m *MetricsProvider) SetDefaultBrowser(isDefault bool) {
	if isDefault {
		m.defaultBrowser.Set(1)
	} else {
		m.defaultBrowser.Set(0)
	}
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, store *models.StateStore) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dbpd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dbpd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dbpd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dbpd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		evaluationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dbpd_evaluations_total",
			Help: "Total number of finished prompt evaluation cycles",
		}),

		suppressionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dbpd_suppressions_total",
			Help: "Evaluations that decided against showing a prompt, by reason",
		}, []string{"reason"}),

		presentationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dbpd_presentations_total",
			Help: "Completed prompt presentations by variant and outcome",
		}, []string{"variant", "outcome"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dbpd_persistence_duration_seconds",
			Help:    "Duration of state persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		statusProbeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dbpd_status_probe_duration_seconds",
			Help:    "Duration of default-browser probes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		statusProbeFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dbpd_status_probe_failures_total",
			Help: "Total number of failed default-browser probes",
		}),

		defaultBrowser: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "dbpd_default_browser",
			Help: "1 when the browser is currently the OS default, 0 otherwise",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "dbpd_active_days",
		Help: "Distinct calendar days with recorded browser activity",
	}, func() float64 {
		return float64(store.ActiveDays())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "dbpd_prompts_shown",
		Help: "Lifetime count of completed prompt presentations",
	}, func() float64 {
		return float64(store.TimesShown())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncEvaluationsTotal()                             {}
func (n *noopMetrics) IncSuppressionsTotal(_ string)                    {}
func (n *noopMetrics) IncPresentationsTotal(_ string, _ string)         {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) ObserveStatusProbeDuration(_ time.Duration)       {}
func (n *noopMetrics) IncStatusProbeFailures()                          {}
func (n *noopMetrics) SetDefaultBrowser(_ bool)                         {}
