package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh and action outcomes used as metric labels.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeStale   = "stale"
	OutcomePreview = "preview"
	OutcomeBlocked = "blocked"
)

// Metrics groups the dashboard's Prometheus collectors. A nil *Metrics is
// valid and records nothing, which keeps tests free of registry setup.
type Metrics struct {
	registry      *prometheus.Registry
	apiDuration   *prometheus.HistogramVec
	apiErrors     *prometheus.CounterVec
	refreshTotal  *prometheus.CounterVec
	actionsTotal  *prometheus.CounterVec
	streamClients prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tempmon_backend_request_duration_seconds",
			Help:    "Histogram of backend API request durations by endpoint.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		apiErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tempmon_backend_request_errors_total",
			Help: "Total backend API request failures by endpoint and class.",
		}, []string{"endpoint", "class"}),
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tempmon_refresh_cycles_total",
			Help: "Dashboard refresh cycles by outcome.",
		}, []string{"outcome"}),
		actionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tempmon_form_actions_total",
			Help: "Admin form actions by action name and outcome.",
		}, []string{"action", "outcome"}),
		streamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tempmon_stream_clients",
			Help: "Currently connected live-refresh WebSocket clients.",
		}),
	}

	m.registry.MustRegister(
		m.apiDuration,
		m.apiErrors,
		m.refreshTotal,
		m.actionsTotal,
		m.streamClients,
	)
	return m
}

// Handler exposes the collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAPI(endpoint string, d time.Duration) {
	if m == nil {
		return
	}
	m.apiDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (m *Metrics) APIError(endpoint, class string) {
	if m == nil {
		return
	}
	m.apiErrors.WithLabelValues(endpoint, class).Inc()
}

func (m *Metrics) Refresh(outcome string) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Action(name, outcome string) {
	if m == nil {
		return
	}
	m.actionsTotal.WithLabelValues(name, outcome).Inc()
}

func (m *Metrics) StreamOpened() {
	if m == nil {
		return
	}
	m.streamClients.Inc()
}

func (m *Metrics) StreamClosed() {
	if m == nil {
		return
	}
	m.streamClients.Dec()
}
