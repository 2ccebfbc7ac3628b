package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	tradesLogged      *prometheus.CounterVec
	warningsRaised    *prometheus.CounterVec
	alertsFired       *prometheus.CounterVec
	recomputeCycles   prometheus.Counter
	recomputeDuration prometheus.Histogram
	snapshotsTotal    *prometheus.CounterVec
	phasesActive      prometheus.Gauge
	accountEquity     prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.tradesLogged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipdeck_trades_logged_total",
			Help: "Total number of trades logged",
		},
		[]string{"result"},
	)
	r.warningsRaised = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipdeck_risk_warnings_total",
			Help: "Total number of risk warnings raised",
		},
		[]string{"scope"},
	)
	r.alertsFired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipdeck_alerts_fired_total",
			Help: "Total number of alerts fired",
		},
		[]string{"severity"},
	)
	r.recomputeCycles = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "flipdeck_recompute_cycles_total",
			Help: "Total number of analytics recompute cycles",
		},
	)
	r.recomputeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flipdeck_recompute_duration_seconds",
			Help:    "Analytics recompute duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.snapshotsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flipdeck_snapshots_total",
			Help: "Total number of journal snapshots written",
		},
		[]string{"status"},
	)
	r.phasesActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "flipdeck_phases_active",
			Help: "Number of active phases",
		},
	)
	r.accountEquity = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "flipdeck_account_equity",
			Help: "Current equity of the active phase",
		},
	)

	reg.MustRegister(r.tradesLogged)
	reg.MustRegister(r.warningsRaised)
	reg.MustRegister(r.alertsFired)
	reg.MustRegister(r.recomputeCycles)
	reg.MustRegister(r.recomputeDuration)
	reg.MustRegister(r.snapshotsTotal)
	reg.MustRegister(r.phasesActive)
	reg.MustRegister(r.accountEquity)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordTrade records a logged trade. Result is "win", "loss" or
// "breakeven".
func (r *Registry) RecordTrade(result string) {
	r.tradesLogged.WithLabelValues(result).Inc()
}

// RecordWarnings records raised risk warnings for a scope ("trade" or
// "phase").
func (r *Registry) RecordWarnings(scope string, count int) {
	if count > 0 {
		r.warningsRaised.WithLabelValues(scope).Add(float64(count))
	}
}

// RecordAlert records a fired alert by severity.
func (r *Registry) RecordAlert(severity string) {
	r.alertsFired.WithLabelValues(severity).Inc()
}

// RecordRecompute records an analytics recompute cycle.
func (r *Registry) RecordRecompute(duration float64) {
	r.recomputeCycles.Inc()
	r.recomputeDuration.Observe(duration)
}

// RecordSnapshot records a snapshot attempt.
func (r *Registry) RecordSnapshot(status string) {
	r.snapshotsTotal.WithLabelValues(status).Inc()
}

// SetPhasesActive sets the active phase count.
func (r *Registry) SetPhasesActive(count int) {
	r.phasesActive.Set(float64(count))
}

// SetAccountEquity sets the active phase equity gauge.
func (r *Registry) SetAccountEquity(equity float64) {
	r.accountEquity.Set(equity)
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
