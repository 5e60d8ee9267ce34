package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "playground"

// Recorder owns a private Prometheus registry. A nil *Recorder is valid and
// records nothing, so callers never need to guard.
type Recorder struct {
	registry      *prometheus.Registry
	computations  *prometheus.HistogramVec
	computeErrors *prometheus.CounterVec
	warnings      *prometheus.CounterVec
	shortfalls    *prometheus.CounterVec
	requests      *prometheus.HistogramVec
	rateLimited   prometheus.Counter
	publishes     *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		computations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "standings_computation_seconds",
			Help:      "Time spent running a standings computation on a loaded snapshot.",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		computeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "standings_computation_errors_total",
			Help:      "Standings computations that returned an error.",
		}, []string{"operation"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "standings_data_warnings_total",
			Help:      "Data inconsistencies the engine worked around, by kind.",
		}, []string{"kind"}),
		shortfalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "qualification_shortfalls_total",
			Help:      "Qualification quotas that could not be filled, by bucket.",
		}, []string{"bucket"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_rate_limited_total",
			Help:      "Requests rejected by the per-IP rate limiter.",
		}),
		publishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "published_documents_total",
			Help:      "Documents uploaded to object storage, by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		r.computations,
		r.computeErrors,
		r.warnings,
		r.shortfalls,
		r.requests,
		r.rateLimited,
		r.publishes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) ObserveComputation(operation string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.computations.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		r.computeErrors.WithLabelValues(operation).Inc()
	}
}

func (r *Recorder) AddWarning(kind string) {
	if r == nil {
		return
	}
	r.warnings.WithLabelValues(kind).Inc()
}

func (r *Recorder) AddShortfall(bucket string) {
	if r == nil {
		return
	}
	r.shortfalls.WithLabelValues(bucket).Inc()
}

func (r *Recorder) ObserveRequest(method, route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (r *Recorder) RateLimited() {
	if r == nil {
		return
	}
	r.rateLimited.Inc()
}

func (r *Recorder) Published(err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.publishes.WithLabelValues(outcome).Inc()
}

// WatchWebSocketClients registers a gauge that reads the live client count on scrape.
func (r *Recorder) WatchWebSocketClients(count func() int) {
	if r == nil {
		return
	}
	r.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_clients",
		Help:      "Connected live-update clients across all playground rooms.",
	}, func() float64 { return float64(count()) }))
}
