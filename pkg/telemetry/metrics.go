package telemetry

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/decorator"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "htmlkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "htmlkit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics collects Prometheus metrics for rendering, decoration and form
// submissions. It implements decorator.Observer.
//
// Metrics collected:
//   - htmlkit_renders_total: renders by kind and status
//   - htmlkit_render_duration_seconds: render duration by kind
//   - htmlkit_decorations_total: decorator steps by decorator and outcome
//   - htmlkit_decoration_duration_seconds: decorator step duration
//   - htmlkit_submissions_total: handled submissions by form and validity
//   - htmlkit_http_requests_total: requests by route and status code
//   - htmlkit_http_request_duration_seconds: request duration by route
type Metrics struct {
	rendersTotal       *prometheus.CounterVec
	renderDuration     *prometheus.HistogramVec
	decorationsTotal   *prometheus.CounterVec
	decorationDuration *prometheus.HistogramVec
	submissionsTotal   *prometheus.CounterVec
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
}

// NewMetrics registers the metrics with the configured registry. Registering
// twice with the same registry panics, like promauto does.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of rendered node trees",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		decorationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "decorations_total",
			Help:        "Total number of decorator steps",
			ConstLabels: config.ConstLabels,
		}, []string{"decorator", "outcome"}),

		decorationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "decoration_duration_seconds",
			Help:        "Decorator step duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"decorator"}),

		submissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "submissions_total",
			Help:        "Total number of handled form submissions",
			ConstLabels: config.ConstLabels,
		}, []string{"form", "valid"}),

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),
	}
}

// ObserveDecorator implements decorator.Observer.
func (m *Metrics) ObserveDecorator(e decorator.Event) {
	outcome := "applied"
	switch {
	case e.Err != nil:
		outcome = "error"
	case e.Skipped:
		outcome = "skipped"
	}
	m.decorationsTotal.WithLabelValues(e.Decorator, outcome).Inc()
	if !e.Skipped {
		m.decorationDuration.WithLabelValues(e.Decorator).Observe(e.Duration.Seconds())
	}
}

// ObserveRender records one render of the given kind.
func (m *Metrics) ObserveRender(kind string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = categorizeError(err)
	}
	m.rendersTotal.WithLabelValues(kind, status).Inc()
	m.renderDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// ObserveSubmission records a handled submission.
func (m *Metrics) ObserveSubmission(form string, valid bool) {
	m.submissionsTotal.WithLabelValues(form, strconv.FormatBool(valid)).Inc()
}

// Middleware records request counts and durations by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := routePattern(r)
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
	})
}

// categorizeError maps an error to its kind, keeping label cardinality low.
func categorizeError(err error) string {
	var he *herrors.Error
	if errors.As(err, &he) && he.Kind != "" {
		return string(he.Kind)
	}
	return "internal"
}

// routePattern returns the matched chi pattern, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
