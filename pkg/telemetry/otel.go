package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/htmlkit/pkg/html"
)

// Default tracer name.
const defaultTracerName = "htmlkit"

// TracerConfig configures the OpenTelemetry tracer.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "htmlkit").
	TracerName string

	// Provider is the tracer provider. Defaults to the global provider.
	Provider trace.TracerProvider

	// Metrics, when set, also records every render.
	Metrics *Metrics

	// RenderOptions are passed to html.Render.
	RenderOptions []html.Option
}

// TracerOption configures the tracer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracerOption {
	return func(c *TracerConfig) {
		c.Provider = tp
	}
}

// WithMetrics records renders in m as well.
func WithMetrics(m *Metrics) TracerOption {
	return func(c *TracerConfig) {
		c.Metrics = m
	}
}

// WithRenderOptions sets the options passed to html.Render.
func WithRenderOptions(opts ...html.Option) TracerOption {
	return func(c *TracerConfig) {
		c.RenderOptions = opts
	}
}

// Tracer wraps rendering and request handling in spans.
//
// Configure the global provider in main() before use:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
type Tracer struct {
	config TracerConfig
	tracer trace.Tracer
}

// NewTracer creates a tracer.
func NewTracer(opts ...TracerOption) *Tracer {
	config := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	tp := config.Provider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{config: config, tracer: tp.Tracer(config.TracerName)}
}

// Render renders n inside a "htmlkit.render <kind>" span.
func (t *Tracer) Render(ctx context.Context, kind string, n html.Node, attrs ...attribute.KeyValue) (string, error) {
	attrs = append([]attribute.KeyValue{attribute.String("htmlkit.kind", kind)}, attrs...)
	_, span := t.tracer.Start(ctx, fmt.Sprintf("htmlkit.render %s", kind),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	start := time.Now()
	out, err := html.Render(n, t.config.RenderOptions...)
	if t.config.Metrics != nil {
		t.config.Metrics.ObserveRender(kind, time.Since(start), err)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return out, err
	}
	span.SetAttributes(attribute.Int("htmlkit.bytes", len(out)))
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// Middleware starts a server span for every request.
func (t *Tracer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := t.tracer.Start(r.Context(), fmt.Sprintf("htmlkit %s %s", r.Method, r.URL.Path),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(ctx))

		span.SetAttributes(
			attribute.String("http.route", routePattern(r)),
			attribute.Int("http.status_code", sw.status),
		)
		if sw.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(sw.status))
		}
	})
}

// SpanFromContext returns the current span, which is a no-op span when
// none is recording.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}
