// Package server serves form definitions over HTTP.
//
// Every request builds a fresh form from its definition:
//
//	GET  /forms           names of the defined forms (JSON)
//	GET  /forms/{name}    the rendered form
//	POST /forms/{name}    validate a submission; the form with errors, or the accepted values
//	GET  /healthz         liveness
//	GET  /metrics         Prometheus metrics, when enabled
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace/noop"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/internal/logging"
	"github.com/vango-dev/htmlkit/pkg/form"
	"github.com/vango-dev/htmlkit/pkg/formdef"
	"github.com/vango-dev/htmlkit/pkg/html"
	"github.com/vango-dev/htmlkit/pkg/telemetry"
)

// Default timeouts.
const (
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
)

// Server serves a set of form definitions.
type Server struct {
	addr       string
	logger     *slog.Logger
	renderOpts []html.Option
	buildOpts  []formdef.BuildOption

	mu    sync.RWMutex
	forms map[string]*formdef.Definition

	registry   *prometheus.Registry
	metrics    *telemetry.Metrics
	tracing    bool
	tracerOpts []telemetry.TracerOption
	tracer     *telemetry.Tracer

	router     chi.Router
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithAddress sets the listen address. Defaults to localhost:8080.
func WithAddress(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithRenderOptions sets the options used to render pages.
func WithRenderOptions(opts ...html.Option) Option {
	return func(s *Server) { s.renderOpts = append([]html.Option(nil), opts...) }
}

// WithBuildOptions sets the options used to build forms from definitions.
func WithBuildOptions(opts ...formdef.BuildOption) Option {
	return func(s *Server) { s.buildOpts = append([]formdef.BuildOption(nil), opts...) }
}

// WithMetrics enables Prometheus metrics registered with reg and served on
// /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithTracing wraps requests and renders in OpenTelemetry spans.
func WithTracing(opts ...telemetry.TracerOption) Option {
	return func(s *Server) {
		s.tracing = true
		s.tracerOpts = append([]telemetry.TracerOption(nil), opts...)
	}
}

// New creates a server for the given definitions.
func New(forms map[string]*formdef.Definition, opts ...Option) *Server {
	s := &Server{addr: "localhost:8080", forms: forms}
	for _, opt := range opts {
		opt(s)
	}
	if s.forms == nil {
		s.forms = make(map[string]*formdef.Definition)
	}
	s.logger = logging.OrDefault(s.logger)
	if s.registry != nil {
		s.metrics = telemetry.NewMetrics(telemetry.WithRegistry(s.registry))
		s.buildOpts = append(s.buildOpts, formdef.WithObserver(s.metrics))
	}
	s.buildOpts = append(s.buildOpts, formdef.WithLogger(s.logger))
	tracerOpts := []telemetry.TracerOption{
		telemetry.WithMetrics(s.metrics),
		telemetry.WithRenderOptions(s.renderOpts...),
	}
	if !s.tracing {
		tracerOpts = append(tracerOpts, telemetry.WithTracerProvider(noop.NewTracerProvider()))
	}
	s.tracer = telemetry.NewTracer(append(tracerOpts, s.tracerOpts...)...)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}
	if s.tracing {
		r.Use(s.tracer.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	r.Route("/forms", func(r chi.Router) {
		r.Get("/", s.listForms)
		r.Get("/{name}", s.showForm)
		r.Post("/{name}", s.submitForm)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// SetForms replaces the served definitions.
func (s *Server) SetForms(forms map[string]*formdef.Definition) {
	s.mu.Lock()
	s.forms = forms
	s.mu.Unlock()
}

// Names returns the sorted names of the served forms.
func (s *Server) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) definition(name string) (*formdef.Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.forms[name]
	return def, ok
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", logging.FieldAddr, s.addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return herrors.New("X002").Wrap(err).WithDetail(err.Error())
		}
		return nil
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", logging.FieldError, err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			logging.FieldMethod, r.Method,
			logging.FieldPath, r.URL.Path,
			"status", ww.Status(),
			logging.FieldDuration, time.Since(start),
		)
	})
}

func (s *Server) listForms(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"forms": s.Names()})
}

func (s *Server) showForm(w http.ResponseWriter, r *http.Request) {
	def, f, ok := s.build(w, r)
	if !ok {
		return
	}
	s.writePage(w, r, http.StatusOK, def, f)
}

func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	def, f, ok := s.build(w, r)
	if !ok {
		return
	}
	if err := f.HandleRequest(r); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	valid := f.IsValid()
	if s.metrics != nil {
		s.metrics.ObserveSubmission(def.Name, valid)
	}
	if !valid {
		s.writePage(w, r, http.StatusUnprocessableEntity, def, f)
		return
	}
	s.writePage(w, r, http.StatusOK, def, valuesTable(f.Values()))
}

func (s *Server) build(w http.ResponseWriter, r *http.Request) (*formdef.Definition, *form.Form, bool) {
	name := chi.URLParam(r, "name")
	def, ok := s.definition(name)
	if !ok {
		s.fail(w, r, http.StatusNotFound, herrors.New("X001").WithDetailf("%q", name))
		return nil, nil, false
	}
	f, err := def.Build(s.buildOpts...)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return nil, nil, false
	}
	return def, f, true
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, def *formdef.Definition, body html.Node) {
	title := def.Name
	if t := def.Meta["title"]; t != "" {
		title = t
	}
	out, err := s.tracer.Render(r.Context(), "page", page(title, body), attribute.String("htmlkit.form", def.Name))
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprint(w, out)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(r.Context(), level, "request failed",
		logging.FieldPath, r.URL.Path,
		logging.FieldError, err,
	)
	http.Error(w, err.Error(), status)
}
