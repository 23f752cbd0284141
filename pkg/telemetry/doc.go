// Package telemetry instruments rendering, decoration and form handling.
//
// Metrics collects Prometheus counters and histograms and implements
// decorator.Observer, so it can be passed to form.WithObserver:
//
//	m := telemetry.NewMetrics(telemetry.WithNamespace("myapp"))
//	f := form.New(form.WithObserver(m))
//
// Tracer renders nodes inside OpenTelemetry spans:
//
//	t := telemetry.NewTracer(telemetry.WithMetrics(m))
//	out, err := t.Render(ctx, "form", f)
//
// Both provide chi compatible HTTP middleware.
package telemetry
