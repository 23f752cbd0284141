package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlkit/internal/server"
	"github.com/vango-dev/htmlkit/pkg/html"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port    int
		host    string
		metrics bool
		tracing bool
	)

	cmd := &cobra.Command{
		Use:   "serve [file|dir...]",
		Short: "Serve form definitions over HTTP",
		Long: `Serve form definitions over HTTP.

Every definition is available at /forms/{name}. Submissions are
validated and either re-render the form with errors or list the
accepted values.

Examples:
  htmlkit serve
  htmlkit serve forms --port=9000 --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("metrics") {
				cfg.Server.Metrics = metrics
			}
			if cmd.Flags().Changed("tracing") {
				cfg.Server.Tracing = tracing
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			defs, err := loadDefinitions(cfg, args)
			if err != nil {
				return err
			}

			opts := []server.Option{
				server.WithAddress(cfg.Address()),
				server.WithRenderOptions(
					html.WithPretty(cfg.Render.Pretty),
					html.WithStackTrace(cfg.Render.ShowStackTrace),
				),
			}
			if cfg.Server.Metrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				opts = append(opts, server.WithMetrics(reg))
			}
			if cfg.Server.Tracing {
				opts = append(opts, server.WithTracing())
			}
			srv := server.New(defs, opts...)

			out := cmd.ErrOrStderr()
			success(out, "Serving %d form(s) on %s", len(defs), cfg.URL())
			for _, name := range srv.Names() {
				info(out, "%s/forms/%s", cfg.URL(), name)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from htmlkit.yaml)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from htmlkit.yaml)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics on /metrics")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Trace requests with the global OpenTelemetry provider")

	return cmd
}
