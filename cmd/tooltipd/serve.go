package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/middleware"
	"github.com/vango-dev/tooltip/pkg/server"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		addr    string
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo document over WebSocket",
		Long: `Start the WebSocket server. Every connection gets its own copy of
the demo document; the hello frame carries its HTML with hydration IDs.

Examples:
  tooltipd serve
  tooltipd serve --addr=:9000 --metrics
  tooltipd serve --config=deploy/tooltip.json --log-level=debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if metrics {
				cfg.Server.Metrics = true
			}
			logger := newLogger(cfg, os.Stderr)

			reg := prometheus.NewRegistry()
			sc := server.Config{
				Addr:         cfg.Server.Addr,
				Path:         cfg.Server.Path,
				Metrics:      cfg.Server.Metrics,
				Registry:     reg,
				Middleware:   []server.Middleware{middleware.OpenTelemetry()},
				DefaultDelay: cfg.DefaultDelay(),
				CloseDelay:   cfg.CloseDelay(),
				Templates:    demoTemplates(),
				Env:          map[string]any{"product": "tooltipd"},
				Logger:       logger,
			}
			if cfg.Server.Metrics {
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				sc.Middleware = append(sc.Middleware, middleware.Prometheus(middleware.WithRegistry(reg)))
			}
			// Zero in the file means "no delay", not "use the default".
			if cfg.Tooltip.DefaultDelayMs == 0 {
				sc.ControllerOptions = append(sc.ControllerOptions, tooltip.WithDefaultDelay(0))
			}
			if cfg.Tooltip.CloseDelayMs == 0 {
				sc.CloseDelay = -1
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(sc, demoMount)
			if err := srv.ListenAndServe(ctx); err != nil {
				return errors.New("T040").WithSource(cfg.Server.Addr).Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from tooltip.json)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose GET /metrics")

	return cmd
}
