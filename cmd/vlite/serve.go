package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/vlite/internal/apps"
	"github.com/vango-dev/vlite/internal/config"
	"github.com/vango-dev/vlite/internal/errors"
	"github.com/vango-dev/vlite/pkg/metrics"
	"github.com/vango-dev/vlite/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		appName    string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an application over WebSocket",
		Long: `Serve a built-in application to browsers.

The page opens a WebSocket; every store transition re-renders the whole
tree and pushes it to all connected clients. Clicks and input are sent
back and dispatched to the server-side listeners.

Settings come from vlite.yaml in the working directory (or --config);
flags override the file.`,
		Example: `  vlite serve
  vlite serve --app counter --addr :3000
  vlite serve --config ./deploy/vlite.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if appName != "" {
				cfg.App = appName
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, addr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to vlite.yaml")
	cmd.Flags().StringVarP(&appName, "app", "a", "", "Application to serve (counter, todo)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, localhost:8080)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, addr string) error {
	out := os.Stdout
	logger := newLogger(os.Stderr, cfg.Log)

	printBanner(out)
	info(out, "App:      %s", cfg.App)
	info(out, "Persist:  %s", cfg.Persist.Backend)

	srvCfg := server.DefaultConfig()
	srvCfg.Title = "vlite · " + cfg.App
	srvCfg.Logger = logger
	if d := cfg.Server.ReadTimeoutDuration(); d > 0 {
		srvCfg.ReadTimeout = d
		srvCfg.PingInterval = d / 2
	}
	if d := cfg.Server.WriteTimeoutDuration(); d > 0 {
		srvCfg.WriteTimeout = d
	}
	if cfg.Tracing.Enabled {
		srvCfg.Tracer = otel.Tracer(cfg.Tracing.TracerName)
	} else {
		srvCfg.Tracer = noop.NewTracerProvider().Tracer(cfg.Tracing.TracerName)
	}

	buildOpts := apps.Options{
		Logger:  logger,
		Key:     cfg.Persist.Key,
		Backend: cfg.Persist.Backend,
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.New(
			metrics.WithNamespace(cfg.Metrics.Namespace),
			metrics.WithRegistry(reg),
		)
		srvCfg.Metrics = m
		srvCfg.Gatherer = reg
		srvCfg.MetricsPath = cfg.Metrics.Path
		buildOpts.Observer = m
		info(out, "Metrics:  %s", cfg.Metrics.Path)
	}

	kv, err := openKV(ctx, cfg.Persist)
	if err != nil {
		return err
	}
	if kv != nil {
		defer kv.Close()
		buildOpts.KV = kv
	}

	app, err := apps.Build(ctx, cfg.App, buildOpts)
	if err != nil {
		return errors.New("V104").WithDetail(err.Error())
	}

	success(out, "Listening on http://%s", addr)
	if err := server.New(app, srvCfg).ListenAndServe(ctx, addr); err != nil {
		return errors.New("V200").Wrap(err)
	}
	success(out, "Server stopped")
	return nil
}
