package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/launchdash/launchdash/internal/api"
	"github.com/launchdash/launchdash/internal/config"
	"github.com/launchdash/launchdash/internal/metrics"
	"github.com/launchdash/launchdash/internal/probe"
	"github.com/launchdash/launchdash/internal/render"
	"github.com/launchdash/launchdash/internal/store"
	"github.com/launchdash/launchdash/internal/ui"
	"github.com/launchdash/launchdash/internal/ws"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard page, REST API and session hub",
		Long: `Loads the dataset once and serves the dashboard until SIGINT or SIGTERM.

The page, the REST API, the WebSocket session hub and /metrics share the HTTP
port. The gRPC health service listens on its own port unless disabled.
Without --config, a missing config.yaml means defaults.`,
		RunE: runServe,
	}
	cmd.Flags().String("config", "config.yaml", "path to config file")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	// An explicitly named config file must exist; the default may be absent.
	load := config.LoadOrDefault
	if cmd.Flags().Changed("config") {
		load = config.Load
	}
	cfg, err := load(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	slog.Info("launchdash starting",
		"version", version,
		"config", configPath,
		"http_port", cfg.Server.HTTPPort,
		"grpc_port", cfg.Server.GRPCPort,
		"dataset", cfg.Dataset.Path,
		"watch", cfg.Dataset.Watch,
	)

	// The dataset is loaded once before anything listens. A missing or
	// malformed file is fatal.
	st, err := store.Open(cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	t := st.Table()
	slog.Info("dataset loaded", "rows", t.Len(), "sites", len(t.Sites()),
		"min_payload", t.MinPayload(), "max_payload", t.MaxPayload())

	m := metrics.New()
	m.SetRows(t.Len())
	st.OnReload = func(err error) {
		m.ObserveReload(err)
		if err == nil {
			m.SetRows(st.Table().Len())
		}
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	hub := ws.New(st, m)

	mux := http.NewServeMux()
	mux.Handle("/api/", api.New(st, render.Options{Width: cfg.Render.Width, Height: cfg.Render.Height}, m))
	// Not wrapped in metrics middleware: the upgrade needs the raw writer.
	mux.Handle("/ws/session", hub)
	mux.Handle("/metrics", m)
	mux.Handle("/", m.Middleware("/", ui.New(st)))

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: mux,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("launchdash shutting down")
		sctx, scancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer scancel()
		return httpSrv.Shutdown(sctx)
	})

	if cfg.Server.GRPCPort != 0 {
		pr := probe.New(cfg.Server.GRPCPort)
		pr.SetReady(true)
		g.Go(func() error { return pr.ListenAndServe(gctx) })
	}

	if cfg.Dataset.Watch {
		g.Go(func() error {
			// Losing the watcher only stops hot reload; keep serving.
			if err := st.Watch(gctx); err != nil {
				slog.Error("dataset watch stopped", "err", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("launchdash stopped", "err", err)
		return err
	}
	slog.Info("launchdash stopped")
	return nil
}
