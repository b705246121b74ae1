package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	natsgo "github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/tether-go/tether/pkg/bind"
	"github.com/tether-go/tether/pkg/metrics/prom"
	"github.com/tether-go/tether/pkg/natsfeed"
	"github.com/tether-go/tether/pkg/rx"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		natsURL  string
		subject  string
		logLevel string
		traced   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		Long: `Start the demo server.

Serves the counter page on /, the WebSocket endpoint on /ws, Prometheus
metrics on /metrics and a liveness probe on /healthz.

Examples:
  tetherdemo serve
  tetherdemo serve --addr=:9000 --log-level=debug
  tetherdemo serve --nats=nats://localhost:4222 --nats-subject=demo.message
  tetherdemo serve --trace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, natsURL, subject, logLevel, traced)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&natsURL, "nats", "", "NATS server URL feeding the message cell (optional)")
	cmd.Flags().StringVar(&subject, "nats-subject", "tether.message", "NATS subject carrying message updates")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&traced, "trace", false, "Span each dispatched frame via the global OpenTelemetry tracer provider")

	return cmd
}

func runServe(addr, natsURL, subject, logLevel string, traced bool) error {
	level, err := parseLevel(logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	bind.SetMetrics(prom.BindMetrics(reg))

	srv := &server{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	if traced {
		srv.tracer = newFrameTracer()
		logger.Info("frame tracing enabled")
	}

	if natsURL != "" {
		nc, err := natsgo.Connect(natsURL, natsgo.MaxReconnects(3))
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		defer nc.Close()
		srv.feed = func() rx.Observable[string] {
			return natsfeed.StreamJSON[string](nc, subject, natsfeed.StreamOptions{Logger: logger})
		}
		logger.Info("nats feed enabled", slog.String("subject", subject))
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()
	logger.Info("listening", slog.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", slog.Any("signal", sig))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
