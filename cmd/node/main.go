// node runs the Teneo node monitor: it keeps a websocket connection to the
// Teneo endpoint alive, accumulates session metrics, and renders a live
// status block once per second.
//
// Usage: node -config config.json [-redraw]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/teneo-node/internal/api"
	"github.com/rickgao/teneo-node/internal/auth"
	"github.com/rickgao/teneo-node/internal/config"
	"github.com/rickgao/teneo-node/internal/connection"
	"github.com/rickgao/teneo-node/internal/display"
	"github.com/rickgao/teneo-node/internal/metrics"
	"github.com/rickgao/teneo-node/internal/model"
	"github.com/rickgao/teneo-node/internal/poller"
	"github.com/rickgao/teneo-node/internal/router"
	"github.com/rickgao/teneo-node/internal/status"
	"github.com/rickgao/teneo-node/internal/version"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	redraw := flag.Bool("redraw", false, "redraw the status block in place")
	flag.Parse()

	// Logs go to stderr; the status block owns stdout.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting node monitor",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	connectURL, err := auth.ConnectURL(cfg.Node.WSURL, cfg.Node.AccessToken, cfg.Node.Version)
	if err != nil {
		logger.Error("failed to build connect url", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"ws_url", cfg.Node.WSURL,
		"access_token", auth.Redact(cfg.Node.AccessToken),
		"protocol_version", cfg.Node.Version,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Wire the core: supervisor events → router → session metrics.
	session := metrics.NewSession(time.Now())
	rtr := router.New(session, logger)

	supervisor := connection.NewSupervisor(connection.SupervisorConfig{
		URL:               connectURL,
		PingInterval:      cfg.Connection.PingInterval,
		PongTimeout:       cfg.Connection.PongTimeout,
		HandshakeTimeout:  cfg.Connection.HandshakeTimeout,
		WriteTimeout:      cfg.Connection.WriteTimeout,
		ReconnectBaseWait: cfg.Connection.ReconnectBaseWait,
		ReconnectMaxWait:  cfg.Connection.ReconnectMaxWait,
		MaxAttempts:       cfg.Connection.MaxAttempts,
		BufferSize:        cfg.Connection.BufferSize,
	}, rtr, logger)

	publisher := status.New(
		status.Config{Interval: cfg.Publisher.Interval},
		supervisor, session,
		display.NewWriter(os.Stdout, *redraw),
		logger,
	)

	// Health server
	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Health.Port),
		Handler: createHealthHandler(publisher, rtr),
	}
	go func() {
		logger.Info("starting health server", "port", cfg.Health.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	// Dashboard poller (optional)
	var dash *poller.Poller
	if cfg.Dashboard.Enabled {
		apiClient := api.NewClient(cfg.Dashboard.URL, cfg.Node.AccessToken,
			api.WithLogger(logger),
			api.WithTimeout(cfg.Dashboard.Timeout),
			api.WithRetries(cfg.Dashboard.MaxRetries, time.Second),
		)
		dash = poller.New(poller.Config{
			Interval: cfg.Dashboard.Interval,
			Timeout:  cfg.Dashboard.Timeout,
		}, apiClient, session, logger)

		if err := dash.Start(ctx); err != nil {
			logger.Error("failed to start dashboard poller", "error", err)
			os.Exit(1)
		}
	}

	if err := supervisor.Start(ctx); err != nil {
		logger.Error("failed to start supervisor", "error", err)
		os.Exit(1)
	}
	if err := publisher.Start(ctx); err != nil {
		logger.Error("failed to start publisher", "error", err)
		os.Exit(1)
	}

	logger.Info("node monitor running",
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Health.Port),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	publisher.Stop(shutdownCtx)
	if dash != nil {
		dash.Stop(shutdownCtx)
	}
	supervisor.Stop(shutdownCtx)
	healthServer.Shutdown(shutdownCtx)

	logger.Info("node monitor stopped")
}

// createHealthHandler creates the HTTP handler for health checks.
func createHealthHandler(publisher *status.Publisher, rtr *router.Router) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		snap := publisher.Snapshot()

		healthStatus := "healthy"
		switch snap.State {
		case model.StateConnected:
		case model.StateFailed:
			healthStatus = "unhealthy"
		default:
			healthStatus = "degraded"
		}

		health := struct {
			Status          string `json:"status"`
			State           string `json:"state"`
			UptimeSeconds   int64  `json:"uptime_seconds"`
			PointsTotal     int64  `json:"points_total"`
			PointsToday     int64  `json:"points_today"`
			ConnectAttempts int64  `json:"connect_attempts"`
			LastError       string `json:"last_error,omitempty"`
		}{
			Status:          healthStatus,
			State:           snap.State.String(),
			UptimeSeconds:   int64(snap.Uptime.Seconds()),
			PointsTotal:     snap.PointsTotal,
			PointsToday:     snap.PointsToday,
			ConnectAttempts: snap.ConnectAttempts,
			LastError:       snap.LastErrorMessage,
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	mux.HandleFunc("/debug/routing", func(w http.ResponseWriter, r *http.Request) {
		stats := rtr.Stats()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int64{
			"received":     stats.Received,
			"points_msgs":  stats.PointsMsgs,
			"pongs":        stats.Pongs,
			"parse_errors": stats.ParseErrors,
			"unknown":      stats.Unknown,
		})
	})

	return mux
}
