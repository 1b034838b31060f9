package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rickgao/teneo-node/internal/api"
	"github.com/rickgao/teneo-node/internal/model"
)

// StatsHandler receives fetched dashboard stats.
type StatsHandler interface {
	RecordDashboard(model.DashboardStats)
}

// StatsHandlerFunc is a function adapter for StatsHandler.
type StatsHandlerFunc func(model.DashboardStats)

func (f StatsHandlerFunc) RecordDashboard(d model.DashboardStats) {
	f(d)
}

// Config holds poller configuration.
type Config struct {
	Interval time.Duration // Poll interval (default: 60s)
	Timeout  time.Duration // Per-request timeout (default: 10s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 60 * time.Second,
		Timeout:  10 * time.Second,
	}
}

// Poller periodically fetches dashboard stats via the REST API.
type Poller struct {
	cfg     Config
	client  *api.Client
	handler StatsHandler
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller.
func New(cfg Config, client *api.Client, handler StatsHandler, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval == 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Poller{
		cfg:     cfg,
		client:  client,
		handler: handler,
		logger:  logger,
	}
}

// Start begins the polling loop.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("dashboard poller started", "interval", p.cfg.Interval)

	return nil
}

// Stop gracefully shuts down the poller.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("dashboard poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main polling loop.
func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// Poll immediately on start.
	p.poll()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

// poll fetches dashboard stats once and hands them to the handler.
func (p *Poller) poll() {
	ctx, cancel := context.WithTimeout(p.ctx, p.cfg.Timeout)
	defer cancel()

	stats, err := p.client.GetUserStats(ctx)
	if err != nil {
		p.logger.Warn("failed to fetch dashboard stats", "error", err)
		return
	}

	p.handler.RecordDashboard(model.DashboardStats{
		PointsToday: stats.PointsToday,
		Heartbeats:  stats.Heartbeats,
		FetchedAt:   time.Now(),
	})

	p.logger.Debug("dashboard stats updated",
		"points_today", stats.PointsToday,
		"heartbeats", stats.Heartbeats,
	)
}
