package status

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rickgao/teneo-node/internal/metrics"
	"github.com/rickgao/teneo-node/internal/model"
)

// StateSource exposes the supervisor's view for snapshot composition.
type StateSource interface {
	State() model.ConnectionState
	Attempts() int64
}

// Sink receives snapshots and renders them somewhere.
type Sink interface {
	Publish(model.StatusSnapshot) error
}

// SinkFunc is a function adapter for Sink.
type SinkFunc func(model.StatusSnapshot) error

func (f SinkFunc) Publish(s model.StatusSnapshot) error {
	return f(s)
}

// Config holds publisher configuration.
type Config struct {
	Interval time.Duration // Snapshot cadence (default: 1s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Interval: time.Second}
}

// Publisher snapshots the session on a fixed cadence and hands each
// snapshot to the sink. A snapshot is emitted every tick even when state
// has not changed, so uptime on the display always moves.
type Publisher struct {
	cfg     Config
	source  StateSource
	session *metrics.Session
	sink    Sink
	logger  *slog.Logger

	// now is swappable for tests.
	now func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Publisher.
func New(cfg Config, source StateSource, session *metrics.Session, sink Sink, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval == 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	return &Publisher{
		cfg:     cfg,
		source:  source,
		session: session,
		sink:    sink,
		logger:  logger,
		now:     time.Now,
	}
}

// Start begins the publishing loop.
func (p *Publisher) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("status publisher started", "interval", p.cfg.Interval)

	return nil
}

// Stop gracefully shuts down the publisher.
func (p *Publisher) Stop(ctx context.Context) error {
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
		p.logger.Info("status publisher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot builds a snapshot from the current in-memory state.
func (p *Publisher) Snapshot() model.StatusSnapshot {
	return p.session.Snapshot(p.now(), p.source.State(), p.source.Attempts())
}

// run is the ticker loop.
func (p *Publisher) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// Publish immediately so the display is live from the first moment.
	p.publish()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.publish()
		}
	}
}

// publish delivers one snapshot. Sink failures are logged and skipped.
func (p *Publisher) publish() {
	snap := p.Snapshot()

	if err := p.sink.Publish(snap); err != nil {
		p.logger.Warn("failed to publish snapshot", "error", err)
	}
}
