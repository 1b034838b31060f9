package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rickgao/teneo-node/internal/model"
)

// Supervisor owns the websocket lifecycle: it establishes the connection,
// keeps it alive, and reconnects with jittered exponential backoff.
type Supervisor interface {
	// Start begins the connect/reconnect loop. Idempotent while running.
	Start(ctx context.Context) error

	// Stop requests graceful shutdown: the active socket is closed and
	// any in-flight dial is cancelled. A later Start reinitializes cleanly.
	Stop(ctx context.Context) error

	// State returns the current connection state.
	State() model.ConnectionState

	// Attempts returns the total number of connection attempts this run.
	Attempts() int64

	// LastError returns the most recent transport error message, or ""
	// if the last transition was clean.
	LastError() string
}

// supervisor implements the Supervisor interface.
type supervisor struct {
	cfg      SupervisorConfig
	listener EventListener
	logger   *slog.Logger

	// newClient is swappable for tests.
	newClient func(ClientConfig, *slog.Logger) Client

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	attempts atomic.Int64

	mu      sync.RWMutex
	state   model.ConnectionState
	lastErr string
	running bool
}

// NewSupervisor creates a new Connection Supervisor. listener may be nil.
func NewSupervisor(cfg SupervisorConfig, listener EventListener, logger *slog.Logger) Supervisor {
	if logger == nil {
		logger = slog.Default()
	}

	def := DefaultSupervisorConfig()
	if cfg.PingInterval == 0 {
		cfg.PingInterval = def.PingInterval
	}
	if cfg.PongTimeout == 0 {
		cfg.PongTimeout = def.PongTimeout
	}
	if cfg.HandshakeTimeout == 0 {
		cfg.HandshakeTimeout = def.HandshakeTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.ReconnectBaseWait == 0 {
		cfg.ReconnectBaseWait = def.ReconnectBaseWait
	}
	if cfg.ReconnectMaxWait == 0 {
		cfg.ReconnectMaxWait = def.ReconnectMaxWait
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = def.BufferSize
	}

	return &supervisor{
		cfg:       cfg,
		listener:  listener,
		logger:    logger,
		newClient: NewClient,
		state:     model.StateDisconnected,
	}
}

// Start begins the connect/reconnect loop.
func (s *supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	if s.cfg.URL == "" {
		s.mu.Unlock()
		return fmt.Errorf("connect url is required")
	}
	s.running = true
	s.state = model.StateConnecting
	s.lastErr = ""
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.attempts.Store(0)

	s.wg.Add(1)
	go s.run()

	s.logger.Info("connection supervisor started",
		"base_wait", s.cfg.ReconnectBaseWait,
		"max_wait", s.cfg.ReconnectMaxWait,
		"max_attempts", s.cfg.MaxAttempts,
	)

	return nil
}

// Stop gracefully shuts down.
func (s *supervisor) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	s.mu.Unlock()

	s.logger.Info("stopping connection supervisor")

	if cancel != nil {
		cancel()
	}

	// Wait for the network goroutine with timeout
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("shutdown timeout, abandoning network goroutine")
	}

	s.mu.Lock()
	s.running = false
	if s.state != model.StateFailed {
		s.state = model.StateDisconnected
	}
	s.mu.Unlock()

	s.logger.Info("connection supervisor stopped")
	return nil
}

// State returns the current connection state.
func (s *supervisor) State() model.ConnectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Attempts returns the total number of connection attempts this run.
func (s *supervisor) Attempts() int64 {
	return s.attempts.Load()
}

// LastError returns the most recent transport error message.
func (s *supervisor) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// setState records a state transition.
func (s *supervisor) setState(state model.ConnectionState) {
	s.mu.Lock()
	prev := s.state
	s.state = state
	s.mu.Unlock()

	if prev != state {
		s.logger.Debug("state transition", "from", prev, "to", state)
	}
}

// recordError stores the reason shown in snapshots.
func (s *supervisor) recordError(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}

// run is the supervisor's network loop: dial, serve, back off, repeat.
func (s *supervisor) run() {
	defer s.wg.Done()

	wait := s.cfg.ReconnectBaseWait
	failures := 0

	for {
		s.setState(model.StateConnecting)
		s.attempts.Add(1)

		client := s.newClient(ClientConfig{
			URL:              s.cfg.URL,
			HandshakeTimeout: s.cfg.HandshakeTimeout,
			WriteTimeout:     s.cfg.WriteTimeout,
			BufferSize:       s.cfg.BufferSize,
		}, s.logger.With("attempt", s.attempts.Load()))

		err := client.Connect(s.ctx)
		if err != nil {
			client.Close()

			if s.ctx.Err() != nil {
				return
			}

			s.recordError(err)
			if s.listener != nil {
				s.listener.OnError(err)
			}
			s.logger.Warn("connect failed", "error", err)

			failures++
			if s.gaveUp(failures) {
				return
			}

			s.setState(model.StateReconnecting)
			if !s.backoff(&wait) {
				return
			}
			continue
		}

		// Connected: reset backoff and serve until the socket drops.
		wait = s.cfg.ReconnectBaseWait
		failures = 0

		s.setState(model.StateConnected)
		s.mu.Lock()
		s.lastErr = ""
		s.mu.Unlock()

		if s.listener != nil {
			s.listener.OnConnected(time.Now())
		}
		s.logger.Info("connected")

		reason := s.serve(client)
		client.Close()

		if s.ctx.Err() != nil {
			// Operator stop, not a transport failure.
			if s.listener != nil {
				s.listener.OnDisconnected(nil, time.Now())
			}
			return
		}

		if s.listener != nil {
			s.listener.OnDisconnected(reason, time.Now())
		}

		s.recordError(reason)
		s.logger.Warn("connection lost", "reason", reason)

		failures++
		if s.gaveUp(failures) {
			return
		}

		s.setState(model.StateReconnecting)
		if !s.backoff(&wait) {
			return
		}
	}
}

// serve pumps messages and keepalives for one connected period. It returns
// the reason the connection ended; ctx cancellation returns ctx.Err().
func (s *supervisor) serve(client Client) error {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return s.ctx.Err()

		case err := <-client.Errors():
			return err

		case msg, ok := <-client.Messages():
			if !ok {
				return errors.New("message channel closed")
			}
			if s.listener != nil {
				s.listener.OnMessage(msg)
			}

		case <-ticker.C:
			// Staleness first: a socket that has been silent past the
			// timeout is dead even if writes still succeed.
			if time.Since(client.LastInbound()) > s.cfg.PongTimeout {
				return ErrStaleConnection
			}

			sentAt := time.Now()
			if err := client.Send(pingMessage); err != nil {
				return fmt.Errorf("keepalive send: %w", err)
			}
			if s.listener != nil {
				s.listener.OnPingSent(sentAt)
			}
		}
	}
}

// gaveUp checks the max-attempts policy. When it trips, the supervisor
// parks in Failed; only a fresh Start leaves that state.
func (s *supervisor) gaveUp(failures int) bool {
	if s.cfg.MaxAttempts <= 0 || failures < s.cfg.MaxAttempts {
		return false
	}

	s.recordError(ErrMaxAttempts)
	s.setState(model.StateFailed)

	// Failed is terminal for this run, but a fresh Start may try again.
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	if s.listener != nil {
		s.listener.OnError(ErrMaxAttempts)
	}
	s.logger.Error("giving up after consecutive failures", "failures", failures)
	return true
}

// backoff sleeps for the jittered wait and doubles it, capped at the
// configured max. Returns false if the supervisor was stopped while waiting.
func (s *supervisor) backoff(wait *time.Duration) bool {
	// Jitter: wait * (0.5 to 1.5)
	jittered := *wait/2 + time.Duration(rand.Int64N(int64(*wait)))

	s.logger.Debug("reconnecting", "wait", jittered)

	select {
	case <-s.ctx.Done():
		return false
	case <-time.After(jittered):
	}

	*wait *= 2
	if *wait > s.cfg.ReconnectMaxWait {
		*wait = s.cfg.ReconnectMaxWait
	}
	return true
}
