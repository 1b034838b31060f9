package router

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rickgao/teneo-node/internal/connection"
	"github.com/rickgao/teneo-node/internal/metrics"
	"github.com/rickgao/teneo-node/internal/model"
)

// Router translates supervisor events into session metrics updates.
// It is the supervisor's EventListener; all methods run on the
// supervisor's network goroutine and must stay non-blocking.
type Router struct {
	session *metrics.Session
	logger  *slog.Logger

	mu    sync.RWMutex
	stats Stats
}

// New creates a new Router feeding the given session.
func New(session *metrics.Session, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		session: session,
		logger:  logger,
	}
}

// Stats returns current routing statistics.
func (r *Router) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}

// OnConnected starts a new session period.
func (r *Router) OnConnected(at time.Time) {
	r.session.RecordConnected(at)
}

// OnPingSent opens a latency round trip.
func (r *Router) OnPingSent(at time.Time) {
	r.session.RecordPingSent(at)
}

// OnDisconnected closes the current session period.
func (r *Router) OnDisconnected(reason error, at time.Time) {
	r.session.RecordDisconnected(reason, at)
}

// OnError records a transport error for the next snapshot.
func (r *Router) OnError(err error) {
	r.session.RecordError(err)
}

// OnMessage parses one inbound payload and updates the session.
// Malformed payloads are logged and dropped; the connection stays up.
func (r *Router) OnMessage(msg connection.TimestampedMessage) {
	r.mu.Lock()
	r.stats.Received++
	r.mu.Unlock()

	// Any inbound message closes an open ping round trip.
	r.session.RecordInbound(msg.ReceivedAt)

	var envelope messageEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		r.logger.Warn("malformed payload, dropping", "error", err)
		r.mu.Lock()
		r.stats.ParseErrors++
		r.mu.Unlock()
		return
	}

	switch {
	case envelope.Type == "PONG":
		r.mu.Lock()
		r.stats.Pongs++
		r.mu.Unlock()

	case strings.Contains(envelope.Message, greetingMarker),
		strings.Contains(envelope.Message, pulseMarker):
		r.session.RecordPoints(model.PointsUpdate{
			Total: envelope.PointsTotal,
			Today: envelope.PointsToday,
			At:    msg.ReceivedAt,
		})
		r.mu.Lock()
		r.stats.PointsMsgs++
		r.mu.Unlock()

	default:
		r.logger.Debug("skipping message type", "type", envelope.Type)
		r.mu.Lock()
		r.stats.Unknown++
		r.mu.Unlock()
	}
}
