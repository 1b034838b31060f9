package metrics

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/teneo-node/internal/model"
)

// Reward accounting constants from the Teneo protocol.
const (
	PointsPerHeartbeat  = 75
	HeartbeatInterval   = 900 * time.Second
	MaxHeartbeatsPerDay = 96

	// LatencyRingCapacity bounds the latency sample window.
	LatencyRingCapacity = 50
)

// Session accumulates statistics from the supervisor's event stream.
// The event path writes, the status publisher reads; every access goes
// through the mutex so snapshots never observe a torn update.
type Session struct {
	mu sync.RWMutex

	startedAt time.Time // Process start, for runtime display

	id            uuid.UUID // New per connected period
	connected     bool
	connectedAt   time.Time
	lastMessageAt time.Time

	// Latency: an open ping round trip is closed by the next inbound
	// message, matching how the service answers keepalives.
	lastPingAt time.Time
	pingCount  int64
	latency    *Ring

	pointsTotal  int64
	pointsToday  int64
	lastPointsAt time.Time

	dashboard model.DashboardStats

	lastErr string
}

// NewSession creates a session accumulator anchored at the process start.
func NewSession(startedAt time.Time) *Session {
	return &Session{
		startedAt: startedAt,
		latency:   NewRing(LatencyRingCapacity),
	}
}

// RecordConnected starts a new connected period. Points survive; the
// session ID, connect time, and message tracking reset.
func (s *Session) RecordConnected(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = uuid.New()
	s.connected = true
	s.connectedAt = at
	s.lastMessageAt = time.Time{}
	s.lastPingAt = time.Time{}
	s.lastErr = ""
}

// RecordDisconnected ends the connected period. reason nil means an
// operator-requested stop.
func (s *Session) RecordDisconnected(reason error, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = false
	s.lastPingAt = time.Time{}
	if reason != nil {
		s.lastErr = reason.Error()
	}
}

// RecordError stores a transport error for the next snapshot.
func (s *Session) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err.Error()
}

// RecordPingSent opens a latency round trip.
func (s *Session) RecordPingSent(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastPingAt = at
	s.pingCount++
}

// RecordInbound notes an inbound message and closes any open round trip.
func (s *Session) RecordInbound(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastMessageAt = at
	if !s.lastPingAt.IsZero() {
		s.latency.Append(at.Sub(s.lastPingAt))
		s.lastPingAt = time.Time{}
	}
}

// RecordPoints applies a server-reported points reading. The total is
// monotone: a reading below the running total (stale server state right
// after a reconnect) never loses earned points.
func (s *Session) RecordPoints(u model.PointsUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Total > s.pointsTotal {
		s.pointsTotal = u.Total
	}
	s.pointsToday = u.Today
	s.lastPointsAt = u.At
}

// RecordDashboard stores the latest dashboard API reading.
func (s *Session) RecordDashboard(d model.DashboardStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboard = d
}

// Uptime returns how long the current connected period has lasted, or 0
// while disconnected.
func (s *Session) Uptime(now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return 0
	}
	return now.Sub(s.connectedAt)
}

// LatestLatency returns the most recent latency sample, or 0 if none yet.
func (s *Session) LatestLatency() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latency.Latest()
}

// PointsTotal returns the running lifetime point total.
func (s *Session) PointsTotal() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pointsTotal
}

// Snapshot composes an immutable view of the session combined with the
// supervisor's state and attempt counter.
func (s *Session) Snapshot(now time.Time, state model.ConnectionState, attempts int64) model.StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := model.StatusSnapshot{
		TakenAt:          now,
		State:            state,
		SessionID:        s.id,
		ConnectedAt:      s.connectedAt,
		Runtime:          now.Sub(s.startedAt),
		PointsTotal:      s.pointsTotal,
		PointsToday:      s.pointsToday,
		Dashboard:        s.dashboard,
		HeartbeatsToday:  s.pointsToday / PointsPerHeartbeat,
		MaxHeartbeats:    MaxHeartbeatsPerDay,
		LastMessageAt:    s.lastMessageAt,
		PingCount:        s.pingCount,
		ConnectAttempts:  attempts,
		LastErrorMessage: s.lastErr,
		Latency: model.LatencyStats{
			Current: s.latency.Latest(),
			Min:     s.latency.Min(),
			Max:     s.latency.Max(),
			Avg:     s.latency.Avg(),
			Count:   s.latency.Len(),
		},
	}

	if s.connected {
		snap.Uptime = now.Sub(s.connectedAt)
	}

	if !s.lastPointsAt.IsZero() {
		next := HeartbeatInterval - now.Sub(s.lastPointsAt)
		if next < 0 {
			next = 0
		}
		snap.NextHeartbeatIn = next
	}

	return snap
}
