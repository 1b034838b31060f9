package model

import (
	"time"

	"github.com/google/uuid"
)

// ConnectionState is the supervisor's connection lifecycle state.
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateFailed
)

// String returns the lowercase state name.
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PointsUpdate is a server-reported points reading.
type PointsUpdate struct {
	Total int64     // Lifetime points for the account
	Today int64     // Points earned today
	At    time.Time // Local receive time
}

// LatencyStats summarizes the latency sample ring.
type LatencyStats struct {
	Current time.Duration // Most recent sample (0 if none)
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Count   int // Samples currently in the ring
}

// DashboardStats holds the last successful dashboard API reading.
type DashboardStats struct {
	PointsToday int64
	Heartbeats  int64
	FetchedAt   time.Time // Zero if never fetched
}

// StatusSnapshot is an immutable point-in-time view of the node, built by
// the status publisher and handed to display sinks.
type StatusSnapshot struct {
	TakenAt time.Time
	State   ConnectionState

	SessionID   uuid.UUID // Zero until the first successful connect
	ConnectedAt time.Time // Start of the current connected period
	Uptime      time.Duration
	Runtime     time.Duration // Since process start

	PointsTotal int64
	PointsToday int64
	Dashboard   DashboardStats

	HeartbeatsToday  int64
	MaxHeartbeats    int64
	NextHeartbeatIn  time.Duration
	LastMessageAt    time.Time
	Latency          LatencyStats
	PingCount        int64
	ConnectAttempts  int64
	LastErrorMessage string // Empty if the last transition was clean
}
