package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/rickgao/teneo-node/internal/model"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestSession_UptimeZeroWhileDisconnected(t *testing.T) {
	s := NewSession(t0)

	if got := s.Uptime(t0.Add(time.Hour)); got != 0 {
		t.Errorf("Uptime = %v before connect, want 0", got)
	}

	s.RecordConnected(t0)
	if got := s.Uptime(t0.Add(30 * time.Second)); got != 30*time.Second {
		t.Errorf("Uptime = %v, want 30s", got)
	}

	s.RecordDisconnected(errors.New("gone"), t0.Add(time.Minute))
	if got := s.Uptime(t0.Add(2 * time.Minute)); got != 0 {
		t.Errorf("Uptime = %v after disconnect, want 0", got)
	}
}

func TestSession_PointsMonotoneAcrossReconnects(t *testing.T) {
	s := NewSession(t0)

	events := []struct {
		total int64
		today int64
	}{
		{100, 75},
		{175, 150},
		{150, 75}, // Stale reading after reconnect must not lose points
		{250, 225},
	}

	s.RecordConnected(t0)
	var prev int64
	for i, ev := range events {
		if i == 2 {
			s.RecordDisconnected(errors.New("drop"), t0.Add(time.Duration(i)*time.Second))
			s.RecordConnected(t0.Add(time.Duration(i) * time.Second))
		}
		s.RecordPoints(model.PointsUpdate{Total: ev.total, Today: ev.today, At: t0.Add(time.Duration(i) * time.Second)})

		if got := s.PointsTotal(); got < prev {
			t.Errorf("event %d: PointsTotal %d decreased below %d", i, got, prev)
		}
		prev = s.PointsTotal()
	}

	if got := s.PointsTotal(); got != 250 {
		t.Errorf("PointsTotal = %d, want 250", got)
	}
}

func TestSession_LatencyRoundTrip(t *testing.T) {
	s := NewSession(t0)
	s.RecordConnected(t0)

	s.RecordPingSent(t0.Add(time.Second))
	s.RecordInbound(t0.Add(time.Second + 40*time.Millisecond))

	if got := s.LatestLatency(); got != 40*time.Millisecond {
		t.Errorf("LatestLatency = %v, want 40ms", got)
	}

	// A second inbound without an open ping adds no sample.
	s.RecordInbound(t0.Add(2 * time.Second))
	snap := s.Snapshot(t0.Add(3*time.Second), model.StateConnected, 1)
	if snap.Latency.Count != 1 {
		t.Errorf("latency count = %d, want 1", snap.Latency.Count)
	}
}

func TestSession_LatencyRingBounded(t *testing.T) {
	s := NewSession(t0)
	s.RecordConnected(t0)

	at := t0
	for i := 0; i < 200; i++ {
		s.RecordPingSent(at)
		at = at.Add(10 * time.Millisecond)
		s.RecordInbound(at)
		at = at.Add(10 * time.Second)
	}

	snap := s.Snapshot(at, model.StateConnected, 1)
	if snap.Latency.Count > LatencyRingCapacity {
		t.Errorf("latency count = %d, want <= %d", snap.Latency.Count, LatencyRingCapacity)
	}
}

// Full reconnect scenario: connect at t=0, pulse at t=1, drop at t=2,
// reconnect after backoff. Points survive, connectedAt resets.
func TestSession_ReconnectScenario(t *testing.T) {
	s := NewSession(t0)

	s.RecordConnected(t0)
	firstSnap := s.Snapshot(t0, model.StateConnected, 1)

	s.RecordPoints(model.PointsUpdate{Total: 5, Today: 5, At: t0.Add(time.Second)})
	if got := s.PointsTotal(); got != 5 {
		t.Fatalf("PointsTotal = %d, want 5", got)
	}

	dropAt := t0.Add(2 * time.Second)
	s.RecordDisconnected(errors.New("connection stale (no inbound traffic)"), dropAt)

	snap := s.Snapshot(dropAt, model.StateReconnecting, 1)
	if snap.PointsTotal != 5 {
		t.Errorf("PointsTotal = %d after drop, want 5", snap.PointsTotal)
	}
	if snap.State != model.StateReconnecting {
		t.Errorf("State = %v, want reconnecting", snap.State)
	}
	if snap.LastErrorMessage == "" {
		t.Error("LastErrorMessage should carry the disconnect reason")
	}

	reconnectAt := dropAt.Add(3 * time.Second)
	s.RecordConnected(reconnectAt)

	snap = s.Snapshot(reconnectAt.Add(time.Second), model.StateConnected, 2)
	if snap.PointsTotal != 5 {
		t.Errorf("PointsTotal = %d after reconnect, want 5", snap.PointsTotal)
	}
	if !snap.ConnectedAt.Equal(reconnectAt) {
		t.Errorf("ConnectedAt = %v, want reset to %v", snap.ConnectedAt, reconnectAt)
	}
	if snap.Uptime != time.Second {
		t.Errorf("Uptime = %v, want 1s from reconnect", snap.Uptime)
	}
	if snap.SessionID == firstSnap.SessionID {
		t.Error("SessionID should change on reconnect")
	}
	if snap.LastErrorMessage != "" {
		t.Errorf("LastErrorMessage = %q, want cleared on reconnect", snap.LastErrorMessage)
	}
}

func TestSession_SnapshotHeartbeats(t *testing.T) {
	s := NewSession(t0)
	s.RecordConnected(t0)
	s.RecordPoints(model.PointsUpdate{Total: 1000, Today: 375, At: t0.Add(time.Minute)})

	snap := s.Snapshot(t0.Add(2*time.Minute), model.StateConnected, 1)

	if snap.HeartbeatsToday != 5 {
		t.Errorf("HeartbeatsToday = %d, want 5 (375/75)", snap.HeartbeatsToday)
	}
	if snap.MaxHeartbeats != MaxHeartbeatsPerDay {
		t.Errorf("MaxHeartbeats = %d, want %d", snap.MaxHeartbeats, MaxHeartbeatsPerDay)
	}

	// 900s interval, 60s since the last points message.
	want := HeartbeatInterval - time.Minute
	if snap.NextHeartbeatIn != want {
		t.Errorf("NextHeartbeatIn = %v, want %v", snap.NextHeartbeatIn, want)
	}
}

func TestSession_SnapshotRuntimeVsUptime(t *testing.T) {
	s := NewSession(t0)
	s.RecordConnected(t0.Add(time.Hour))

	snap := s.Snapshot(t0.Add(2*time.Hour), model.StateConnected, 1)
	if snap.Runtime != 2*time.Hour {
		t.Errorf("Runtime = %v, want 2h", snap.Runtime)
	}
	if snap.Uptime != time.Hour {
		t.Errorf("Uptime = %v, want 1h", snap.Uptime)
	}
}

func TestSession_RecordDashboard(t *testing.T) {
	s := NewSession(t0)
	s.RecordDashboard(model.DashboardStats{PointsToday: 300, Heartbeats: 4, FetchedAt: t0})

	snap := s.Snapshot(t0, model.StateDisconnected, 0)
	if snap.Dashboard.PointsToday != 300 {
		t.Errorf("Dashboard.PointsToday = %d, want 300", snap.Dashboard.PointsToday)
	}
	if snap.Dashboard.Heartbeats != 4 {
		t.Errorf("Dashboard.Heartbeats = %d, want 4", snap.Dashboard.Heartbeats)
	}
}
