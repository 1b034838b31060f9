// Package display renders status snapshots for the operator. Rendering is
// deliberately plain: a text block on an io.Writer. Anything fancier can
// implement status.Sink instead.
package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rickgao/teneo-node/internal/model"
)

// Writer renders each snapshot as a text block. Safe for use from the
// publisher goroutine alongside other writers to the same destination.
type Writer struct {
	mu  sync.Mutex
	out io.Writer

	// clearScreen redraws in place using ANSI escapes instead of
	// appending blocks, for interactive terminals.
	clearScreen bool
}

// NewWriter creates a display sink writing to out.
func NewWriter(out io.Writer, clearScreen bool) *Writer {
	return &Writer{out: out, clearScreen: clearScreen}
}

// Publish renders one snapshot.
func (w *Writer) Publish(snap model.StatusSnapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var b strings.Builder

	if w.clearScreen {
		b.WriteString("\033[2J\033[H")
	}

	fmt.Fprintf(&b, "== Teneo Node Monitor ==\n")
	fmt.Fprintf(&b, "Status:            %s\n", strings.ToUpper(snap.State.String()))
	fmt.Fprintf(&b, "Runtime:           %s\n", formatDuration(snap.Runtime))
	fmt.Fprintf(&b, "Uptime:            %s\n", formatDuration(snap.Uptime))
	fmt.Fprintf(&b, "Heartbeats Today:  %d/%d\n", snap.HeartbeatsToday, snap.MaxHeartbeats)
	if snap.NextHeartbeatIn > 0 {
		fmt.Fprintf(&b, "Next Heartbeat:    %s\n", formatDuration(snap.NextHeartbeatIn))
	}
	fmt.Fprintf(&b, "Points Today:      %d (dashboard: %d)\n", snap.PointsToday, snap.Dashboard.PointsToday)
	fmt.Fprintf(&b, "Points Total:      %d\n", snap.PointsTotal)
	fmt.Fprintf(&b, "Pings Sent:        %d\n", snap.PingCount)
	fmt.Fprintf(&b, "Latency:           %s (min %s / avg %s / max %s)\n",
		formatLatency(snap.Latency.Current),
		formatLatency(snap.Latency.Min),
		formatLatency(snap.Latency.Avg),
		formatLatency(snap.Latency.Max),
	)
	fmt.Fprintf(&b, "Connect Attempts:  %d\n", snap.ConnectAttempts)
	if snap.LastErrorMessage != "" {
		fmt.Fprintf(&b, "Last Error:        %s\n", snap.LastErrorMessage)
	}

	_, err := io.WriteString(w.out, b.String())
	return err
}

// formatDuration renders HH:MM:SS.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatLatency renders milliseconds, or N/A with no samples yet.
func formatLatency(d time.Duration) string {
	if d == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
}
