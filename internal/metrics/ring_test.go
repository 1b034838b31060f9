package metrics

import (
	"testing"
	"time"
)

func TestRing_AppendBelowCapacity(t *testing.T) {
	r := NewRing(5)

	r.Append(10 * time.Millisecond)
	r.Append(20 * time.Millisecond)
	r.Append(30 * time.Millisecond)

	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
	if got := r.Latest(); got != 30*time.Millisecond {
		t.Errorf("Latest = %v, want 30ms", got)
	}
	if got := r.Min(); got != 10*time.Millisecond {
		t.Errorf("Min = %v, want 10ms", got)
	}
	if got := r.Max(); got != 30*time.Millisecond {
		t.Errorf("Max = %v, want 30ms", got)
	}
	if got := r.Avg(); got != 20*time.Millisecond {
		t.Errorf("Avg = %v, want 20ms", got)
	}
}

func TestRing_EvictsOldestFirst(t *testing.T) {
	r := NewRing(3)

	for i := 1; i <= 5; i++ {
		r.Append(time.Duration(i) * time.Millisecond)
	}

	if r.Len() != 3 {
		t.Errorf("Len = %d, want capacity 3", r.Len())
	}

	got := r.Samples()
	want := []time.Duration{3 * time.Millisecond, 4 * time.Millisecond, 5 * time.Millisecond}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: got %v, want %v", i, got[i], want[i])
		}
	}

	// Evicted samples must not influence the aggregates.
	if r.Min() != 3*time.Millisecond {
		t.Errorf("Min = %v, want 3ms", r.Min())
	}
}

func TestRing_NeverExceedsCapacity(t *testing.T) {
	r := NewRing(50)
	for i := 0; i < 500; i++ {
		r.Append(time.Duration(i))
		if r.Len() > r.Cap() {
			t.Fatalf("after %d appends: Len %d exceeds Cap %d", i+1, r.Len(), r.Cap())
		}
	}
}

func TestRing_Empty(t *testing.T) {
	r := NewRing(3)

	if r.Latest() != 0 || r.Min() != 0 || r.Max() != 0 || r.Avg() != 0 {
		t.Error("empty ring aggregates should all be 0")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}
