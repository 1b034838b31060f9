package metrics

import "time"

// Ring is a fixed-capacity FIFO ring of latency samples. Once full, each
// append evicts the oldest sample, keeping memory flat over arbitrarily
// long sessions. Not safe for concurrent use; Session holds the lock.
type Ring struct {
	buf   []time.Duration
	head  int // oldest sample
	count int
}

// NewRing creates a ring with the given capacity.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]time.Duration, capacity)}
}

// Append adds a sample, evicting the oldest if the ring is full.
func (r *Ring) Append(d time.Duration) {
	if r.count < len(r.buf) {
		r.buf[(r.head+r.count)%len(r.buf)] = d
		r.count++
		return
	}
	r.buf[r.head] = d
	r.head = (r.head + 1) % len(r.buf)
}

// Len returns the number of samples currently held.
func (r *Ring) Len() int { return r.count }

// Cap returns the ring capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Latest returns the most recent sample, or 0 if the ring is empty.
func (r *Ring) Latest() time.Duration {
	if r.count == 0 {
		return 0
	}
	return r.buf[(r.head+r.count-1)%len(r.buf)]
}

// Min returns the smallest held sample, or 0 if the ring is empty.
func (r *Ring) Min() time.Duration {
	if r.count == 0 {
		return 0
	}
	min := r.at(0)
	for i := 1; i < r.count; i++ {
		if d := r.at(i); d < min {
			min = d
		}
	}
	return min
}

// Max returns the largest held sample, or 0 if the ring is empty.
func (r *Ring) Max() time.Duration {
	var max time.Duration
	for i := 0; i < r.count; i++ {
		if d := r.at(i); d > max {
			max = d
		}
	}
	return max
}

// Avg returns the mean of the held samples, or 0 if the ring is empty.
func (r *Ring) Avg() time.Duration {
	if r.count == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < r.count; i++ {
		sum += r.at(i)
	}
	return sum / time.Duration(r.count)
}

// Samples returns the held samples oldest first.
func (r *Ring) Samples() []time.Duration {
	out := make([]time.Duration, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.at(i)
	}
	return out
}

// at returns the i-th sample counting from the oldest.
func (r *Ring) at(i int) time.Duration {
	return r.buf[(r.head+i)%len(r.buf)]
}
