package game

import "time"

// frameTap records the last N frame times into a ring buffer so the HUD can
// draw a graph of recent frame cost.
type frameTap struct {
	buffer    []time.Duration
	nextIndex int
	filled    bool
}

func newFrameTap(ringSize int) *frameTap {
	if ringSize < 1 {
		ringSize = 1
	}
	return &frameTap{
		buffer: make([]time.Duration, ringSize),
	}
}

func (t *frameTap) record(d time.Duration) {
	t.buffer[t.nextIndex] = d
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
		t.filled = true
	}
}

// len returns how many samples are stored.
func (t *frameTap) len() int {
	if t.filled {
		return len(t.buffer)
	}
	return t.nextIndex
}

// snapshot returns up to the last n samples, most recent last.
func (t *frameTap) snapshot(n int) []time.Duration {
	if n > t.len() {
		n = t.len()
	}
	out := make([]time.Duration, 0, n)
	// Walk backwards from nextIndex - 1
	idx := t.nextIndex - 1
	if idx < 0 {
		idx = len(t.buffer) - 1
	}
	for i := 0; i < n; i++ {
		out = append(out, t.buffer[idx])
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
	}
	// reverse to chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
