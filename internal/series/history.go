package series

import (
	"sync"
	"time"
)

// History is a thread-safe, fixed-capacity ring of samples, oldest first.
// Pollers append live readings to it; renderers read snapshots.
type History struct {
	mu    sync.RWMutex
	items []Sample
	head  int
	count int
}

// NewHistory creates a History holding at most capacity samples.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{items: make([]Sample, capacity)}
}

// Add appends a sample, overwriting the oldest when full. Samples older
// than the newest stored one are dropped to keep the ring ascending.
func (h *History) Add(s Sample) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.count > 0 {
		last := h.items[(h.head-1+len(h.items))%len(h.items)]
		if s.Time.Before(last.Time) {
			return false
		}
	}
	h.items[h.head] = s
	h.head = (h.head + 1) % len(h.items)
	if h.count < len(h.items) {
		h.count++
	}
	return true
}

// Len returns the number of samples held.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Samples returns a copy of all samples, oldest first.
func (h *History) Samples() []Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Sample, h.count)
	start := 0
	if h.count == len(h.items) {
		start = h.head
	}
	for i := 0; i < h.count; i++ {
		out[i] = h.items[(start+i)%len(h.items)]
	}
	return out
}

// Since returns the samples at or after t.
func (h *History) Since(t time.Time) []Sample {
	all := h.Samples()
	for i, s := range all {
		if !s.Time.Before(t) {
			return all[i:]
		}
	}
	return nil
}

// Last returns the newest sample.
func (h *History) Last() (Sample, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.count == 0 {
		return Sample{}, false
	}
	return h.items[(h.head-1+len(h.items))%len(h.items)], true
}
