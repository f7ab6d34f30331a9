package timing

import (
	"sync"
	"time"
)

// Samples is a fixed-capacity ring of durations. Once full, new samples
// overwrite the oldest. Used for average-latency diagnostics only.
type Samples struct {
	mu   sync.Mutex
	data []time.Duration
	next int
	full bool
}

// NewSamples returns an empty ring holding up to n samples.
func NewSamples(n int) *Samples {
	if n < 1 {
		n = 1
	}
	return &Samples{data: make([]time.Duration, n)}
}

// Add records a sample.
func (s *Samples) Add(d time.Duration) {
	s.mu.Lock()
	s.data[s.next] = d
	s.next++
	if s.next == len(s.data) {
		s.next = 0
		s.full = true
	}
	s.mu.Unlock()
}

// Average returns the mean of the recorded samples, and false when no
// sample has been recorded yet.
func (s *Samples) Average() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.next
	if s.full {
		n = len(s.data)
	}
	if n == 0 {
		return 0, false
	}
	var total time.Duration
	for _, d := range s.data[:n] {
		total += d
	}
	return total / time.Duration(n), true
}
