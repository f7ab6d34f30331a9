// Package timing holds the small time-based helpers used by the
// synchronization worker: an interval gate for rate limiting and a rolling
// duration sampler for latency diagnostics.
package timing

import (
	"sync"
	"time"
)

// Interval gates an action so it runs at most once per gap. Safe for use
// from the worker loop and its spawned request goroutines.
type Interval struct {
	mu      sync.Mutex
	gap     time.Duration
	lastDid time.Time
}

// NewInterval returns a gate that allows its first action immediately.
func NewInterval(gap time.Duration) *Interval {
	return &Interval{gap: gap, lastDid: time.Now().Add(-2 * gap)}
}

// Allow reports whether the gap has elapsed since the last allowed action,
// and marks the action as done when it has. If the action itself takes a
// while, call Update when it finishes.
func (i *Interval) Allow() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if time.Since(i.lastDid) <= i.gap {
		return false
	}
	i.lastDid = time.Now()
	return true
}

// Update restarts the gap from now.
func (i *Interval) Update() {
	i.mu.Lock()
	i.lastDid = time.Now()
	i.mu.Unlock()
}
