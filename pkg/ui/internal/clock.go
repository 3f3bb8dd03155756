// Package internal provides internal utilities for the ui package.
package internal

import (
	"sync"
	"time"
)

// Clock supplies the time and sleeping used by assertion polling.
// Swapping it makes poll loops deterministic in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// MonotonicClock is a Clock backed by the system's monotonic clock.
type MonotonicClock struct{}

// Now returns the current system time with monotonic clock reading.
func (MonotonicClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d.
func (MonotonicClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// MockClock is a Clock for tests. Sleep advances the clock instead of
// blocking, so a poll loop with a 5s budget finishes instantly.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	slept   time.Duration
	sleeps  int
}

// NewMockClock creates a new MockClock initialized to the given time.
// If t is zero, it initializes to a fixed start time.
func NewMockClock(t time.Time) *MockClock {
	if t.IsZero() {
		t = time.Unix(1000000000, 0)
	}
	return &MockClock{current: t}
}

// Now returns the mock clock's current time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Sleep advances the clock by d without blocking.
func (m *MockClock) Sleep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d < 0 {
		d = 0
	}
	m.current = m.current.Add(d)
	m.slept += d
	m.sleeps++
}

// Advance moves the clock forward by the given duration.
// Panics if d is negative to maintain monotonicity.
func (m *MockClock) Advance(d time.Duration) {
	if d < 0 {
		panic("MockClock.Advance: duration must be non-negative")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

// Slept reports the total duration and number of Sleep calls.
func (m *MockClock) Slept() (time.Duration, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slept, m.sleeps
}
