package engine

import (
	"sync"
	"time"
)

// TimeProvider is the clock source frames are timed against
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock
type MonotonicTimeProvider struct{}

func NewMonotonicTimeProvider() *MonotonicTimeProvider { return &MonotonicTimeProvider{} }

func (*MonotonicTimeProvider) Now() time.Time { return time.Now() }

// MockTimeProvider only moves when told to; safe for concurrent use
type MockTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the mock time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// SetTime jumps the mock time to t
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// PausableClock measures scene time: real time since creation minus every pause
type PausableClock struct {
	mu       sync.Mutex
	source   TimeProvider
	origin   time.Time
	pausedAt time.Time // zero while running
	paused   time.Duration
}

// NewPausableClock starts a running clock on source, or the system clock when nil
func NewPausableClock(source TimeProvider) *PausableClock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	return &PausableClock{source: source, origin: source.Now()}
}

// Elapsed is scene time; it stands still while paused
func (c *PausableClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.pausedAt
	if now.IsZero() {
		now = c.source.Now()
	}
	return now.Sub(c.origin) - c.paused
}

// RealTime is the source time, pause or not
func (c *PausableClock) RealTime() time.Time {
	return c.source.Now()
}

// Pause freezes scene time; no-op when already paused
func (c *PausableClock) Pause() {
	c.mu.Lock()
	if c.pausedAt.IsZero() {
		c.pausedAt = c.source.Now()
	}
	c.mu.Unlock()
}

// Resume continues scene time; no-op when running
func (c *PausableClock) Resume() {
	c.mu.Lock()
	if !c.pausedAt.IsZero() {
		c.paused += c.source.Now().Sub(c.pausedAt)
		c.pausedAt = time.Time{}
	}
	c.mu.Unlock()
}

// Toggle flips pause and reports whether the clock is now paused
func (c *PausableClock) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.source.Now()
	if c.pausedAt.IsZero() {
		c.pausedAt = now
		return true
	}
	c.paused += now.Sub(c.pausedAt)
	c.pausedAt = time.Time{}
	return false
}

func (c *PausableClock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.pausedAt.IsZero()
}

// TotalPauseDuration sums finished pauses and the one in progress
func (c *PausableClock) TotalPauseDuration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.paused
	if !c.pausedAt.IsZero() {
		total += c.source.Now().Sub(c.pausedAt)
	}
	return total
}
