package engine

import "time"

// TimeProvider abstracts the wall clock so schedulers and clocks can be
// driven by a mock in tests
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider returns the real system time with monotonic
// clock readings. Used for real-time operations that should not pause
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
