package dashboard

import "time"

// Clock is the single source of "now" for a render.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T.
type FixedClock struct{ T time.Time }

// Now implements Clock.
func (c FixedClock) Now() time.Time { return c.T }

// OffsetClock shifts another clock by Offset.
type OffsetClock struct {
	Base   Clock
	Offset time.Duration
}

// Now implements Clock.
func (c OffsetClock) Now() time.Time { return c.Base.Now().Add(c.Offset) }
