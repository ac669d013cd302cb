package clock

import "time"

// FakeClock pins Now to a fixed instant so dashboard window arithmetic stays
// deterministic in tests. Not safe for concurrent use.
type FakeClock struct {
	now time.Time
}

// NewFakeClock starts a fake clock at t, normalized to UTC.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time { return c.now }

// Advance moves the clock by d; a negative d moves it backwards.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// SetNow repins the clock to a specific instant.
func (c *FakeClock) SetNow(t time.Time) {
	c.now = t.UTC()
}
