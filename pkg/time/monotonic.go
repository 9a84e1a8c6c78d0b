package time

import "time"

// clock provides monotonic time since the process started
// time.Since reads the monotonic reading carried by startTime, so wall clock
// adjustments never move deadlines backwards
type Clock struct {
	startTime time.Time
}

func NewClock() *Clock {
	return &Clock{
		startTime: time.Now(),
	}
}

// duration since the clock was created
func (c *Clock) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// deadline ttl from now, on the clock's timeline
func (c *Clock) Deadline(ttl time.Duration) time.Duration {
	return c.Elapsed() + ttl
}

// reports whether a deadline taken from Deadline has passed
func (c *Clock) Passed(deadline time.Duration) bool {
	return c.Elapsed() >= deadline
}

// time elapsed since a stamp taken from Elapsed
func (c *Clock) Since(stamp time.Duration) time.Duration {
	return c.Elapsed() - stamp
}
