package svc

import "time"

// Clock returns a millisecond counter. The counter may wrap around.
type Clock func() uint32

// Millis returns a Clock counting milliseconds since the call.
func Millis() Clock {
	start := time.Now()
	return func() uint32 {
		return uint32(time.Since(start) / time.Millisecond)
	}
}

// Ticker answers whether the measure interval has elapsed since it last fired.
// It is owned by the control loop and is not safe for concurrent use.
type Ticker struct {
	clock    Clock
	interval uint32
	last     uint32
}

// NewTicker creates a ticker that last fired at clock zero.
func NewTicker(c Clock, interval time.Duration) *Ticker {
	return &Ticker{
		clock:    c,
		interval: uint32(interval / time.Millisecond),
	}
}

// TimeIsUp returns true and restarts the interval from now when at least one
// interval has passed since the last fire. The unsigned subtraction keeps the
// comparison correct across a wrap of the clock.
func (t *Ticker) TimeIsUp() bool {
	now := t.clock()
	if now-t.last >= t.interval {
		t.last = now
		return true
	}
	return false
}

// Interval returns the configured interval.
func (t *Ticker) Interval() time.Duration {
	return time.Duration(t.interval) * time.Millisecond
}
