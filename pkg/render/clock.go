package render

import "time"

// Clock provides time for the image-settle delays. The default
// implementation uses system timers. Tests inject a fake clock to drive
// the second-pass protocol deterministically.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// systemClock uses system time.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock is the real-time clock used when none is injected.
var SystemClock Clock = systemClock{}
