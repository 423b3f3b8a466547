package theater

import "time"

// Clock abstracts timer creation so tests can drive time deterministically.
type Clock interface {
	// AfterFunc schedules f to run after d on its own goroutine.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable scheduled call.
type Timer interface {
	// Stop cancels the timer. It reports whether the call was prevented,
	// mirroring time.Timer.Stop.
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// NewRealClock returns a Clock backed by the time package.
func NewRealClock() Clock {
	return realClock{}
}
