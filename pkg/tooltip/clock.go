package tooltip

import "time"

// Timer is a pending callback scheduled by a Clock.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// Clock schedules delayed callbacks.
//
// The controller is not safe for concurrent use, so a Clock must deliver
// callbacks on the goroutine that drives the controller. The server's
// session loop provides such a clock; tests use vtest.FakeClock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock schedules callbacks with time.AfterFunc. Callbacks run on
// their own goroutine, so it is only suitable when the caller serializes
// access to the controller itself.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
