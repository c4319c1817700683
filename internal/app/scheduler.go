package app

import "time"

// Timer is a pending phase deadline
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// Scheduler arms phase deadlines. Sessions never call time.AfterFunc
// directly so tests can fire deadlines by hand.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

// AfterFunc runs f in its own goroutine after d
func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler schedules on the wall clock
var RealScheduler Scheduler = realScheduler{}
