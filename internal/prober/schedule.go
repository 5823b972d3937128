package prober

import "time"

// Timer is a handle to a pending deferred invocation.
type Timer interface {
	// Stop cancels the invocation. It reports false if the call already fired
	// or was already stopped.
	Stop() bool
}

// Scheduler arms single deferred invocations.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler returns a Scheduler backed by time.AfterFunc.
func SystemScheduler() Scheduler {
	return timeScheduler{}
}
