package session

import "time"

// Timer is a pending callback
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks after a delay
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
