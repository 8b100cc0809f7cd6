package service

import "time"

// Clock is the time source for transitions
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the wall clock in UTC
func SystemClock() Clock {
	return systemClock{}
}

// TransitionObserver receives one call per attempted transition
type TransitionObserver interface {
	ObserveTransition(action string, started time.Time, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveTransition(string, time.Time, error) {}

func ptr[T any](v T) *T {
	return &v
}
