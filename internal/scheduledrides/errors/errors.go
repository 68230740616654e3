package errors

import "errors"

var (
	ErrNotFound = errors.New("scheduled ride not found")

	ErrInvalidID = errors.New("invalid scheduled ride ID format")

	// ErrTooSoon is returned when the scheduled time is inside the
	// minimum lead window.
	ErrTooSoon = errors.New("scheduled time is below the minimum lead time")

	// ErrTooFar is returned when the scheduled time is beyond the
	// maximum scheduling horizon.
	ErrTooFar = errors.New("scheduled time is beyond the maximum horizon")

	// ErrTerminal is returned for mirror updates rejected because the
	// record already reached a terminal status.
	ErrTerminal = errors.New("scheduled ride already in a terminal status")
)
