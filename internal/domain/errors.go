package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and repositories. Controllers map them to HTTP status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	// ErrTransient marks a storage failure that rolled back cleanly and may be retried.
	ErrTransient = errors.New("transient storage failure")
	// ErrCommitUnknown marks a commit whose outcome was lost with the connection. The write may
	// have landed, so it is never retried.
	ErrCommitUnknown = errors.New("commit outcome unknown")
)

// Reservation-specific errors. Each wraps one of the sentinels above so callers can match on either.
var (
	ErrUnverified      = fmt.Errorf("%w: requester identity is not verified", ErrForbidden)
	ErrAlreadyReserved = fmt.Errorf("%w: seat already reserved", ErrConflict)
	ErrNoActiveHold    = fmt.Errorf("%w: seat has no active hold", ErrConflict)
	ErrHoldNotOwned    = fmt.Errorf("%w: hold belongs to another user", ErrConflict)
)
