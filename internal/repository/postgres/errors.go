package postgres

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"seatreservation/internal/domain"
)

const (
	pqUniqueViolation      = "23505"
	pqInvalidText          = "22P02"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqLockNotAvailable     = "55P03"
)

// mapError translates driver errors into domain errors. Unknown errors pass through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	var perr *pq.Error
	if !errors.As(err, &perr) {
		return err
	}
	switch perr.Code {
	case pqUniqueViolation:
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	case pqSerializationFailure, pqDeadlockDetected, pqLockNotAvailable:
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	return err
}

// mapCommitError classifies a COMMIT failure. A reply from the server means the transaction was
// rolled back; anything else leaves the outcome unknown.
func mapCommitError(err error) error {
	var perr *pq.Error
	if errors.As(err, &perr) {
		return mapError(err)
	}
	return fmt.Errorf("%w: %v", domain.ErrCommitUnknown, err)
}

// isMalformedID reports whether err comes from a value that cannot be parsed as a UUID key.
func isMalformedID(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == pqInvalidText
}
