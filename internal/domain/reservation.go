package domain

import (
	"context"
	"time"
)

// DefaultHoldDuration is how long a new hold keeps a seat.
const DefaultHoldDuration = time.Minute

// ReservationStatus is the persisted status of a reservation row.
type ReservationStatus string

const (
	StatusHold      ReservationStatus = "HOLD"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation is the single reservation row of a seat. The row is created on the first hold,
// rewritten in place afterwards and never deleted.
// swagger:model Reservation
type Reservation struct {
	ID        string            `json:"id"`
	SeatID    string            `json:"seat_id"`
	UserID    string            `json:"user_id"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt *time.Time        `json:"expires_at"`
}

// SeatLedger is the storage of record for reservations and the exclusive seat lease.
//
// WithSeatLock runs fn with exclusive access to the seat's reservation state. No two calls for
// the same seat run concurrently, across processes sharing the ledger. Everything fn writes is
// committed atomically when fn returns nil and rolled back otherwise. It returns ErrNotFound when
// the seat does not belong to the event.
type SeatLedger interface {
	WithSeatLock(ctx context.Context, eventID, seatID string, fn func(ctx context.Context, tx SeatLedgerTx) error) error
}

// SeatLedgerTx is the locked view of one seat handed to WithSeatLock callbacks.
type SeatLedgerTx interface {
	// Current returns the seat's reservation row, or nil when it has none.
	Current(ctx context.Context) (*Reservation, error)
	// Save upserts the seat's reservation row keyed by seat and fills in ID and CreatedAt.
	Save(ctx context.Context, r *Reservation) error
}

// ReservationService runs seat transitions through the lock, decide, persist, notify pipeline.
type ReservationService interface {
	Hold(ctx context.Context, eventID, seatID, userID string) (*Reservation, error)
	Confirm(ctx context.Context, eventID, seatID, userID string) (*Reservation, error)
	Release(ctx context.Context, eventID, seatID, userID string) (*Reservation, error)
}

// Clock is the time source for every expiry decision.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
