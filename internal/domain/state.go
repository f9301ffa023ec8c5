package domain

import "time"

// SeatState is the decision-relevant state of a seat: StateNone, StateHold, StateConfirmed or
// StateCancelled.
type SeatState interface {
	seatState()
}

// StateNone is a seat that has never been held.
type StateNone struct{}

// StateHold is a seat claimed by Holder until ExpiresAt.
type StateHold struct {
	Holder    string
	ExpiresAt time.Time
}

// StateConfirmed is a permanently reserved seat.
type StateConfirmed struct {
	Holder string
}

// StateCancelled is a seat whose last hold was released or expired.
type StateCancelled struct{}

func (StateNone) seatState()      {}
func (StateHold) seatState()      {}
func (StateConfirmed) seatState() {}
func (StateCancelled) seatState() {}

// StateOf reads the state out of a stored reservation row. A nil row is StateNone.
func StateOf(r *Reservation) SeatState {
	if r == nil {
		return StateNone{}
	}
	switch r.Status {
	case StatusHold:
		if r.ExpiresAt == nil {
			// A hold without expiry cannot be honoured.
			return StateCancelled{}
		}
		return StateHold{Holder: r.UserID, ExpiresAt: *r.ExpiresAt}
	case StatusConfirmed:
		return StateConfirmed{Holder: r.UserID}
	default:
		return StateCancelled{}
	}
}

// HoldActive reports whether a hold expiring at expiresAt still stands at now.
// The hold stands up to and including its expiry instant.
func HoldActive(expiresAt, now time.Time) bool {
	return !expiresAt.Before(now)
}

// Normalize turns a stale hold into StateCancelled. Every other state is returned unchanged.
func Normalize(s SeatState, now time.Time) SeatState {
	if h, ok := s.(StateHold); ok && !HoldActive(h.ExpiresAt, now) {
		return StateCancelled{}
	}
	return s
}

// Decision is the outcome of a transition function.
type Decision struct {
	Accepted bool
	// Reason is set when the transition is rejected.
	Reason error
	Status ReservationStatus
	Holder string
	// ExpiresAt is the expiry to persist: the new hold expiry, nil on confirm, the previous expiry on release.
	ExpiresAt *time.Time
	// Superseded is true when an accepted hold replaced a stale hold.
	Superseded bool
}

func reject(reason error) Decision {
	return Decision{Reason: reason}
}

// DecideHold decides a hold request by requester at now.
func DecideHold(current SeatState, now time.Time, requester string, holdFor time.Duration) Decision {
	state := Normalize(current, now)
	switch state.(type) {
	case StateNone, StateCancelled:
		exp := now.Add(holdFor)
		_, stale := current.(StateHold)
		return Decision{
			Accepted:   true,
			Status:     StatusHold,
			Holder:     requester,
			ExpiresAt:  &exp,
			Superseded: stale,
		}
	default:
		return reject(ErrAlreadyReserved)
	}
}

// DecideConfirm decides whether requester may turn their hold into a confirmed reservation.
func DecideConfirm(current SeatState, now time.Time, requester string) Decision {
	switch st := Normalize(current, now).(type) {
	case StateHold:
		if st.Holder != requester {
			return reject(ErrHoldNotOwned)
		}
		return Decision{Accepted: true, Status: StatusConfirmed, Holder: requester}
	case StateConfirmed:
		return reject(ErrAlreadyReserved)
	default:
		return reject(ErrNoActiveHold)
	}
}

// DecideRelease decides whether requester may give their active hold back to the pool.
func DecideRelease(current SeatState, now time.Time, requester string) Decision {
	switch st := Normalize(current, now).(type) {
	case StateHold:
		if st.Holder != requester {
			return reject(ErrHoldNotOwned)
		}
		exp := st.ExpiresAt
		return Decision{Accepted: true, Status: StatusCancelled, Holder: requester, ExpiresAt: &exp}
	case StateConfirmed:
		return reject(ErrAlreadyReserved)
	default:
		return reject(ErrNoActiveHold)
	}
}

// Apply builds the reservation row to persist for an accepted decision. A new hold resets
// CreatedAt to now; confirm and release keep the row's original CreatedAt.
func (d Decision) Apply(current *Reservation, seatID string, now time.Time) *Reservation {
	r := &Reservation{
		SeatID:    seatID,
		UserID:    d.Holder,
		Status:    d.Status,
		CreatedAt: now,
		ExpiresAt: d.ExpiresAt,
	}
	if current != nil {
		r.ID = current.ID
		if d.Status != StatusHold {
			r.CreatedAt = current.CreatedAt
		}
	}
	return r
}
