package domain

import (
	"context"
	"time"
)

// SeatStatusMessage announces a committed seat transition to viewers of the event.
type SeatStatusMessage struct {
	EventID   string            `json:"-"`
	SeatID    string            `json:"seat_id"`
	Status    ReservationStatus `json:"status"`
	ExpiresAt *time.Time        `json:"expires_at"`
}

// NewSeatStatusMessage builds the announcement for a persisted reservation.
func NewSeatStatusMessage(eventID string, r *Reservation) SeatStatusMessage {
	msg := SeatStatusMessage{EventID: eventID, SeatID: r.SeatID, Status: r.Status}
	if r.Status == StatusHold {
		msg.ExpiresAt = r.ExpiresAt
	}
	return msg
}

// SeatEventPublisher delivers a message to every current subscriber of msg.EventID.
type SeatEventPublisher interface {
	Publish(ctx context.Context, msg SeatStatusMessage) error
}

// SeatNotifier queues announcements without blocking the caller.
//
// Prepare is called while the seat lock is held, which fixes the message's position among
// messages for the same seat. The returned handle must be resolved after the transaction
// outcome is known: Commit releases the message for delivery, Discard drops it.
type SeatNotifier interface {
	Prepare(msg SeatStatusMessage) PendingNotification
}

// PendingNotification is a queued message awaiting its transaction outcome.
type PendingNotification interface {
	Commit()
	Discard()
}

// Subscription is a live feed of one event's seat messages.
type Subscription interface {
	ID() string
	Messages() <-chan SeatStatusMessage
	Close()
}

// SeatSubscriptions registers viewers of an event.
type SeatSubscriptions interface {
	Subscribe(eventID string) Subscription
}
