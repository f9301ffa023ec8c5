package domain

import (
	"context"
	"time"
)

// Availability is a point-in-time snapshot of an event's seats.
// swagger:model Availability
type Availability struct {
	EventID        string `json:"event_id"`
	TotalSeats     int    `json:"total_seats"`
	ConfirmedSeats int    `json:"confirmed_seats"`
	HoldSeats      int    `json:"hold_seats"`
	AvailableSeats int    `json:"available_seats"`
}

// NewAvailability computes AvailableSeats from the three counts.
func NewAvailability(eventID string, total, confirmed, activeHolds int) *Availability {
	return &Availability{
		EventID:        eventID,
		TotalSeats:     total,
		ConfirmedSeats: confirmed,
		HoldSeats:      activeHolds,
		AvailableSeats: total - confirmed - activeHolds,
	}
}

// EventAvailability bundles an event with its availability snapshot.
// swagger:model EventAvailability
type EventAvailability struct {
	Event        *Event        `json:"event"`
	Availability *Availability `json:"availability"`
}

// AvailabilityRepository counts seats per event. Holds count only while active at now.
type AvailabilityRepository interface {
	CountByEvent(ctx context.Context, eventID string, now time.Time) (*Availability, error)
	CountByEvents(ctx context.Context, eventIDs []string, now time.Time) (map[string]*Availability, error)
}

// AvailabilityService answers availability queries, reading the clock fresh on every call.
type AvailabilityService interface {
	ForEvent(ctx context.Context, eventID string) (*Availability, error)
	ListEvents(ctx context.Context, params PaginationParams) ([]*EventAvailability, int, error)
}
