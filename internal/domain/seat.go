package domain

import (
	"context"
	"time"
)

// Seat belongs to exactly one event and is unique within it by (Row, Number).
// Number is kept as text, as supplied by provisioning, and ordered numerically.
// swagger:model Seat
type Seat struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Row     string `json:"row"`
	Number  string `json:"number"`
}

// NewSeat returns a new Seat. ID is typically set by the repository on create.
func NewSeat(eventID, row, number string) *Seat {
	return &Seat{EventID: eventID, Row: row, Number: number}
}

// SeatDisplayStatus is the status shown on the seat map. Stale holds are shown as NONE.
type SeatDisplayStatus string

const (
	SeatStatusNone      SeatDisplayStatus = "NONE"
	SeatStatusHold      SeatDisplayStatus = "HOLD"
	SeatStatusConfirmed SeatDisplayStatus = "CONFIRMED"
)

// SeatView is one entry of the seat map.
// swagger:model SeatView
type SeatView struct {
	SeatID    string            `json:"seat_id"`
	Row       string            `json:"row"`
	Number    string            `json:"number"`
	Status    SeatDisplayStatus `json:"status"`
	ExpiresAt *time.Time        `json:"expires_at"`
}

// SeatRepository reads and provisions seats.
type SeatRepository interface {
	GetByID(ctx context.Context, id string) (*Seat, error)
	// ListByEvent returns every seat of the event with its raw reservation (nil when none),
	// ordered by row and then numerically by seat number.
	ListByEvent(ctx context.Context, eventID string) ([]*SeatWithReservation, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	CreateBulk(ctx context.Context, seats []*Seat) error
}

// SeatWithReservation pairs a seat with the reservation row stored for it, if any.
type SeatWithReservation struct {
	Seat        *Seat
	Reservation *Reservation
}

// View projects the seat into its display status at now without mutating anything.
func (s *SeatWithReservation) View(now time.Time) SeatView {
	v := SeatView{SeatID: s.Seat.ID, Row: s.Seat.Row, Number: s.Seat.Number, Status: SeatStatusNone}
	switch st := Normalize(StateOf(s.Reservation), now).(type) {
	case StateHold:
		exp := st.ExpiresAt
		v.Status = SeatStatusHold
		v.ExpiresAt = &exp
	case StateConfirmed:
		v.Status = SeatStatusConfirmed
	}
	return v
}

// SeatMapService exposes the per-event seat map.
type SeatMapService interface {
	SeatMap(ctx context.Context, eventID string) ([]SeatView, error)
}

// Default seat layout used by provisioning.
const (
	DefaultSeatRows    = "ABCDEFGHIJ"
	DefaultSeatsPerRow = 12
)

// ProvisioningService bulk-creates seats for events.
type ProvisioningService interface {
	// GenerateSeats creates perRow seats for each row letter on every target event that has no
	// seats yet. An empty eventID targets all events.
	GenerateSeats(ctx context.Context, eventID, rows string, perRow int) (*ProvisioningReport, error)
}

// ProvisioningReport summarises a GenerateSeats run.
type ProvisioningReport struct {
	Created map[string]int
	Skipped map[string]int
	Total   int
}
