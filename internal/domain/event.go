package domain

import (
	"context"
	"time"
)

// Event is a scheduled performance whose seats can be held and reserved.
// swagger:model Event
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title string, startAt, endAt, createdAt time.Time) *Event {
	return &Event{
		Title:     title,
		StartAt:   startAt,
		EndAt:     endAt,
		CreatedAt: createdAt,
	}
}

// EventRepository reads the event catalog. The catalog itself is managed elsewhere.
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*Event, error)
	// List returns events ordered by start time.
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	// ListAll returns every event ordered by start time. Used by seat provisioning.
	ListAll(ctx context.Context) ([]*Event, error)
}
