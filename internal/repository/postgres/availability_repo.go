package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"seatreservation/internal/domain"
)

type availabilityRepository struct {
	DB *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) domain.AvailabilityRepository {
	return &availabilityRepository{DB: db}
}

// A hold counts while expires_at >= now, the same bound the seat map and the hold decision use.
const availabilityCounts = `
		COUNT(s.id) AS total,
		COUNT(r.id) FILTER (WHERE r.status = 'CONFIRMED') AS confirmed,
		COUNT(r.id) FILTER (WHERE r.status = 'HOLD' AND r.expires_at >= $2) AS holds
`

func (r *availabilityRepository) CountByEvent(ctx context.Context, eventID string, now time.Time) (*domain.Availability, error) {
	query := `
		SELECT` + availabilityCounts + `
		FROM seats s
		LEFT JOIN reservations r ON r.seat_id = s.id
		WHERE s.event_id = $1
	`
	var total, confirmed, holds int
	if err := r.DB.QueryRowContext(ctx, query, eventID, now).Scan(&total, &confirmed, &holds); err != nil {
		if isMalformedID(err) {
			return domain.NewAvailability(eventID, 0, 0, 0), nil
		}
		return nil, mapError(err)
	}
	return domain.NewAvailability(eventID, total, confirmed, holds), nil
}

// CountByEvents returns one entry per requested event; events without seats get zero counts.
func (r *availabilityRepository) CountByEvents(ctx context.Context, eventIDs []string, now time.Time) (map[string]*domain.Availability, error) {
	out := make(map[string]*domain.Availability, len(eventIDs))
	for _, id := range eventIDs {
		out[id] = domain.NewAvailability(id, 0, 0, 0)
	}
	if len(eventIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT s.event_id,` + availabilityCounts + `
		FROM seats s
		LEFT JOIN reservations r ON r.seat_id = s.id
		WHERE s.event_id = ANY($1)
		GROUP BY s.event_id
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(eventIDs), now)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var eventID string
		var total, confirmed, holds int
		if err := rows.Scan(&eventID, &total, &confirmed, &holds); err != nil {
			return nil, err
		}
		out[eventID] = domain.NewAvailability(eventID, total, confirmed, holds)
	}
	return out, rows.Err()
}
