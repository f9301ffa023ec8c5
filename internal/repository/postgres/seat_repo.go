package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"seatreservation/internal/domain"
)

type seatRepository struct {
	DB *sql.DB
}

func NewSeatRepository(db *sql.DB) domain.SeatRepository {
	return &seatRepository{DB: db}
}

func (r *seatRepository) GetByID(ctx context.Context, id string) (*domain.Seat, error) {
	s := &domain.Seat{}
	err := r.DB.QueryRowContext(ctx, `SELECT id, event_id, row_label, seat_number FROM seats WHERE id = $1`, id).
		Scan(&s.ID, &s.EventID, &s.Row, &s.Number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, mapError(err)
	}
	return s, nil
}

func (r *seatRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.SeatWithReservation, error) {
	query := `
		SELECT s.id, s.event_id, s.row_label, s.seat_number,
		       r.id, r.user_id, r.status, r.created_at, r.expires_at
		FROM seats s
		LEFT JOIN reservations r ON r.seat_id = s.id
		WHERE s.event_id = $1
		ORDER BY s.row_label, CAST(s.seat_number AS INTEGER)
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		if isMalformedID(err) {
			return []*domain.SeatWithReservation{}, nil
		}
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]*domain.SeatWithReservation, 0)
	for rows.Next() {
		s := &domain.Seat{}
		var (
			resID, userID, status sql.NullString
			createdAt, expiresAt  sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.EventID, &s.Row, &s.Number, &resID, &userID, &status, &createdAt, &expiresAt); err != nil {
			return nil, err
		}
		item := &domain.SeatWithReservation{Seat: s}
		if resID.Valid {
			res := &domain.Reservation{
				ID:        resID.String,
				SeatID:    s.ID,
				UserID:    userID.String,
				Status:    domain.ReservationStatus(status.String),
				CreatedAt: createdAt.Time.UTC(),
			}
			if expiresAt.Valid {
				exp := expiresAt.Time.UTC()
				res.ExpiresAt = &exp
			}
			item.Reservation = res
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *seatRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM seats WHERE event_id = $1`, eventID).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// CreateBulk inserts all seats in one transaction. Seats without an ID get a fresh UUID.
func (r *seatRepository) CreateBulk(ctx context.Context, seats []*domain.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO seats (id, event_id, row_label, seat_number) VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return mapError(err)
	}
	defer stmt.Close()

	for _, s := range seats {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if _, err = stmt.ExecContext(ctx, s.ID, s.EventID, s.Row, s.Number); err != nil {
			return fmt.Errorf("insert seat %s%s: %w", s.Row, s.Number, mapError(err))
		}
	}
	if err = tx.Commit(); err != nil {
		return mapError(err)
	}
	return nil
}
