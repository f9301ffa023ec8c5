package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"seatreservation/internal/domain"
)

type seatLedger struct {
	DB *sql.DB
}

// NewSeatLedger returns a SeatLedger that serializes work on a seat with a row lock on the seat.
// The lock is taken on the seats row, which always exists, so the very first hold on a seat
// is serialized the same way as every later transition.
func NewSeatLedger(db *sql.DB) domain.SeatLedger {
	return &seatLedger{DB: db}
}

func (l *seatLedger) WithSeatLock(ctx context.Context, eventID, seatID string, fn func(ctx context.Context, tx domain.SeatLedgerTx) error) error {
	tx, err := l.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin seat transaction: %w", mapError(err))
	}
	// No-op once committed; also releases the row lock if fn panics.
	defer func() { _ = tx.Rollback() }()

	var lockedID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM seats
		WHERE id = $1 AND event_id = $2
		FOR UPDATE
	`, seatID, eventID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock seat: %w", mapError(err))
	}

	if err = fn(ctx, &seatLedgerTx{tx: tx, seatID: lockedID}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seat transaction: %w", mapCommitError(err))
	}
	return nil
}

type seatLedgerTx struct {
	tx     *sql.Tx
	seatID string
}

func (t *seatLedgerTx) Current(ctx context.Context) (*domain.Reservation, error) {
	query := `
		SELECT id, seat_id, user_id, status, created_at, expires_at
		FROM reservations
		WHERE seat_id = $1
	`
	r := &domain.Reservation{}
	var expiresNull sql.NullTime
	err := t.tx.QueryRowContext(ctx, query, t.seatID).Scan(
		&r.ID, &r.SeatID, &r.UserID, &r.Status, &r.CreatedAt, &expiresNull,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read reservation: %w", mapError(err))
	}
	if expiresNull.Valid {
		exp := expiresNull.Time.UTC()
		r.ExpiresAt = &exp
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}

func (t *seatLedgerTx) Save(ctx context.Context, r *domain.Reservation) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	var expires sql.NullTime
	if r.ExpiresAt != nil {
		expires = sql.NullTime{Time: *r.ExpiresAt, Valid: true}
	}
	query := `
		INSERT INTO reservations (seat_id, user_id, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (seat_id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			status = EXCLUDED.status,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at
		RETURNING id, created_at
	`
	r.SeatID = t.seatID
	err := t.tx.QueryRowContext(ctx, query, t.seatID, r.UserID, r.Status, r.CreatedAt, expires).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("save reservation: %w", mapError(err))
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return nil
}
