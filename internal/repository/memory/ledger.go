package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"seatreservation/internal/domain"
)

type seatLedger struct {
	store *Store
}

// NewSeatLedger returns a SeatLedger serializing work per seat inside this process.
func NewSeatLedger(store *Store) domain.SeatLedger {
	return &seatLedger{store: store}
}

// seatLock is a one-slot semaphore so that waiting can be abandoned when ctx ends.
func (s *Store) seatLock(seatID string) chan struct{} {
	v, _ := s.locks.LoadOrStore(seatID, make(chan struct{}, 1))
	return v.(chan struct{})
}

func (l *seatLedger) WithSeatLock(ctx context.Context, eventID, seatID string, fn func(ctx context.Context, tx domain.SeatLedgerTx) error) error {
	l.store.mu.RLock()
	seat, ok := l.store.seats[seatID]
	l.store.mu.RUnlock()
	if !ok || seat.EventID != eventID {
		return domain.ErrNotFound
	}

	lock := l.store.seatLock(seatID)
	select {
	case lock <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-lock }()

	tx := &seatLedgerTx{store: l.store, seatID: seatID}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if tx.staged != nil {
		l.store.mu.Lock()
		l.store.reservations[seatID] = tx.staged
		l.store.mu.Unlock()
	}
	return nil
}

type seatLedgerTx struct {
	store  *Store
	seatID string
	staged *domain.Reservation
}

func (t *seatLedgerTx) Current(ctx context.Context) (*domain.Reservation, error) {
	if t.staged != nil {
		return copyReservation(t.staged), nil
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return copyReservation(t.store.reservations[t.seatID]), nil
}

func (t *seatLedgerTx) Save(ctx context.Context, r *domain.Reservation) error {
	existing, _ := t.Current(ctx)
	if existing != nil {
		r.ID = existing.ID
	} else if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.SeatID = t.seatID
	t.staged = copyReservation(r)
	return nil
}
