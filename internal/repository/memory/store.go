// Package memory holds process-local implementations of the storage ports. They back the
// server when no database is configured and give the service tests a real ledger to race against.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"seatreservation/internal/domain"
)

// Store keeps the catalog and the reservation rows in memory.
type Store struct {
	mu           sync.RWMutex
	events       map[string]*domain.Event
	seats        map[string]*domain.Seat
	seatsByEvent map[string][]string
	users        map[string]*domain.User
	reservations map[string]*domain.Reservation

	locks sync.Map
}

func NewStore() *Store {
	return &Store{
		events:       make(map[string]*domain.Event),
		seats:        make(map[string]*domain.Seat),
		seatsByEvent: make(map[string][]string),
		users:        make(map[string]*domain.User),
		reservations: make(map[string]*domain.Reservation),
	}
}

// PutEvent adds or replaces an event. An empty ID is filled with a new UUID.
func (s *Store) PutEvent(e *domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	cp := *e
	s.events[e.ID] = &cp
}

// PutUser adds or replaces a user. An empty ID is filled with a new UUID.
func (s *Store) PutUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	cp := *u
	s.users[u.ID] = &cp
}

func copyReservation(r *domain.Reservation) *domain.Reservation {
	if r == nil {
		return nil
	}
	cp := *r
	if r.ExpiresAt != nil {
		exp := *r.ExpiresAt
		cp.ExpiresAt = &exp
	}
	return &cp
}

// sortSeatIDs orders seat IDs by row and then numerically by seat number.
func (s *Store) sortSeatIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := s.seats[ids[i]], s.seats[ids[j]]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		an, aerr := strconv.Atoi(a.Number)
		bn, berr := strconv.Atoi(b.Number)
		if aerr == nil && berr == nil {
			return an < bn
		}
		return a.Number < b.Number
	})
}

type eventRepository struct{ store *Store }

func NewEventRepository(store *Store) domain.EventRepository {
	return &eventRepository{store: store}
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	e, ok := r.store.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	all, _ := r.ListAll(ctx)
	total := len(all)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if params.PageSize <= 0 || end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*domain.Event, 0, len(r.store.events))
	for _, e := range r.store.events {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].StartAt.Before(out[j].StartAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type seatRepository struct{ store *Store }

func NewSeatRepository(store *Store) domain.SeatRepository {
	return &seatRepository{store: store}
}

func (r *seatRepository) GetByID(ctx context.Context, id string) (*domain.Seat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	s, ok := r.store.seats[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *seatRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.SeatWithReservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	ids := r.store.seatsByEvent[eventID]
	out := make([]*domain.SeatWithReservation, 0, len(ids))
	for _, id := range ids {
		seat := *r.store.seats[id]
		out = append(out, &domain.SeatWithReservation{
			Seat:        &seat,
			Reservation: copyReservation(r.store.reservations[id]),
		})
	}
	return out, nil
}

func (r *seatRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.seatsByEvent[eventID]), nil
}

func (r *seatRepository) CreateBulk(ctx context.Context, seats []*domain.Seat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	taken := make(map[[3]string]bool)
	for _, s := range r.store.seats {
		taken[[3]string{s.EventID, s.Row, s.Number}] = true
	}
	for _, s := range seats {
		key := [3]string{s.EventID, s.Row, s.Number}
		if taken[key] {
			return domain.ErrConflict
		}
		if _, ok := r.store.events[s.EventID]; !ok {
			return domain.ErrNotFound
		}
		taken[key] = true
	}
	touched := make(map[string]bool)
	for _, s := range seats {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		cp := *s
		r.store.seats[s.ID] = &cp
		r.store.seatsByEvent[s.EventID] = append(r.store.seatsByEvent[s.EventID], s.ID)
		touched[s.EventID] = true
	}
	for eventID := range touched {
		r.store.sortSeatIDs(r.store.seatsByEvent[eventID])
	}
	return nil
}

type userRepository struct{ store *Store }

func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type availabilityRepository struct{ store *Store }

func NewAvailabilityRepository(store *Store) domain.AvailabilityRepository {
	return &availabilityRepository{store: store}
}

func (r *availabilityRepository) CountByEvent(ctx context.Context, eventID string, now time.Time) (*domain.Availability, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.count(eventID, now), nil
}

func (r *availabilityRepository) CountByEvents(ctx context.Context, eventIDs []string, now time.Time) (map[string]*domain.Availability, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make(map[string]*domain.Availability, len(eventIDs))
	for _, id := range eventIDs {
		out[id] = r.count(id, now)
	}
	return out, nil
}

func (r *availabilityRepository) count(eventID string, now time.Time) *domain.Availability {
	ids := r.store.seatsByEvent[eventID]
	var confirmed, holds int
	for _, id := range ids {
		res := r.store.reservations[id]
		if res == nil {
			continue
		}
		switch res.Status {
		case domain.StatusConfirmed:
			confirmed++
		case domain.StatusHold:
			if res.ExpiresAt != nil && domain.HoldActive(*res.ExpiresAt, now) {
				holds++
			}
		}
	}
	return domain.NewAvailability(eventID, len(ids), confirmed, holds)
}
