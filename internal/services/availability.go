package services

import (
	"context"
	"fmt"
	"time"

	"seatreservation/internal/domain"
)

type availabilityService struct {
	eventRepo        domain.EventRepository
	availabilityRepo domain.AvailabilityRepository
	clock            domain.Clock
	contextTimeout   time.Duration
}

func NewAvailabilityService(eventRepo domain.EventRepository, availabilityRepo domain.AvailabilityRepository, clock domain.Clock, timeout time.Duration) domain.AvailabilityService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &availabilityService{
		eventRepo:        eventRepo,
		availabilityRepo: availabilityRepo,
		clock:            clock,
		contextTimeout:   timeout,
	}
}

func (s *availabilityService) ForEvent(ctx context.Context, eventID string) (*domain.Availability, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	a, err := s.availabilityRepo.CountByEvent(ctx, eventID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("count seats: %w", err)
	}
	return a, nil
}

func (s *availabilityService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.EventAvailability, int, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	counts, err := s.availabilityRepo.CountByEvents(ctx, ids, s.clock.Now())
	if err != nil {
		return nil, 0, fmt.Errorf("count seats: %w", err)
	}
	out := make([]*domain.EventAvailability, 0, len(events))
	for _, e := range events {
		a := counts[e.ID]
		if a == nil {
			a = domain.NewAvailability(e.ID, 0, 0, 0)
		}
		out = append(out, &domain.EventAvailability{Event: e, Availability: a})
	}
	return out, total, nil
}

type seatMapService struct {
	eventRepo      domain.EventRepository
	seatRepo       domain.SeatRepository
	clock          domain.Clock
	contextTimeout time.Duration
}

func NewSeatMapService(eventRepo domain.EventRepository, seatRepo domain.SeatRepository, clock domain.Clock, timeout time.Duration) domain.SeatMapService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &seatMapService{eventRepo: eventRepo, seatRepo: seatRepo, clock: clock, contextTimeout: timeout}
}

// SeatMap returns the event's seats ordered by row and number. Stale holds show as NONE.
func (s *seatMapService) SeatMap(ctx context.Context, eventID string) ([]domain.SeatView, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	seats, err := s.seatRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	now := s.clock.Now()
	views := make([]domain.SeatView, 0, len(seats))
	for _, seat := range seats {
		views = append(views, seat.View(now))
	}
	return views, nil
}
