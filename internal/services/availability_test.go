package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"seatreservation/internal/domain"
	"seatreservation/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSeats(t *testing.T, store *memory.Store, eventID string, n int) []*domain.Seat {
	t.Helper()
	seats := make([]*domain.Seat, 0, n)
	for i := 1; i <= n; i++ {
		seats = append(seats, domain.NewSeat(eventID, "A", strconv.Itoa(i)))
	}
	require.NoError(t, memory.NewSeatRepository(store).CreateBulk(context.Background(), seats))
	return seats
}

func TestAvailabilityService_ForEvent(t *testing.T) {
	f := newReservationFixture(t, 0)
	ctx := context.Background()
	seats := seedSeats(t, f.store, f.event.ID, 10)

	// 3 confirmed, 2 active holds, 1 stale hold.
	for _, s := range seats[:3] {
		_, err := f.svc.Hold(ctx, f.event.ID, s.ID, f.alice.ID)
		require.NoError(t, err)
		_, err = f.svc.Confirm(ctx, f.event.ID, s.ID, f.alice.ID)
		require.NoError(t, err)
	}
	_, err := f.svc.Hold(ctx, f.event.ID, seats[3].ID, f.bob.ID)
	require.NoError(t, err)
	f.clock.Advance(2 * time.Minute)
	for _, s := range seats[4:6] {
		_, err := f.svc.Hold(ctx, f.event.ID, s.ID, f.bob.ID)
		require.NoError(t, err)
	}

	svc := NewAvailabilityService(memory.NewEventRepository(f.store), memory.NewAvailabilityRepository(f.store), f.clock, time.Second)
	got, err := svc.ForEvent(ctx, f.event.ID)
	require.NoError(t, err)
	assert.Equal(t, &domain.Availability{
		EventID:        f.event.ID,
		TotalSeats:     10,
		ConfirmedSeats: 3,
		HoldSeats:      2,
		AvailableSeats: 5,
	}, got)

	// Reads never change state: once the remaining holds lapse they simply stop counting.
	f.clock.Advance(2 * time.Minute)
	got, err = svc.ForEvent(ctx, f.event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.HoldSeats)
	assert.Equal(t, 7, got.AvailableSeats)

	_, err = svc.ForEvent(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAvailabilityService_ListEvents(t *testing.T) {
	store := memory.NewStore()
	base := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)
	late := &domain.Event{Title: "Late", StartAt: base.Add(2 * time.Hour)}
	early := &domain.Event{Title: "Early", StartAt: base}
	store.PutEvent(late)
	store.PutEvent(early)
	seedSeats(t, store, early.ID, 4)

	svc := NewAvailabilityService(memory.NewEventRepository(store), memory.NewAvailabilityRepository(store), newFakeClock(), time.Second)
	got, total, err := svc.ListEvents(context.Background(), domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, got, 2)
	assert.Equal(t, "Early", got[0].Event.Title)
	assert.Equal(t, 4, got[0].Availability.AvailableSeats)
	assert.Equal(t, "Late", got[1].Event.Title)
	assert.Equal(t, 0, got[1].Availability.TotalSeats)
}

func TestSeatMapService_SeatMap(t *testing.T) {
	f := newReservationFixture(t, 3)
	ctx := context.Background()
	start := f.clock.Now()

	_, err := f.svc.Hold(ctx, f.event.ID, f.seats[0].ID, f.alice.ID)
	require.NoError(t, err)
	_, err = f.svc.Hold(ctx, f.event.ID, f.seats[1].ID, f.bob.ID)
	require.NoError(t, err)
	_, err = f.svc.Confirm(ctx, f.event.ID, f.seats[1].ID, f.bob.ID)
	require.NoError(t, err)

	svc := NewSeatMapService(memory.NewEventRepository(f.store), memory.NewSeatRepository(f.store), f.clock, time.Second)
	views, err := svc.SeatMap(ctx, f.event.ID)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, domain.SeatStatusHold, views[0].Status)
	require.NotNil(t, views[0].ExpiresAt)
	assert.Equal(t, start.Add(time.Minute), *views[0].ExpiresAt)
	assert.Equal(t, domain.SeatStatusConfirmed, views[1].Status)
	assert.Nil(t, views[1].ExpiresAt)
	assert.Equal(t, domain.SeatStatusNone, views[2].Status)

	f.clock.Advance(time.Minute + time.Second)
	views, err = svc.SeatMap(ctx, f.event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SeatStatusNone, views[0].Status)
	assert.Nil(t, views[0].ExpiresAt)

	_, err = svc.SeatMap(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
