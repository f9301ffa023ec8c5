package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateOf(t *testing.T) {
	exp := time.Date(2026, 3, 1, 12, 1, 0, 0, time.UTC)

	tests := []struct {
		name string
		r    *Reservation
		want SeatState
	}{
		{name: "no row", r: nil, want: StateNone{}},
		{name: "hold", r: &Reservation{UserID: "u1", Status: StatusHold, ExpiresAt: &exp}, want: StateHold{Holder: "u1", ExpiresAt: exp}},
		{name: "hold without expiry", r: &Reservation{UserID: "u1", Status: StatusHold}, want: StateCancelled{}},
		{name: "confirmed", r: &Reservation{UserID: "u1", Status: StatusConfirmed}, want: StateConfirmed{Holder: "u1"}},
		{name: "cancelled", r: &Reservation{UserID: "u1", Status: StatusCancelled, ExpiresAt: &exp}, want: StateCancelled{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateOf(tt.r))
		})
	}
}

func TestDecideHold(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		current        SeatState
		wantAccepted   bool
		wantSuperseded bool
	}{
		{name: "free seat", current: StateNone{}, wantAccepted: true},
		{name: "cancelled seat", current: StateCancelled{}, wantAccepted: true},
		{name: "active hold", current: StateHold{Holder: "u2", ExpiresAt: now.Add(time.Second)}, wantAccepted: false},
		{name: "hold expiring exactly now", current: StateHold{Holder: "u2", ExpiresAt: now}, wantAccepted: false},
		{name: "stale hold", current: StateHold{Holder: "u2", ExpiresAt: now.Add(-time.Nanosecond)}, wantAccepted: true, wantSuperseded: true},
		{name: "own active hold", current: StateHold{Holder: "u1", ExpiresAt: now.Add(time.Second)}, wantAccepted: false},
		{name: "confirmed", current: StateConfirmed{Holder: "u2"}, wantAccepted: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DecideHold(tt.current, now, "u1", time.Minute)
			assert.Equal(t, tt.wantAccepted, d.Accepted)
			if !tt.wantAccepted {
				require.ErrorIs(t, d.Reason, ErrAlreadyReserved)
				require.ErrorIs(t, d.Reason, ErrConflict)
				return
			}
			assert.Equal(t, StatusHold, d.Status)
			assert.Equal(t, "u1", d.Holder)
			require.NotNil(t, d.ExpiresAt)
			assert.Equal(t, now.Add(time.Minute), *d.ExpiresAt)
			assert.Equal(t, tt.wantSuperseded, d.Superseded)
		})
	}
}

func TestDecideConfirmAndRelease(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	active := StateHold{Holder: "u1", ExpiresAt: now.Add(time.Second)}

	tests := []struct {
		name    string
		current SeatState
		wantErr error
	}{
		{name: "own active hold", current: active},
		{name: "own hold at expiry instant", current: StateHold{Holder: "u1", ExpiresAt: now}},
		{name: "someone else's hold", current: StateHold{Holder: "u2", ExpiresAt: now.Add(time.Second)}, wantErr: ErrHoldNotOwned},
		{name: "own stale hold", current: StateHold{Holder: "u1", ExpiresAt: now.Add(-time.Second)}, wantErr: ErrNoActiveHold},
		{name: "no reservation", current: StateNone{}, wantErr: ErrNoActiveHold},
		{name: "cancelled", current: StateCancelled{}, wantErr: ErrNoActiveHold},
		{name: "confirmed", current: StateConfirmed{Holder: "u1"}, wantErr: ErrAlreadyReserved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confirm := DecideConfirm(tt.current, now, "u1")
			release := DecideRelease(tt.current, now, "u1")
			if tt.wantErr != nil {
				require.ErrorIs(t, confirm.Reason, tt.wantErr)
				require.ErrorIs(t, release.Reason, tt.wantErr)
				assert.False(t, confirm.Accepted)
				assert.False(t, release.Accepted)
				return
			}
			assert.True(t, confirm.Accepted)
			assert.Equal(t, StatusConfirmed, confirm.Status)
			assert.Nil(t, confirm.ExpiresAt)

			assert.True(t, release.Accepted)
			assert.Equal(t, StatusCancelled, release.Status)
			require.NotNil(t, release.ExpiresAt)
		})
	}
}

func TestDecisionApply(t *testing.T) {
	created := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	stale := created.Add(time.Minute)
	current := &Reservation{ID: "res-1", SeatID: "s-1", UserID: "u2", Status: StatusHold, CreatedAt: created, ExpiresAt: &stale}

	hold := DecideHold(StateOf(current), now, "u1", time.Minute).Apply(current, "s-1", now)
	assert.Equal(t, "res-1", hold.ID)
	assert.Equal(t, "u1", hold.UserID)
	assert.Equal(t, now, hold.CreatedAt)

	ownExp := now.Add(time.Minute)
	own := &Reservation{ID: "res-1", SeatID: "s-1", UserID: "u1", Status: StatusHold, CreatedAt: created, ExpiresAt: &ownExp}
	confirmed := DecideConfirm(StateOf(own), now, "u1").Apply(own, "s-1", now)
	assert.Equal(t, created, confirmed.CreatedAt)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	fresh := DecideHold(StateNone{}, now, "u1", time.Minute).Apply(nil, "s-1", now)
	assert.Empty(t, fresh.ID)
	assert.Equal(t, "s-1", fresh.SeatID)
}

func TestSeatWithReservation_View(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seat := &Seat{ID: "s-1", Row: "A", Number: "3"}
	active := now.Add(time.Second)
	stale := now.Add(-time.Second)

	tests := []struct {
		name       string
		r          *Reservation
		wantStatus SeatDisplayStatus
		wantExpiry bool
	}{
		{name: "free", r: nil, wantStatus: SeatStatusNone},
		{name: "active hold", r: &Reservation{Status: StatusHold, ExpiresAt: &active}, wantStatus: SeatStatusHold, wantExpiry: true},
		{name: "stale hold", r: &Reservation{Status: StatusHold, ExpiresAt: &stale}, wantStatus: SeatStatusNone},
		{name: "confirmed", r: &Reservation{Status: StatusConfirmed}, wantStatus: SeatStatusConfirmed},
		{name: "cancelled", r: &Reservation{Status: StatusCancelled, ExpiresAt: &active}, wantStatus: SeatStatusNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := (&SeatWithReservation{Seat: seat, Reservation: tt.r}).View(now)
			assert.Equal(t, tt.wantStatus, v.Status)
			assert.Equal(t, tt.wantExpiry, v.ExpiresAt != nil)
			assert.Equal(t, "A", v.Row)
		})
	}
}

func TestNewAvailability(t *testing.T) {
	a := NewAvailability("ev-1", 10, 3, 2)
	assert.Equal(t, 5, a.AvailableSeats)
}
