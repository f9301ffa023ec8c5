package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seatreservation/internal/delivery/http/helpers"
	"seatreservation/internal/delivery/http/middleware"
	"seatreservation/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testEventID = "0b6f7a52-1f57-4d7c-8b61-2f6d3c1c8a01"
	testSeatID  = "7c1e2d3f-4a5b-4c6d-8e9f-0a1b2c3d4e5f"
)

// fakeReservationService implements domain.ReservationService for handler tests.
type fakeReservationService struct {
	result  *domain.Reservation
	err     error
	lastOp  string
	lastArg [3]string
}

func (f *fakeReservationService) record(op, eventID, seatID, userID string) (*domain.Reservation, error) {
	f.lastOp = op
	f.lastArg = [3]string{eventID, seatID, userID}
	return f.result, f.err
}

func (f *fakeReservationService) Hold(_ context.Context, eventID, seatID, userID string) (*domain.Reservation, error) {
	return f.record("hold", eventID, seatID, userID)
}

func (f *fakeReservationService) Confirm(_ context.Context, eventID, seatID, userID string) (*domain.Reservation, error) {
	return f.record("confirm", eventID, seatID, userID)
}

func (f *fakeReservationService) Release(_ context.Context, eventID, seatID, userID string) (*domain.Reservation, error) {
	return f.record("release", eventID, seatID, userID)
}

func seatRequest(method, action, eventID, seatID, userID string) *http.Request {
	req := httptest.NewRequest(method, fmt.Sprintf("/events/%s/seats/%s/%s", eventID, seatID, action), nil)
	req.SetPathValue("eventID", eventID)
	req.SetPathValue("seatID", seatID)
	if userID != "" {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	return req
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	if data != nil && raw.Error == nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Error
}

func TestReservationController_Reserve(t *testing.T) {
	expires := time.Date(2026, 5, 1, 19, 1, 0, 0, time.UTC)
	held := &domain.Reservation{ID: "res-1", SeatID: testSeatID, UserID: "user-1", Status: domain.StatusHold, ExpiresAt: &expires}

	tests := []struct {
		name       string
		eventID    string
		seatID     string
		userID     string
		svc        *fakeReservationService
		wantStatus int
		wantCode   string
		wantCalled bool
	}{
		{name: "success", eventID: testEventID, seatID: testSeatID, userID: "user-1", svc: &fakeReservationService{result: held}, wantStatus: http.StatusOK, wantCalled: true},
		{name: "malformed event id", eventID: "42", seatID: testSeatID, userID: "user-1", svc: &fakeReservationService{}, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "malformed seat id", eventID: testEventID, seatID: "A1", userID: "user-1", svc: &fakeReservationService{}, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "no requester", eventID: testEventID, seatID: testSeatID, svc: &fakeReservationService{}, wantStatus: http.StatusUnauthorized, wantCode: helpers.ErrCodeUnauthorized},
		{name: "unverified", eventID: testEventID, seatID: testSeatID, userID: "user-1", svc: &fakeReservationService{err: fmt.Errorf("hold: %w", domain.ErrUnverified)}, wantStatus: http.StatusForbidden, wantCode: helpers.ErrCodeForbidden, wantCalled: true},
		{name: "unknown seat", eventID: testEventID, seatID: testSeatID, userID: "user-1", svc: &fakeReservationService{err: fmt.Errorf("hold: %w", domain.ErrNotFound)}, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound, wantCalled: true},
		{name: "already reserved", eventID: testEventID, seatID: testSeatID, userID: "user-1", svc: &fakeReservationService{err: fmt.Errorf("hold: %w", domain.ErrAlreadyReserved)}, wantStatus: http.StatusConflict, wantCode: helpers.ErrCodeConflict, wantCalled: true},
		{name: "storage busy", eventID: testEventID, seatID: testSeatID, userID: "user-1", svc: &fakeReservationService{err: fmt.Errorf("hold: %w", domain.ErrTransient)}, wantStatus: http.StatusServiceUnavailable, wantCode: helpers.ErrCodeUnavailable, wantCalled: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewReservationController(testLogger, tt.svc)
			rr := httptest.NewRecorder()
			c.Reserve(rr, seatRequest(http.MethodPost, "reserve", tt.eventID, tt.seatID, tt.userID))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, tt.svc.lastOp == "hold")
			var got HoldResponse
			apiErr := decodeEnvelope(t, rr, &got)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, [3]string{testEventID, testSeatID, "user-1"}, tt.svc.lastArg)
			assert.Equal(t, "res-1", got.ReservationID)
			assert.Equal(t, domain.StatusHold, got.Status)
			require.NotNil(t, got.ExpiresAt)
			assert.True(t, expires.Equal(*got.ExpiresAt))
		})
	}
}

func TestReservationController_ConfirmAndRelease(t *testing.T) {
	tests := []struct {
		name       string
		action     string
		svc        *fakeReservationService
		wantStatus int
		wantState  domain.ReservationStatus
	}{
		{name: "confirm", action: "confirm", svc: &fakeReservationService{result: &domain.Reservation{ID: "res-1", SeatID: testSeatID, Status: domain.StatusConfirmed}}, wantStatus: http.StatusOK, wantState: domain.StatusConfirmed},
		{name: "release", action: "release", svc: &fakeReservationService{result: &domain.Reservation{ID: "res-1", SeatID: testSeatID, Status: domain.StatusCancelled}}, wantStatus: http.StatusOK, wantState: domain.StatusCancelled},
		{name: "confirm expired hold", action: "confirm", svc: &fakeReservationService{err: domain.ErrNoActiveHold}, wantStatus: http.StatusConflict},
		{name: "release someone else's hold", action: "release", svc: &fakeReservationService{err: domain.ErrHoldNotOwned}, wantStatus: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewReservationController(testLogger, tt.svc)
			handler := map[string]http.HandlerFunc{"confirm": c.Confirm, "release": c.Release}[tt.action]
			rr := httptest.NewRecorder()
			handler(rr, seatRequest(http.MethodPost, tt.action, testEventID, testSeatID, "user-1"))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.action, tt.svc.lastOp)
			var got ReservationStatusResponse
			apiErr := decodeEnvelope(t, rr, &got)
			if tt.wantStatus != http.StatusOK {
				require.NotNil(t, apiErr)
				assert.Equal(t, helpers.ErrCodeConflict, apiErr.Code)
				return
			}
			assert.Equal(t, "res-1", got.ReservationID)
			assert.Equal(t, tt.wantState, got.Status)
		})
	}
}

func TestReservationController_RequirePOST(t *testing.T) {
	c := NewReservationController(testLogger, &fakeReservationService{})
	rr := httptest.NewRecorder()
	c.RequirePOST(rr, seatRequest(http.MethodGet, "reserve", testEventID, testSeatID, ""))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
	apiErr := decodeEnvelope(t, rr, nil)
	require.NotNil(t, apiErr)
	assert.Equal(t, helpers.ErrCodeBadRequest, apiErr.Code)
}
