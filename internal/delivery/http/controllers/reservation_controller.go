package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"seatreservation/internal/delivery/http/helpers"
	"seatreservation/internal/delivery/http/middleware"
	"seatreservation/internal/domain"
)

// HoldResponse is the data payload for POST /events/{eventID}/seats/{seatID}/reserve (200).
type HoldResponse struct {
	ReservationID string                   `json:"reservation_id"`
	SeatID        string                   `json:"seat_id"`
	Status        domain.ReservationStatus `json:"status"`
	ExpiresAt     *time.Time               `json:"expires_at"`
}

// HoldSuccessResponse is the success response envelope for the reserve endpoint.
type HoldSuccessResponse struct {
	Data  HoldResponse      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ReservationStatusResponse is the data payload for the confirm and release endpoints (200).
type ReservationStatusResponse struct {
	ReservationID string                   `json:"reservation_id"`
	SeatID        string                   `json:"seat_id"`
	Status        domain.ReservationStatus `json:"status"`
}

// ReservationStatusSuccessResponse is the success response envelope for confirm and release.
type ReservationStatusSuccessResponse struct {
	Data  ReservationStatusResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type ReservationController struct {
	Logger  *slog.Logger
	Service domain.ReservationService
}

func NewReservationController(logger *slog.Logger, svc domain.ReservationService) *ReservationController {
	return &ReservationController{
		Logger:  logger,
		Service: svc,
	}
}

type transitionFunc func(ctx context.Context, eventID, seatID, userID string) (*domain.Reservation, error)

// Reserve godoc
// @Summary Hold a seat
// @Description Places a time-limited hold on the seat for the authenticated, verified user. Exactly one of any number of concurrent requests for the same free seat succeeds; the rest get 409.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param seatID path string true "Seat ID (UUID)"
// @Success 200 {object} controllers.HoldSuccessResponse "data contains reservation_id and expires_at"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /events/{eventID}/seats/{seatID}/reserve [post]
func (c *ReservationController) Reserve(w http.ResponseWriter, r *http.Request) {
	res, ok := c.transition(w, r, "hold", c.Service.Hold)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HoldResponse{
		ReservationID: res.ID,
		SeatID:        res.SeatID,
		Status:        res.Status,
		ExpiresAt:     res.ExpiresAt,
	})
}

// Confirm godoc
// @Summary Confirm a held seat
// @Description Turns the caller's active hold into a confirmed reservation and sends a confirmation email.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param seatID path string true "Seat ID (UUID)"
// @Success 200 {object} controllers.ReservationStatusSuccessResponse "data contains reservation_id and status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /events/{eventID}/seats/{seatID}/confirm [post]
func (c *ReservationController) Confirm(w http.ResponseWriter, r *http.Request) {
	c.writeStatus(w, r, "confirm", c.Service.Confirm)
}

// Release godoc
// @Summary Release a held seat
// @Description Gives up the caller's active hold so the seat becomes available immediately.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param seatID path string true "Seat ID (UUID)"
// @Success 200 {object} controllers.ReservationStatusSuccessResponse "data contains reservation_id and status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /events/{eventID}/seats/{seatID}/release [post]
func (c *ReservationController) Release(w http.ResponseWriter, r *http.Request) {
	c.writeStatus(w, r, "release", c.Service.Release)
}

// RequirePOST answers any other method on the seat mutation routes with 400.
func (c *ReservationController) RequirePOST(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "method "+r.Method+" not allowed, use POST")
}

func (c *ReservationController) writeStatus(w http.ResponseWriter, r *http.Request, op string, fn transitionFunc) {
	res, ok := c.transition(w, r, op, fn)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ReservationStatusResponse{
		ReservationID: res.ID,
		SeatID:        res.SeatID,
		Status:        res.Status,
	})
}

func (c *ReservationController) transition(w http.ResponseWriter, r *http.Request, op string, fn transitionFunc) (*domain.Reservation, bool) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return nil, false
	}
	seatID, ok := helpers.PathUUID(w, r, "seatID")
	if !ok {
		return nil, false
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return nil, false
	}
	res, err := fn(r.Context(), eventID, seatID, userID)
	if err != nil {
		c.logFailure(r, op, eventID, seatID, userID, err)
		helpers.WriteDomainError(w, err)
		return nil, false
	}
	return res, true
}

func (c *ReservationController) logFailure(r *http.Request, op, eventID, seatID, userID string, err error) {
	attrs := []any{"op", op, "event_id", eventID, "seat_id", seatID, "user_id", userID, "err", err}
	switch {
	case errors.Is(err, domain.ErrTransient), errors.Is(err, domain.ErrCommitUnknown):
		c.Logger.WarnContext(r.Context(), "seat transition unavailable", attrs...)
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrInvalidInput):
		c.Logger.DebugContext(r.Context(), "seat transition rejected", attrs...)
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", append(attrs, "path", r.URL.Path, "method", r.Method)...)
	}
}
