package controllers

import (
	"log/slog"
	"net/http"

	"seatreservation/internal/delivery/http/helpers"
	"seatreservation/internal/domain"
)

// EventListItem is one entry of GET /events: the event with its current seat counts.
type EventListItem struct {
	Event          *domain.Event `json:"event"`
	TotalSeats     int           `json:"total_seats"`
	ConfirmedSeats int           `json:"confirmed_seats"`
	HoldSeats      int           `json:"hold_seats"`
	AvailableSeats int           `json:"available_seats"`
}

// ListEventsResponse is the data payload for GET /events (200).
type ListEventsResponse struct {
	Items      []EventListItem        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// AvailabilitySuccessResponse is the success response envelope for GET /events/{eventID}/availability (200).
type AvailabilitySuccessResponse struct {
	Data  domain.Availability `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// SeatMapSuccessResponse is the success response envelope for GET /events/{eventID}/seats (200).
type SeatMapSuccessResponse struct {
	Data  []domain.SeatView `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger       *slog.Logger
	Availability domain.AvailabilityService
	SeatMap      domain.SeatMapService
}

func NewEventController(logger *slog.Logger, availability domain.AvailabilityService, seatMap domain.SeatMapService) *EventController {
	return &EventController{
		Logger:       logger,
		Availability: availability,
		SeatMap:      seatMap,
	}
}

// ListEvents godoc
// @Summary List events with availability
// @Description Returns events ordered by start time, each with total, confirmed, held and available seat counts.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains items and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	list, total, err := c.Availability.ListEvents(r.Context(), params)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	items := make([]EventListItem, 0, len(list))
	for _, ea := range list {
		item := EventListItem{Event: ea.Event}
		if a := ea.Availability; a != nil {
			item.TotalSeats = a.TotalSeats
			item.ConfirmedSeats = a.ConfirmedSeats
			item.HoldSeats = a.HoldSeats
			item.AvailableSeats = a.AvailableSeats
		}
		items = append(items, item)
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: items, Pagination: meta})
}

// GetAvailability godoc
// @Summary Seat availability for an event
// @Description Counts seats as confirmed, actively held or available at the time of the request. Expired holds count as available.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.AvailabilitySuccessResponse "data contains the seat counts"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/availability [get]
func (c *EventController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	a, err := c.Availability.ForEvent(r.Context(), eventID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, a)
}

// GetSeatMap godoc
// @Summary Seat map for an event
// @Description Lists every seat ordered by row then seat number with its display status (NONE, HOLD or CONFIRMED). expires_at is set only for active holds.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.SeatMapSuccessResponse "data contains the seats"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/seats [get]
func (c *EventController) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	seats, err := c.SeatMap.SeatMap(r.Context(), eventID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if seats == nil {
		seats = []domain.SeatView{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, seats)
}

func (c *EventController) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status, _ := helpers.StatusForError(err); status >= http.StatusInternalServerError {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteDomainError(w, err)
}
