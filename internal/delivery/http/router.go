package http

import (
	"net/http"

	"seatreservation/internal/delivery/http/controllers"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Wrapper decorates a handler, e.g. middleware.RequireAuth or middleware.RateLimit.
type Wrapper func(http.HandlerFunc) http.HandlerFunc

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Health       *controllers.HealthController
	Events       *controllers.EventController
	Reservations *controllers.ReservationController
	SeatFeed     *controllers.SeatFeedController
}

// NewRouter initializes the HTTP router with all application routes.
// Seat mutations pass through requireAuth, then rateLimit.
func NewRouter(c Controllers, requireAuth, rateLimit Wrapper) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", c.Health.Health)

	// Read side
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("GET /events/{eventID}/availability", c.Events.GetAvailability)
	mux.HandleFunc("GET /events/{eventID}/seats", c.Events.GetSeatMap)
	mux.HandleFunc("GET /ws/events/{eventID}/seats", c.SeatFeed.Stream)

	// Seat mutations
	mutations := map[string]http.HandlerFunc{
		"reserve": c.Reservations.Reserve,
		"confirm": c.Reservations.Confirm,
		"release": c.Reservations.Release,
	}
	for action, handler := range mutations {
		path := "/events/{eventID}/seats/{seatID}/" + action
		mux.HandleFunc("POST "+path, requireAuth(rateLimit(handler)))
		mux.HandleFunc(path, c.Reservations.RequirePOST)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
