package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"seatreservation/internal/delivery/http/helpers"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// HealthResponse is the data payload for GET /healthz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type HealthController struct {
	Logger *slog.Logger
	Checks map[string]HealthCheck
}

func NewHealthController(logger *slog.Logger, checks map[string]HealthCheck) *HealthController {
	return &HealthController{Logger: logger, Checks: checks}
}

// Health godoc
// @Summary Health check
// @Description Pings the configured dependencies. Responds 503 when any of them fails.
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /healthz [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(c.Checks))
	for name := range c.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	for _, name := range names {
		if err := c.Checks[name](ctx); err != nil {
			c.Logger.WarnContext(r.Context(), "health check failed", "check", name, "err", err)
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Checks[name] = "up"
	}
	if resp.Status != "ok" {
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "dependencies unavailable")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}
