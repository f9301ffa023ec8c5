package controllers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"seatreservation/internal/delivery/http/helpers"
	"seatreservation/internal/domain"

	"github.com/gorilla/websocket"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = feedPongWait * 9 / 10
)

// SeatFeedController streams seat status changes of one event over a WebSocket.
// Viewers only receive; anything they send is read and discarded.
type SeatFeedController struct {
	Logger        *slog.Logger
	Events        domain.EventRepository
	Subscriptions domain.SeatSubscriptions
	upgrader      websocket.Upgrader
}

// NewSeatFeedController accepts upgrades from allowedOrigins ("*" for any). Requests
// without an Origin header, or from the same host, are always accepted.
func NewSeatFeedController(logger *slog.Logger, events domain.EventRepository, subs domain.SeatSubscriptions, allowedOrigins []string) *SeatFeedController {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimSuffix(strings.TrimSpace(o), "/"); o != "" {
			allowed[o] = struct{}{}
		}
	}
	return &SeatFeedController{
		Logger:        logger,
		Events:        events,
		Subscriptions: subs,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := allowed["*"]; ok {
					return true
				}
				if _, ok := allowed[origin]; ok {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

// Stream godoc
// @Summary Live seat status feed
// @Description Upgrades to a WebSocket and pushes {seat_id, status, expires_at} frames for every committed hold, confirm or release on the event's seats. No backlog is replayed on connect.
// @Tags events
// @Param eventID path string true "Event ID (UUID)"
// @Success 101 {object} domain.SeatStatusMessage "one frame per seat transition"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /ws/events/{eventID}/seats [get]
func (c *SeatFeedController) Stream(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	if _, err := c.Events.GetByID(r.Context(), eventID); err != nil {
		if status, _ := helpers.StatusForError(err); status >= http.StatusInternalServerError {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		c.Logger.DebugContext(r.Context(), "websocket upgrade failed", "event_id", eventID, "err", err)
		return
	}
	sub := c.Subscriptions.Subscribe(eventID)
	logger := c.Logger.With("event_id", eventID, "subscriber_id", sub.ID())
	logger.Debug("seat feed opened")

	done := make(chan struct{})
	go c.readLoop(conn, done)
	c.writeLoop(conn, sub, done, logger)

	sub.Close()
	_ = conn.Close()
	logger.Debug("seat feed closed")
}

// readLoop consumes control frames so pongs and close frames are processed.
func (c *SeatFeedController) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *SeatFeedController) writeLoop(conn *websocket.Conn, sub domain.Subscription, done <-chan struct{}, logger *slog.Logger) {
	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case msg, ok := <-sub.Messages():
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				logger.Debug("seat feed write failed", "err", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
