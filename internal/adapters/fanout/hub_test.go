package fanout

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatreservation/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHub_PublishReachesOnlyEventSubscribers(t *testing.T) {
	hub := NewHub(4, discardLogger())
	a := hub.Subscribe("ev-1")
	b := hub.Subscribe("ev-1")
	other := hub.Subscribe("ev-2")
	defer a.Close()
	defer b.Close()
	defer other.Close()

	msg := domain.SeatStatusMessage{EventID: "ev-1", SeatID: "s-1", Status: domain.StatusConfirmed}
	require.NoError(t, hub.Publish(context.Background(), msg))

	assert.Equal(t, msg, <-a.Messages())
	assert.Equal(t, msg, <-b.Messages())
	select {
	case m := <-other.Messages():
		t.Fatalf("unexpected message for other event: %+v", m)
	default:
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub(1, discardLogger())
	slow := hub.Subscribe("ev-1")
	defer slow.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			_ = hub.Publish(context.Background(), domain.SeatStatusMessage{EventID: "ev-1", SeatID: "s-1"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	assert.Len(t, slow.Messages(), 1)
}

func TestHub_CloseUnregisters(t *testing.T) {
	hub := NewHub(1, discardLogger())
	sub := hub.Subscribe("ev-1")
	assert.Equal(t, 1, hub.SubscriberCount("ev-1"))
	assert.NotEmpty(t, sub.ID())

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, hub.SubscriberCount("ev-1"))
	_, open := <-sub.Messages()
	assert.False(t, open)
	require.NoError(t, hub.Publish(context.Background(), domain.SeatStatusMessage{EventID: "ev-1", SeatID: "s-1"}))
}

func TestCodec_RoundTripKeepsEventID(t *testing.T) {
	exp := time.Date(2026, 3, 1, 12, 1, 0, 0, time.UTC)
	msg := domain.SeatStatusMessage{EventID: "ev-1", SeatID: "s-1", Status: domain.StatusHold, ExpiresAt: &exp}

	body, err := encodeMessage(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event_id":"ev-1","seat_id":"s-1","status":"HOLD","expires_at":"2026-03-01T12:01:00Z"}`, string(body))

	got, err := decodeMessage(body)
	require.NoError(t, err)
	assert.Equal(t, msg.EventID, got.EventID)
	assert.Equal(t, msg.SeatID, got.SeatID)
	assert.True(t, exp.Equal(*got.ExpiresAt))

	_, err = decodeMessage([]byte(`{"seat_id":"s-1"}`))
	require.Error(t, err)
}
