package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatreservation/internal/domain"
)

func TestTemplateRenderer_ReservationConfirmed(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)
	data := &domain.ReservationConfirmedEmailData{
		Email:         "ada@example.com",
		Username:      "ada",
		EventTitle:    "Hamlet <Premiere>",
		EventStartAt:  time.Date(2026, 11, 1, 19, 30, 0, 0, time.UTC),
		Row:           "B",
		Number:        "7",
		ReservationID: "res-1",
	}

	msg, err := r.ReservationConfirmed(data)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", msg.To)
	assert.Equal(t, "Your seat B7 for Hamlet <Premiere> is confirmed", msg.Subject)
	assert.Contains(t, msg.HTML, "Hamlet &lt;Premiere&gt;")
	assert.Contains(t, msg.Text, "B7 (row B, number 7)")
	assert.Contains(t, msg.Text, "Sun, 01 Nov 2026 19:30 UTC")
	assert.Equal(t, map[string]string{"kind": "reservation_confirmed", "reservation_id": "res-1"}, msg.Tags)
}

func TestTemplateRenderer_NilData(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	_, err = r.ReservationConfirmed(nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
