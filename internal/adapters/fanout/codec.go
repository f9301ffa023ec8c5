package fanout

import (
	"encoding/json"
	"fmt"

	"seatreservation/internal/domain"
)

// wireMessage is the broker payload. The seat message itself keeps the event ID out of
// its JSON, so it travels alongside.
type wireMessage struct {
	EventID string `json:"event_id"`
	domain.SeatStatusMessage
}

func encodeMessage(msg domain.SeatStatusMessage) ([]byte, error) {
	body, err := json.Marshal(wireMessage{EventID: msg.EventID, SeatStatusMessage: msg})
	if err != nil {
		return nil, fmt.Errorf("encode seat message: %w", err)
	}
	return body, nil
}

func decodeMessage(body []byte) (domain.SeatStatusMessage, error) {
	var w wireMessage
	if err := json.Unmarshal(body, &w); err != nil {
		return domain.SeatStatusMessage{}, fmt.Errorf("decode seat message: %w", err)
	}
	if w.EventID == "" || w.SeatID == "" {
		return domain.SeatStatusMessage{}, fmt.Errorf("decode seat message: missing event or seat id")
	}
	msg := w.SeatStatusMessage
	msg.EventID = w.EventID
	return msg, nil
}
