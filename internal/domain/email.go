package domain

import (
	"context"
	"time"
)

// Email is a rendered message ready for delivery.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
	// Tags travel with the message to the provider, e.g. the reservation id for delivery tracking.
	Tags map[string]string
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg *Email) error
}

// EmailTemplateRenderer turns reservation data into a ready-to-send Email.
type EmailTemplateRenderer interface {
	ReservationConfirmed(data *ReservationConfirmedEmailData) (*Email, error)
}

// ReservationConfirmedEmailData holds data for the reservation confirmation email.
type ReservationConfirmedEmailData struct {
	Email         string
	Username      string
	EventTitle    string
	EventStartAt  time.Time
	Row           string
	Number        string
	ReservationID string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendReservationConfirmed(ctx context.Context, data *ReservationConfirmedEmailData) error
}
