package services

import (
	"context"
	"fmt"
	"log/slog"

	"seatreservation/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendReservationConfirmed sends the confirmation email for a confirmed seat.
func (s *emailService) SendReservationConfirmed(ctx context.Context, data *domain.ReservationConfirmedEmailData) error {
	if data == nil {
		return fmt.Errorf("reservation confirmed data is nil")
	}
	if data.Email == "" {
		return fmt.Errorf("reservation confirmed email: %w: recipient is empty", domain.ErrInvalidInput)
	}
	msg, err := s.renderer.ReservationConfirmed(data)
	if err != nil {
		return fmt.Errorf("failed to render reservation confirmed email: %w", err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reservation confirmed email: %w", err)
	}
	s.logger.InfoContext(ctx, "reservation confirmed email sent", "reservation_id", data.ReservationID)
	return nil
}
