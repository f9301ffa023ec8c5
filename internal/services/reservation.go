package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"seatreservation/internal/domain"
)

// ReservationDeps groups the collaborators of the reservation service.
type ReservationDeps struct {
	Ledger   domain.SeatLedger
	Users    domain.UserRepository
	Events   domain.EventRepository
	Seats    domain.SeatRepository
	Notifier domain.SeatNotifier
	// Emails is optional. When set, a confirmation email is sent after a successful confirm.
	Emails domain.EmailService
	Clock  domain.Clock
	Logger *slog.Logger
}

type reservationService struct {
	ledger         domain.SeatLedger
	userRepo       domain.UserRepository
	eventRepo      domain.EventRepository
	seatRepo       domain.SeatRepository
	notifier       domain.SeatNotifier
	emailService   domain.EmailService
	clock          domain.Clock
	logger         *slog.Logger
	holdFor        time.Duration
	contextTimeout time.Duration
}

// NewReservationService returns a ReservationService. holdFor defaults to domain.DefaultHoldDuration.
func NewReservationService(deps ReservationDeps, holdFor, timeout time.Duration) domain.ReservationService {
	if holdFor <= 0 {
		holdFor = domain.DefaultHoldDuration
	}
	if deps.Clock == nil {
		deps.Clock = domain.SystemClock{}
	}
	return &reservationService{
		ledger:         deps.Ledger,
		userRepo:       deps.Users,
		eventRepo:      deps.Events,
		seatRepo:       deps.Seats,
		notifier:       deps.Notifier,
		emailService:   deps.Emails,
		clock:          deps.Clock,
		logger:         deps.Logger,
		holdFor:        holdFor,
		contextTimeout: timeout,
	}
}

type decideFunc func(current domain.SeatState, now time.Time) domain.Decision

func (s *reservationService) Hold(ctx context.Context, eventID, seatID, userID string) (*domain.Reservation, error) {
	return s.transition(ctx, "hold", eventID, seatID, userID, func(current domain.SeatState, now time.Time) domain.Decision {
		return domain.DecideHold(current, now, userID, s.holdFor)
	})
}

func (s *reservationService) Confirm(ctx context.Context, eventID, seatID, userID string) (*domain.Reservation, error) {
	r, err := s.transition(ctx, "confirm", eventID, seatID, userID, func(current domain.SeatState, now time.Time) domain.Decision {
		return domain.DecideConfirm(current, now, userID)
	})
	if err != nil {
		return nil, err
	}
	if s.emailService != nil {
		go s.sendConfirmation(eventID, seatID, userID, r.ID)
	}
	return r, nil
}

func (s *reservationService) Release(ctx context.Context, eventID, seatID, userID string) (*domain.Reservation, error) {
	return s.transition(ctx, "release", eventID, seatID, userID, func(current domain.SeatState, now time.Time) domain.Decision {
		return domain.DecideRelease(current, now, userID)
	})
}

// transition runs authorize, lock, decide, persist and notify for one seat. A transient storage
// failure is retried once; the whole attempt is rolled back before the retry.
func (s *reservationService) transition(ctx context.Context, op, eventID, seatID, userID string, decide decideFunc) (*domain.Reservation, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if eventID == "" || seatID == "" {
		return nil, fmt.Errorf("%w: event and seat are required", domain.ErrInvalidInput)
	}
	if err := s.authorize(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	r, d, err := s.attempt(ctx, eventID, seatID, decide)
	if errors.Is(err, domain.ErrTransient) {
		s.logger.WarnContext(ctx, "transient storage failure, retrying seat transition",
			"op", op, "event_id", eventID, "seat_id", seatID, "error", err)
		r, d, err = s.attempt(ctx, eventID, seatID, decide)
	}
	if err != nil {
		return nil, err
	}

	if d.Superseded {
		s.logger.DebugContext(ctx, "stale hold superseded", "event_id", eventID, "seat_id", seatID)
	}
	s.logger.InfoContext(ctx, "seat transition committed",
		"op", op, "event_id", eventID, "seat_id", seatID, "user_id", userID, "status", r.Status)
	return r, nil
}

func (s *reservationService) authorize(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUnverified
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnverified
		}
		return fmt.Errorf("get user: %w", err)
	}
	if !user.IsVerified {
		return domain.ErrUnverified
	}
	return nil
}

func (s *reservationService) attempt(ctx context.Context, eventID, seatID string, decide decideFunc) (*domain.Reservation, domain.Decision, error) {
	var (
		saved    *domain.Reservation
		decision domain.Decision
		pending  domain.PendingNotification
	)
	err := s.ledger.WithSeatLock(ctx, eventID, seatID, func(ctx context.Context, tx domain.SeatLedgerTx) error {
		current, err := tx.Current(ctx)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		d := decide(domain.StateOf(current), now)
		if !d.Accepted {
			return d.Reason
		}
		r := d.Apply(current, seatID, now)
		if err := tx.Save(ctx, r); err != nil {
			return err
		}
		if s.notifier != nil {
			pending = s.notifier.Prepare(domain.NewSeatStatusMessage(eventID, r))
		}
		saved, decision = r, d
		return nil
	})
	if pending != nil {
		if err != nil {
			pending.Discard()
		} else {
			pending.Commit()
		}
	}
	return saved, decision, err
}

func (s *reservationService) sendConfirmation(eventID, seatID, userID, reservationID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("confirmation email skipped: user lookup failed", "reservation_id", reservationID, "error", err)
		return
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		s.logger.Warn("confirmation email skipped: event lookup failed", "reservation_id", reservationID, "error", err)
		return
	}
	seat, err := s.seatRepo.GetByID(ctx, seatID)
	if err != nil {
		s.logger.Warn("confirmation email skipped: seat lookup failed", "reservation_id", reservationID, "error", err)
		return
	}
	data := &domain.ReservationConfirmedEmailData{
		Email:         user.Email,
		Username:      user.Username,
		EventTitle:    event.Title,
		EventStartAt:  event.StartAt,
		Row:           seat.Row,
		Number:        seat.Number,
		ReservationID: reservationID,
	}
	if err := s.emailService.SendReservationConfirmed(ctx, data); err != nil {
		s.logger.Warn("failed to send confirmation email", "reservation_id", reservationID, "error", err)
	}
}
