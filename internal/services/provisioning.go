package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"seatreservation/internal/domain"
)

type provisioningService struct {
	eventRepo domain.EventRepository
	seatRepo  domain.SeatRepository
	logger    *slog.Logger
}

func NewProvisioningService(eventRepo domain.EventRepository, seatRepo domain.SeatRepository, logger *slog.Logger) domain.ProvisioningService {
	return &provisioningService{eventRepo: eventRepo, seatRepo: seatRepo, logger: logger}
}

// GenerateSeats lays out rows x perRow seats, numbered from 1, on each target event that has no seats yet.
func (s *provisioningService) GenerateSeats(ctx context.Context, eventID, rows string, perRow int) (*domain.ProvisioningReport, error) {
	labels, err := parseRowLabels(rows)
	if err != nil {
		return nil, err
	}
	if perRow <= 0 {
		return nil, fmt.Errorf("%w: seats per row must be at least 1", domain.ErrInvalidInput)
	}

	var events []*domain.Event
	if eventID != "" {
		e, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("get event %s: %w", eventID, err)
		}
		events = []*domain.Event{e}
	} else {
		events, err = s.eventRepo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
	}

	report := &domain.ProvisioningReport{Created: map[string]int{}, Skipped: map[string]int{}}
	for _, e := range events {
		existing, err := s.seatRepo.CountByEvent(ctx, e.ID)
		if err != nil {
			return report, fmt.Errorf("count seats for %s: %w", e.ID, err)
		}
		if existing > 0 {
			report.Skipped[e.ID] = existing
			s.logger.InfoContext(ctx, "event already has seats, skipping", "event_id", e.ID, "title", e.Title, "existing", existing)
			continue
		}

		batch := make([]*domain.Seat, 0, len(labels)*perRow)
		for _, row := range labels {
			for n := 1; n <= perRow; n++ {
				batch = append(batch, domain.NewSeat(e.ID, row, strconv.Itoa(n)))
			}
		}
		if err := s.seatRepo.CreateBulk(ctx, batch); err != nil {
			return report, fmt.Errorf("create seats for %s: %w", e.ID, err)
		}
		report.Created[e.ID] = len(batch)
		report.Total += len(batch)
		s.logger.InfoContext(ctx, "seats created", "event_id", e.ID, "title", e.Title, "created", len(batch))
	}
	return report, nil
}

// parseRowLabels turns "ABC" into ["A", "B", "C"]. Whitespace is ignored and repeats are dropped.
func parseRowLabels(rows string) ([]string, error) {
	seen := make(map[rune]bool)
	var labels []string
	for _, r := range strings.ToUpper(rows) {
		if unicode.IsSpace(r) {
			continue
		}
		if !unicode.IsLetter(r) {
			return nil, fmt.Errorf("%w: row label %q is not a letter", domain.ErrInvalidInput, r)
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		labels = append(labels, string(r))
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: at least one row label is required", domain.ErrInvalidInput)
	}
	return labels, nil
}
