package postgres

import (
	"context"
	"testing"
	"time"

	"seatreservation/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityRepository_CountByEvent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`r.status = 'HOLD' AND r.expires_at >= \$2`).
		WithArgs("ev-1", now).
		WillReturnRows(sqlmock.NewRows([]string{"total", "confirmed", "holds"}).AddRow(10, 3, 2))

	got, err := NewAvailabilityRepository(db).CountByEvent(context.Background(), "ev-1", now)
	require.NoError(t, err)
	assert.Equal(t, &domain.Availability{
		EventID:        "ev-1",
		TotalSeats:     10,
		ConfirmedSeats: 3,
		HoldSeats:      2,
		AvailableSeats: 5,
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepository_CountByEvents(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE s.event_id = ANY\(\$1\)\s+GROUP BY s.event_id`).
		WithArgs(sqlmock.AnyArg(), now).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "total", "confirmed", "holds"}).
			AddRow("ev-1", 4, 1, 1))

	got, err := NewAvailabilityRepository(db).CountByEvents(context.Background(), []string{"ev-1", "ev-2"}, now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got["ev-1"].AvailableSeats)
	assert.Equal(t, 0, got["ev-2"].TotalSeats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepository_CountByEvents_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	got, err := NewAvailabilityRepository(db).CountByEvents(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
