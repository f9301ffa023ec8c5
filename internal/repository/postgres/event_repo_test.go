package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"seatreservation/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var eventColumns = []string{"id", "title", "start_at", "end_at", "created_at"}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, start_at, end_at, created_at\s+FROM events\s+WHERE id = \$1`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows(eventColumns).AddRow("ev-1", "Hamlet", start, end, created))
			},
			want: &domain.Event{ID: "ev-1", Title: "Hamlet", StartAt: start, EndAt: end, CreatedAt: created},
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events`).
					WithArgs("ev-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "malformed id is not found",
			id:   "not-a-uuid",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events`).
					WithArgs("not-a-uuid").
					WillReturnError(&pq.Error{Code: "22P02"})
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events`).
					WithArgs("ev-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`ORDER BY start_at, id\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(2, 2).
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow("ev-3", "Macbeth", start.Add(48*time.Hour), start.Add(50*time.Hour), start))

	repo := NewEventRepository(db)
	events, total, err := repo.List(ctx, domain.PaginationParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, events, 1)
	require.Equal(t, "ev-3", events[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListAll(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, start_at, end_at, created_at\s+FROM events\s+ORDER BY start_at, id`).
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow("ev-1", "Hamlet", start, start.Add(time.Hour), start).
			AddRow("ev-2", "Othello", start.Add(24*time.Hour), start.Add(25*time.Hour), start))

	events, err := NewEventRepository(db).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "ev-2", events[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
