package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var summaryColumns = []string{
	"id", "play_id", "theatre_hall_id", "show_time",
	"title",
	"id", "name", "rows", "seats_in_row",
	"tickets_available",
}

func TestPerformanceRepository_FindAllSummaries(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPerformanceRepository(mock, zap.NewNop())
	showTime := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`h.rows::bigint \* h.seats_in_row - COUNT\(t.id\) AS tickets_available`).
		WillReturnRows(pgxmock.NewRows(summaryColumns).
			AddRow(int64(1), int64(2), int64(3), showTime, "Hamlet", int64(3), "Main", 20, 20, 398))

	summaries, err := repo.FindAllSummaries(context.Background())
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	assert.Equal(t, "Hamlet", summaries[0].PlayTitle)
	assert.Equal(t, 400, summaries[0].Hall.Capacity())
	assert.Equal(t, 398, summaries[0].TicketsAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPerformanceRepository_FindSummaryByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPerformanceRepository(mock, zap.NewNop())

	mock.ExpectQuery(`WHERE p.id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	summary, err := repo.FindSummaryByID(context.Background(), 99)

	assert.NoError(t, err)
	assert.Nil(t, summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPerformanceRepository_FindHallTx(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPerformanceRepository(mock, zap.NewNop())

	mock.ExpectQuery(`JOIN theatre_halls h ON h.id = p.theatre_hall_id`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "rows", "seats_in_row"}).
			AddRow(int64(3), "Blue", 10, 12))

	hall, err := repo.FindHallTx(context.Background(), mock, 5)
	require.NoError(t, err)

	require.NotNil(t, hall)
	assert.Equal(t, 10, hall.Rows)
	assert.Equal(t, 12, hall.SeatsInRow)
	assert.NoError(t, mock.ExpectationsWereMet())
}
