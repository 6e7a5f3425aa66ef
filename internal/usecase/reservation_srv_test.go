package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"theatre-booking/internal/data/repository"
	"theatre-booking/internal/dto/request"
	"theatre-booking/internal/event"
	"theatre-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, message any) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

const (
	insertReservationSQL = `INSERT INTO reservations`
	findHallSQL          = `JOIN theatre_halls h ON h.id = p.theatre_hall_id\s+WHERE p.id = \$1`
	insertTicketSQL      = `INSERT INTO tickets`
)

func newReservationFixture(t *testing.T) (pgxmock.PgxPoolIface, *mockPublisher, ReservationService) {
	t.Helper()

	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	pub := &mockPublisher{}
	repo := repository.NewRepository(db, zap.NewNop())

	return db, pub, NewReservationService(repo, pub, zap.NewNop())
}

func hallRows(rows, seats int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "rows", "seats_in_row"}).
		AddRow(int64(1), "Main", rows, seats)
}

func TestCreateReservation_Success(t *testing.T) {
	db, pub, svc := newReservationFixture(t)
	userID := uuid.New()
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	db.ExpectBeginTx(database.ReadCommitted)
	db.ExpectQuery(insertReservationSQL).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), createdAt))
	db.ExpectQuery(findHallSQL).
		WithArgs(int64(3)).
		WillReturnRows(hallRows(20, 20))
	db.ExpectQuery(insertTicketSQL).
		WithArgs(1, 1, int64(3), int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100)))
	db.ExpectQuery(insertTicketSQL).
		WithArgs(1, 2, int64(3), int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(101)))
	db.ExpectCommit()

	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e event.ReservationCreated) bool {
		return e.ReservationID == 10 && e.UserID == userID && len(e.Seats) == 2
	})).Return(nil).Once()

	resp, err := svc.CreateReservation(context.Background(), userID, &request.CreateReservationRequest{
		Tickets: []request.TicketRequest{
			{Row: 1, Seat: 1, Performance: 3},
			{Row: 1, Seat: 2, Performance: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, createdAt, resp.CreatedAt)
	require.Len(t, resp.Tickets, 2)
	assert.Equal(t, int64(100), resp.Tickets[0].ID)
	assert.Equal(t, 2, resp.Tickets[1].Seat)
	assert.Equal(t, int64(3), resp.Tickets[1].Performance)

	assert.NoError(t, db.ExpectationsWereMet())
	pub.AssertExpectations(t)
}

func TestCreateReservation_EmptyTicketList(t *testing.T) {
	db, pub, svc := newReservationFixture(t)

	_, err := svc.CreateReservation(context.Background(), uuid.New(), &request.CreateReservationRequest{})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ErrorIs(t, err, ErrEmptyTicketList)
	assert.Contains(t, validationErr.Fields, "tickets")

	assert.NoError(t, db.ExpectationsWereMet())
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateReservation_OutOfRangeRollsBackEverything(t *testing.T) {
	db, pub, svc := newReservationFixture(t)
	userID := uuid.New()

	db.ExpectBeginTx(database.ReadCommitted)
	db.ExpectQuery(insertReservationSQL).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), time.Now()))
	db.ExpectQuery(findHallSQL).
		WithArgs(int64(3)).
		WillReturnRows(hallRows(20, 20))
	db.ExpectQuery(insertTicketSQL).
		WithArgs(1, 1, int64(3), int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(200)))
	db.ExpectRollback()

	_, err := svc.CreateReservation(context.Background(), userID, &request.CreateReservationRequest{
		Tickets: []request.TicketRequest{
			{Row: 1, Seat: 1, Performance: 3},
			{Row: 21, Seat: 1, Performance: 3},
		},
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string]string{
		"tickets[1].row": "row number must be in range: [1, 20]",
	}, validationErr.Fields)

	assert.NoError(t, db.ExpectationsWereMet())
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateReservation_SeatOutOfRange(t *testing.T) {
	db, _, svc := newReservationFixture(t)
	userID := uuid.New()

	db.ExpectBeginTx(database.ReadCommitted)
	db.ExpectQuery(insertReservationSQL).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(12), time.Now()))
	db.ExpectQuery(findHallSQL).
		WithArgs(int64(3)).
		WillReturnRows(hallRows(20, 20))
	db.ExpectRollback()

	_, err := svc.CreateReservation(context.Background(), userID, &request.CreateReservationRequest{
		Tickets: []request.TicketRequest{{Row: 5, Seat: 0, Performance: 3}},
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "seat number must be in range: [1, 20]", validationErr.Fields["tickets[0].seat"])
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestCreateReservation_SeatAlreadyTaken(t *testing.T) {
	db, pub, svc := newReservationFixture(t)
	userID := uuid.New()

	db.ExpectBeginTx(database.ReadCommitted)
	db.ExpectQuery(insertReservationSQL).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(13), time.Now()))
	db.ExpectQuery(findHallSQL).
		WithArgs(int64(3)).
		WillReturnRows(hallRows(20, 20))
	db.ExpectQuery(insertTicketSQL).
		WithArgs(1, 1, int64(3), int64(13)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(300)))
	db.ExpectQuery(insertTicketSQL).
		WithArgs(1, 1, int64(3), int64(13)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "tickets_performance_row_seat_key"})
	db.ExpectRollback()

	_, err := svc.CreateReservation(context.Background(), userID, &request.CreateReservationRequest{
		Tickets: []request.TicketRequest{
			{Row: 1, Seat: 1, Performance: 3},
			{Row: 1, Seat: 1, Performance: 3},
		},
	})

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.ErrorIs(t, err, repository.ErrSeatTaken)
	assert.Contains(t, conflictErr.Fields, "tickets[1]")

	assert.NoError(t, db.ExpectationsWereMet())
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateReservation_PerformanceNotFound(t *testing.T) {
	db, _, svc := newReservationFixture(t)
	userID := uuid.New()

	db.ExpectBeginTx(database.ReadCommitted)
	db.ExpectQuery(insertReservationSQL).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(14), time.Now()))
	db.ExpectQuery(findHallSQL).
		WithArgs(int64(77)).
		WillReturnError(pgx.ErrNoRows)
	db.ExpectRollback()

	_, err := svc.CreateReservation(context.Background(), userID, &request.CreateReservationRequest{
		Tickets: []request.TicketRequest{{Row: 1, Seat: 1, Performance: 77}},
	})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "tickets[0].performance", notFoundErr.Field)
	assert.Equal(t, int64(77), notFoundErr.ID)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestCreateReservation_PublishFailureDoesNotFailReservation(t *testing.T) {
	db, pub, svc := newReservationFixture(t)
	userID := uuid.New()

	db.ExpectBeginTx(database.ReadCommitted)
	db.ExpectQuery(insertReservationSQL).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(15), time.Now()))
	db.ExpectQuery(findHallSQL).
		WithArgs(int64(3)).
		WillReturnRows(hallRows(5, 5))
	db.ExpectQuery(insertTicketSQL).
		WithArgs(5, 5, int64(3), int64(15)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(400)))
	db.ExpectCommit()

	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	resp, err := svc.CreateReservation(context.Background(), userID, &request.CreateReservationRequest{
		Tickets: []request.TicketRequest{{Row: 5, Seat: 5, Performance: 3}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(15), resp.ID)
	assert.NoError(t, db.ExpectationsWereMet())
	pub.AssertExpectations(t)
}

func TestGetUserReservations(t *testing.T) {
	db, _, svc := newReservationFixture(t)
	userID := uuid.New()
	now := time.Now()

	db.ExpectQuery(`FROM reservations\s+WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "created_at"}).
			AddRow(int64(2), userID, now).
			AddRow(int64(1), userID, now.Add(-time.Hour)))
	db.ExpectQuery(`WHERE reservation_id = ANY\(\$1\)`).
		WithArgs([]int64{2, 1}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "row", "seat", "performance_id", "reservation_id"}).
			AddRow(int64(7), 1, 1, int64(3), int64(1)).
			AddRow(int64(8), 2, 4, int64(3), int64(2)))
	db.ExpectQuery(`WHERE p.id = ANY\(\$1\)`).
		WithArgs([]int64{3}).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "play_id", "theatre_hall_id", "show_time", "title",
			"id", "name", "rows", "seats_in_row", "tickets_available",
		}).AddRow(int64(3), int64(1), int64(1), now, "Hamlet", int64(1), "Main", 20, 20, 398))

	list, err := svc.GetUserReservations(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	require.Len(t, list[0].Tickets, 1)
	assert.Equal(t, int64(8), list[0].Tickets[0].ID)
	require.NotNil(t, list[0].Tickets[0].Performance)
	assert.Equal(t, 398, list[0].Tickets[0].Performance.TicketsAvailable)
	assert.Equal(t, "Hamlet", list[1].Tickets[0].Performance.PlayTitle)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestGetUserReservations_Empty(t *testing.T) {
	db, _, svc := newReservationFixture(t)
	userID := uuid.New()

	db.ExpectQuery(`FROM reservations`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "created_at"}))

	list, err := svc.GetUserReservations(context.Background(), userID)

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.NoError(t, db.ExpectationsWereMet())
}
