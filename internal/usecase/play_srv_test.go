package usecase

import (
	"context"
	"testing"

	"theatre-booking/internal/dto/request"
	"theatre-booking/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreatePlay_WithRelations(t *testing.T) {
	db, repo := newCatalogFixture(t)
	svc := NewPlayService(repo, zap.NewNop())

	db.ExpectBeginTx(database.ReadCommitted)
	db.ExpectQuery(`INSERT INTO plays`).
		WithArgs("Hamlet", "Danish prince").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(4)))
	db.ExpectExec(`DELETE FROM play_genres`).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	db.ExpectExec(`INSERT INTO play_genres`).
		WithArgs(int64(4), []int64{1, 2}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	db.ExpectExec(`DELETE FROM play_actors`).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	db.ExpectCommit()

	play, err := svc.CreatePlay(context.Background(), &request.PlayRequest{
		Title:       "Hamlet",
		Description: "Danish prince",
		Genres:      []int64{1, 2},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), play.ID)
	assert.Equal(t, []int64{1, 2}, play.Genres)
	assert.Equal(t, []int64{}, play.Actors)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestCreatePlay_UnknownActorRollsBack(t *testing.T) {
	db, repo := newCatalogFixture(t)
	svc := NewPlayService(repo, zap.NewNop())

	db.ExpectBeginTx(database.ReadCommitted)
	db.ExpectQuery(`INSERT INTO plays`).
		WithArgs("Hamlet", "").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))
	db.ExpectExec(`DELETE FROM play_genres`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	db.ExpectExec(`DELETE FROM play_actors`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	db.ExpectExec(`INSERT INTO play_actors`).
		WithArgs(int64(5), []int64{99}).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "play_actors_actor_id_fkey"})
	db.ExpectRollback()

	_, err := svc.CreatePlay(context.Background(), &request.PlayRequest{
		Title:  "Hamlet",
		Actors: []int64{99},
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "actors")
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestUpdatePlay_NotFound(t *testing.T) {
	db, repo := newCatalogFixture(t)
	svc := NewPlayService(repo, zap.NewNop())

	db.ExpectBeginTx(database.ReadCommitted)
	db.ExpectExec(`UPDATE plays`).
		WithArgs(int64(12), "Lear", "").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	db.ExpectRollback()

	_, err := svc.UpdatePlay(context.Background(), 12, &request.PlayRequest{Title: "Lear"})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, int64(12), notFoundErr.ID)
	assert.NoError(t, db.ExpectationsWereMet())
}
