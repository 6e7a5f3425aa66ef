package repository

import (
	"context"
	"errors"
	"fmt"

	"theatre-booking/internal/data/entity"
	"theatre-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PlayRepository interface {
	FindAll(ctx context.Context) ([]*entity.Play, error)
	FindByID(ctx context.Context, id int64) (*entity.Play, error)
	CreateTx(ctx context.Context, q database.Querier, play *entity.Play) error
	UpdateTx(ctx context.Context, q database.Querier, play *entity.Play) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ReplaceGenresTx(ctx context.Context, q database.Querier, playID int64, genreIDs []int64) error
	ReplaceActorsTx(ctx context.Context, q database.Querier, playID int64, actorIDs []int64) error
}

type playRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPlayRepository(db database.PgxIface, log *zap.Logger) PlayRepository {
	return &playRepository{
		db:  db,
		log: log.With(zap.String("repository", "play")),
	}
}

func (r *playRepository) FindAll(ctx context.Context) ([]*entity.Play, error) {
	query := `
		SELECT id, title, description
		FROM plays
		ORDER BY title, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get plays", zap.Error(err))
		return nil, fmt.Errorf("find all plays: %w", err)
	}
	defer rows.Close()

	var plays []*entity.Play
	for rows.Next() {
		var play entity.Play
		if err := rows.Scan(&play.ID, &play.Title, &play.Description); err != nil {
			r.log.Error("Failed to scan play row", zap.Error(err))
			return nil, fmt.Errorf("scan play row: %w", err)
		}
		plays = append(plays, &play)
	}

	return plays, rows.Err()
}

func (r *playRepository) FindByID(ctx context.Context, id int64) (*entity.Play, error) {
	query := `SELECT id, title, description FROM plays WHERE id = $1`

	var play entity.Play
	err := r.db.QueryRow(ctx, query, id).Scan(&play.ID, &play.Title, &play.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find play by ID", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("find play by ID %d: %w", id, err)
	}

	return &play, nil
}

func (r *playRepository) CreateTx(ctx context.Context, q database.Querier, play *entity.Play) error {
	query := `
		INSERT INTO plays (title, description)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := q.QueryRow(ctx, query, play.Title, play.Description).Scan(&play.ID); err != nil {
		r.log.Error("Failed to create play", zap.Error(err), zap.String("title", play.Title))
		return fmt.Errorf("create play %s: %w", play.Title, err)
	}

	return nil
}

// UpdateTx reports false when the play does not exist.
func (r *playRepository) UpdateTx(ctx context.Context, q database.Querier, play *entity.Play) (bool, error) {
	query := `
		UPDATE plays
		SET title = $2, description = $3
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query, play.ID, play.Title, play.Description)
	if err != nil {
		r.log.Error("Failed to update play", zap.Error(err), zap.Int64("id", play.ID))
		return false, fmt.Errorf("update play %d: %w", play.ID, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *playRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM plays WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete play", zap.Error(err), zap.Int64("id", id))
		return false, fmt.Errorf("delete play %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *playRepository) ReplaceGenresTx(ctx context.Context, q database.Querier, playID int64, genreIDs []int64) error {
	return r.replaceLinks(ctx, q, "play_genres", "genre_id", playID, genreIDs)
}

func (r *playRepository) ReplaceActorsTx(ctx context.Context, q database.Querier, playID int64, actorIDs []int64) error {
	return r.replaceLinks(ctx, q, "play_actors", "actor_id", playID, actorIDs)
}

// replaceLinks rewrites one many-to-many side of a play. table and column are
// package constants, never user input.
func (r *playRepository) replaceLinks(ctx context.Context, q database.Querier, table, column string, playID int64, ids []int64) error {
	if _, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE play_id = $1`, table), playID); err != nil {
		r.log.Error("Failed to clear play links", zap.Error(err), zap.String("table", table), zap.Int64("play_id", playID))
		return fmt.Errorf("clear %s for play %d: %w", table, playID, err)
	}

	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (play_id, %s)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`, table, column)

	_, err := q.Exec(ctx, query, playID, ids)
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("link %s for play %d: %w: %w", table, playID, ErrReferenceNotFound, err)
	}
	if err != nil {
		r.log.Error("Failed to link play", zap.Error(err), zap.String("table", table), zap.Int64("play_id", playID))
		return fmt.Errorf("link %s for play %d: %w", table, playID, err)
	}

	return nil
}
