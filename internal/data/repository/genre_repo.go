package repository

import (
	"context"
	"fmt"

	"theatre-booking/internal/data/entity"
	"theatre-booking/pkg/database"

	"go.uber.org/zap"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) error
	FindAll(ctx context.Context) ([]*entity.Genre, error)
	FindByPlayID(ctx context.Context, playID int64) ([]*entity.Genre, error)
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

// Create returns ErrDuplicate when the name is already used.
func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	query := `INSERT INTO genres (name) VALUES ($1) RETURNING id`

	err := r.db.QueryRow(ctx, query, genre.Name).Scan(&genre.ID)
	if IsUniqueViolation(err) {
		return fmt.Errorf("create genre %s: %w", genre.Name, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create genre", zap.Error(err), zap.String("name", genre.Name))
		return fmt.Errorf("create genre %s: %w", genre.Name, err)
	}

	return nil
}

func (r *genreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	return r.queryGenres(ctx, "find all genres", `SELECT id, name FROM genres ORDER BY id`)
}

func (r *genreRepository) FindByPlayID(ctx context.Context, playID int64) ([]*entity.Genre, error) {
	query := `
		SELECT g.id, g.name
		FROM genres g
		INNER JOIN play_genres pg ON g.id = pg.genre_id
		WHERE pg.play_id = $1
		ORDER BY g.name
	`

	return r.queryGenres(ctx, "find genres by play", query, playID)
}

func (r *genreRepository) queryGenres(ctx context.Context, op, query string, args ...any) ([]*entity.Genre, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query genres", zap.Error(err), zap.String("operation", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	return genres, rows.Err()
}
