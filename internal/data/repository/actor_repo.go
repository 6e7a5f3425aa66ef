package repository

import (
	"context"
	"fmt"

	"theatre-booking/internal/data/entity"
	"theatre-booking/pkg/database"

	"go.uber.org/zap"
)

type ActorRepository interface {
	Create(ctx context.Context, actor *entity.Actor) error
	FindAll(ctx context.Context) ([]*entity.Actor, error)
	FindByPlayID(ctx context.Context, playID int64) ([]*entity.Actor, error)
}

type actorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewActorRepository(db database.PgxIface, log *zap.Logger) ActorRepository {
	return &actorRepository{
		db:  db,
		log: log.With(zap.String("repository", "actor")),
	}
}

func (r *actorRepository) Create(ctx context.Context, actor *entity.Actor) error {
	query := `
		INSERT INTO actors (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := r.db.QueryRow(ctx, query, actor.FirstName, actor.LastName).Scan(&actor.ID); err != nil {
		r.log.Error("Failed to create actor",
			zap.Error(err),
			zap.String("full_name", actor.FullName()),
		)
		return fmt.Errorf("create actor %s: %w", actor.FullName(), err)
	}

	return nil
}

func (r *actorRepository) FindAll(ctx context.Context) ([]*entity.Actor, error) {
	return r.queryActors(ctx, "find all actors", `SELECT id, first_name, last_name FROM actors ORDER BY id`)
}

func (r *actorRepository) FindByPlayID(ctx context.Context, playID int64) ([]*entity.Actor, error) {
	query := `
		SELECT a.id, a.first_name, a.last_name
		FROM actors a
		INNER JOIN play_actors pa ON a.id = pa.actor_id
		WHERE pa.play_id = $1
		ORDER BY a.last_name, a.first_name
	`

	return r.queryActors(ctx, "find actors by play", query, playID)
}

func (r *actorRepository) queryActors(ctx context.Context, op, query string, args ...any) ([]*entity.Actor, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query actors", zap.Error(err), zap.String("operation", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var actors []*entity.Actor
	for rows.Next() {
		var actor entity.Actor
		if err := rows.Scan(&actor.ID, &actor.FirstName, &actor.LastName); err != nil {
			r.log.Error("Failed to scan actor row", zap.Error(err))
			return nil, fmt.Errorf("scan actor row: %w", err)
		}
		actors = append(actors, &actor)
	}

	return actors, rows.Err()
}
