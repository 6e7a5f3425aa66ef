package repository

import (
	"context"
	"fmt"

	"theatre-booking/internal/data/entity"
	"theatre-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	CreateTx(ctx context.Context, q database.Querier, reservation *entity.Reservation) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Reservation, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

// CreateTx inserts the reservation header and fills in its id and created_at.
func (r *reservationRepository) CreateTx(ctx context.Context, q database.Querier, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (user_id)
		VALUES ($1)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, reservation.UserID).Scan(
		&reservation.ID,
		&reservation.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("user_id", reservation.UserID.String()),
		)
		return fmt.Errorf("create reservation for user %s: %w", reservation.UserID.String(), err)
	}

	return nil
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Reservation, error) {
	query := `
		SELECT id, user_id, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find reservations by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reservations by user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		var reservation entity.Reservation
		if err := rows.Scan(&reservation.ID, &reservation.UserID, &reservation.CreatedAt); err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}

	return reservations, nil
}
