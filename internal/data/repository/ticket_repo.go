package repository

import (
	"context"
	"fmt"

	"theatre-booking/internal/data/entity"
	"theatre-booking/pkg/database"

	"go.uber.org/zap"
)

type TicketRepository interface {
	CreateTx(ctx context.Context, q database.Querier, ticket *entity.Ticket) error
	FindByReservationIDs(ctx context.Context, reservationIDs []int64) ([]entity.Ticket, error)
	FindTakenPlaces(ctx context.Context, performanceID int64) ([]entity.Ticket, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

// CreateTx inserts a ticket inside the caller's transaction. A collision on
// (performance_id, row, seat) is reported as ErrSeatTaken.
func (r *ticketRepository) CreateTx(ctx context.Context, q database.Querier, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets ("row", seat, performance_id, reservation_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		ticket.Row,
		ticket.Seat,
		ticket.PerformanceID,
		ticket.ReservationID,
	).Scan(&ticket.ID)

	if err == nil {
		return nil
	}

	if IsUniqueViolation(err) && ConstraintName(err) != ticketSeatConstraint {
		r.log.Error("Unexpected unique violation on ticket",
			zap.Error(err),
			zap.String("constraint", ConstraintName(err)),
		)
		return fmt.Errorf("create ticket: %w: %w", ErrDuplicate, err)
	}

	if IsUniqueViolation(err) {
		r.log.Info("Seat already taken",
			zap.Int64("performance_id", ticket.PerformanceID),
			zap.Int("row", ticket.Row),
			zap.Int("seat", ticket.Seat),
			zap.String("constraint", ConstraintName(err)),
		)
		return fmt.Errorf("row %d seat %d of performance %d: %w",
			ticket.Row, ticket.Seat, ticket.PerformanceID, ErrSeatTaken)
	}

	r.log.Error("Failed to create ticket",
		zap.Error(err),
		zap.Int64("performance_id", ticket.PerformanceID),
		zap.Int64("reservation_id", ticket.ReservationID),
	)
	return fmt.Errorf("create ticket: %w", err)
}

// FindByReservationIDs returns tickets grouped by reservation and ordered by row and seat.
func (r *ticketRepository) FindByReservationIDs(ctx context.Context, reservationIDs []int64) ([]entity.Ticket, error) {
	if len(reservationIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, "row", seat, performance_id, reservation_id
		FROM tickets
		WHERE reservation_id = ANY($1)
		ORDER BY reservation_id, "row", seat
	`

	return r.queryTickets(ctx, "find tickets by reservations", query, reservationIDs)
}

// FindTakenPlaces returns the sold seats of a performance ordered by row and seat.
func (r *ticketRepository) FindTakenPlaces(ctx context.Context, performanceID int64) ([]entity.Ticket, error) {
	query := `
		SELECT id, "row", seat, performance_id, reservation_id
		FROM tickets
		WHERE performance_id = $1
		ORDER BY "row", seat
	`

	return r.queryTickets(ctx, "find taken places", query, performanceID)
}

func (r *ticketRepository) queryTickets(ctx context.Context, op, query string, args ...any) ([]entity.Ticket, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query tickets", zap.Error(err), zap.String("operation", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var tickets []entity.Ticket
	for rows.Next() {
		var ticket entity.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.Row,
			&ticket.Seat,
			&ticket.PerformanceID,
			&ticket.ReservationID,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tickets, nil
}
