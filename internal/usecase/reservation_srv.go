package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"theatre-booking/internal/data/entity"
	"theatre-booking/internal/data/repository"
	"theatre-booking/internal/dto/request"
	"theatre-booking/internal/dto/response"
	"theatre-booking/internal/event"
	"theatre-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationService interface {
	CreateReservation(ctx context.Context, userID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	GetUserReservations(ctx context.Context, userID uuid.UUID) ([]response.ReservationListResponse, error)
}

// EventPublisher delivers messages after a change has been committed.
type EventPublisher interface {
	Publish(ctx context.Context, message any) error
}

const publishTimeout = 3 * time.Second

type reservationService struct {
	repo      *repository.Repository
	publisher EventPublisher
	log       *zap.Logger
}

func NewReservationService(repo *repository.Repository, publisher EventPublisher, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "reservation")),
	}
}

// CreateReservation stores a reservation and all of its tickets in one
// transaction. Tickets are processed in request order; the first failing
// ticket aborts the whole reservation.
func (s *reservationService) CreateReservation(ctx context.Context, userID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if len(req.Tickets) == 0 {
		return nil, &ValidationError{
			Fields: map[string]string{"tickets": ErrEmptyTicketList.Error()},
			Err:    ErrEmptyTicketList,
		}
	}

	reservation := &entity.Reservation{UserID: userID}

	err := database.WithTx(ctx, s.repo.DB, database.ReadCommitted, func(tx pgx.Tx) error {
		if err := s.repo.Reservation.CreateTx(ctx, tx, reservation); err != nil {
			return err
		}

		halls := make(map[int64]*entity.TheatreHall)
		reservation.Tickets = make([]entity.Ticket, 0, len(req.Tickets))

		for i, item := range req.Tickets {
			ticket, err := s.addTicket(ctx, tx, halls, reservation.ID, i, item)
			if err != nil {
				return err
			}
			reservation.Tickets = append(reservation.Tickets, *ticket)
		}

		return nil
	})
	if err != nil {
		s.logFailure(err, userID, len(req.Tickets))
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.String("user_id", userID.String()),
		zap.Int("tickets", len(reservation.Tickets)),
	)

	s.publishCreated(ctx, reservation)

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

// addTicket resolves the hall of the ticket's performance, checks the seat
// against the hall grid and inserts the ticket.
func (s *reservationService) addTicket(
	ctx context.Context,
	tx pgx.Tx,
	halls map[int64]*entity.TheatreHall,
	reservationID int64,
	index int,
	item request.TicketRequest,
) (*entity.Ticket, error) {
	path := fmt.Sprintf("tickets[%d]", index)

	hall, ok := halls[item.Performance]
	if !ok {
		var err error
		hall, err = s.repo.Performance.FindHallTx(ctx, tx, item.Performance)
		if err != nil {
			return nil, err
		}
		if hall == nil {
			return nil, &NotFoundError{Resource: "performance", ID: item.Performance, Field: path + ".performance"}
		}
		halls[item.Performance] = hall
	}

	if err := ValidateSeat(item.Row, item.Seat, *hall); err != nil {
		var seatErr *SeatError
		if errors.As(err, &seatErr) {
			return nil, &ValidationError{
				Fields: map[string]string{path + "." + seatErr.Field: seatErr.Error()},
				Err:    err,
			}
		}
		return nil, err
	}

	ticket := &entity.Ticket{
		Row:           item.Row,
		Seat:          item.Seat,
		PerformanceID: item.Performance,
		ReservationID: reservationID,
	}

	if err := s.repo.Ticket.CreateTx(ctx, tx, ticket); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return nil, &ConflictError{
				Fields: map[string]string{
					path: fmt.Sprintf("seat %d in row %d is already taken for performance %d",
						item.Seat, item.Row, item.Performance),
				},
				Err: err,
			}
		}
		return nil, err
	}

	return ticket, nil
}

func (s *reservationService) logFailure(err error, userID uuid.UUID, tickets int) {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
	)

	fields := []zap.Field{
		zap.Error(err),
		zap.String("user_id", userID.String()),
		zap.Int("tickets", tickets),
	}

	switch {
	case errors.As(err, &validationErr), errors.As(err, &notFoundErr), errors.As(err, &conflictErr):
		s.log.Info("Reservation rejected", fields...)
	default:
		s.log.Error("Failed to create reservation", fields...)
	}
}

// publishCreated is best effort: the reservation is already committed.
func (s *reservationService) publishCreated(ctx context.Context, reservation *entity.Reservation) {
	if s.publisher == nil {
		return
	}

	seats := make([]event.Seat, len(reservation.Tickets))
	for i, t := range reservation.Tickets {
		seats[i] = event.Seat{PerformanceID: t.PerformanceID, Row: t.Row, Seat: t.Seat}
	}

	msg := event.ReservationCreated{
		Type:          event.ReservationCreatedType,
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		Seats:         seats,
		CreatedAt:     reservation.CreatedAt,
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, msg); err != nil {
		s.log.Warn("Failed to publish reservation event",
			zap.Error(err),
			zap.Int64("reservation_id", reservation.ID),
		)
	}
}

func (s *reservationService) GetUserReservations(ctx context.Context, userID uuid.UUID) ([]response.ReservationListResponse, error) {
	reservations, err := s.repo.Reservation.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get reservations: %w", err)
	}

	result := make([]response.ReservationListResponse, 0, len(reservations))
	if len(reservations) == 0 {
		return result, nil
	}

	byID := make(map[int64]*entity.Reservation, len(reservations))
	ids := make([]int64, len(reservations))
	for i, r := range reservations {
		ids[i] = r.ID
		byID[r.ID] = r
	}

	tickets, err := s.repo.Ticket.FindByReservationIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get reservation tickets: %w", err)
	}

	seen := make(map[int64]bool)
	var performanceIDs []int64
	for _, t := range tickets {
		if r, ok := byID[t.ReservationID]; ok {
			r.Tickets = append(r.Tickets, t)
		}
		if !seen[t.PerformanceID] {
			seen[t.PerformanceID] = true
			performanceIDs = append(performanceIDs, t.PerformanceID)
		}
	}

	performances, err := s.repo.Performance.FindSummariesByIDs(ctx, performanceIDs)
	if err != nil {
		return nil, fmt.Errorf("get reservation performances: %w", err)
	}

	for _, r := range reservations {
		result = append(result, response.ReservationToListResponse(r, performances))
	}

	return result, nil
}
