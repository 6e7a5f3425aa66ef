package repository

import (
	"theatre-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	DB          database.PgxIface
	User        UserRepository
	Session     SessionRepository
	Genre       GenreRepository
	Actor       ActorRepository
	TheatreHall TheatreHallRepository
	Play        PlayRepository
	Performance PerformanceRepository
	Reservation ReservationRepository
	Ticket      TicketRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		DB:          db,
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Genre:       NewGenreRepository(db, log),
		Actor:       NewActorRepository(db, log),
		TheatreHall: NewTheatreHallRepository(db, log),
		Play:        NewPlayRepository(db, log),
		Performance: NewPerformanceRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Ticket:      NewTicketRepository(db, log),
	}
}
