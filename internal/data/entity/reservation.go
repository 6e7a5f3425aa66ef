package entity

import (
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	ID        int64     `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	Tickets   []Ticket
}

type Ticket struct {
	ID            int64 `db:"id"`
	Row           int   `db:"row"`
	Seat          int   `db:"seat"`
	PerformanceID int64 `db:"performance_id"`
	ReservationID int64 `db:"reservation_id"`
}
