// Package event holds the messages published after state changes commit.
package event

import (
	"time"

	"github.com/google/uuid"
)

const ReservationCreatedType = "reservation.created"

type Seat struct {
	PerformanceID int64 `json:"performance_id"`
	Row           int   `json:"row"`
	Seat          int   `json:"seat"`
}

type ReservationCreated struct {
	Type          string    `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	UserID        uuid.UUID `json:"user_id"`
	Seats         []Seat    `json:"seats"`
	CreatedAt     time.Time `json:"created_at"`
}
