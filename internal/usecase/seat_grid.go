package usecase

import (
	"fmt"

	"theatre-booking/internal/data/entity"
)

// SeatError reports a row or seat outside the hall grid.
type SeatError struct {
	Field string // "row" or "seat"
	Value int
	Max   int
}

func (e *SeatError) Error() string {
	return fmt.Sprintf("%s number must be in range: [1, %d]", e.Field, e.Max)
}

// ValidateSeat checks that (row, seat) lies inside the hall's
// rows x seats_in_row grid. Both coordinates are 1-indexed; row is checked first.
func ValidateSeat(row, seat int, hall entity.TheatreHall) error {
	if row < 1 || row > hall.Rows {
		return &SeatError{Field: "row", Value: row, Max: hall.Rows}
	}
	if seat < 1 || seat > hall.SeatsInRow {
		return &SeatError{Field: "seat", Value: seat, Max: hall.SeatsInRow}
	}
	return nil
}
