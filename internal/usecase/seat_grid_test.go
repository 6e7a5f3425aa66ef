package usecase

import (
	"testing"

	"theatre-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSeat(t *testing.T) {
	hall := entity.TheatreHall{ID: 1, Name: "Main", Rows: 20, SeatsInRow: 20}

	tests := []struct {
		name      string
		row, seat int
		field     string
	}{
		{name: "first seat", row: 1, seat: 1},
		{name: "last seat", row: 20, seat: 20},
		{name: "row above grid", row: 21, seat: 5, field: "row"},
		{name: "row zero", row: 0, seat: 5, field: "row"},
		{name: "negative row", row: -3, seat: 5, field: "row"},
		{name: "seat zero", row: 5, seat: 0, field: "seat"},
		{name: "seat above grid", row: 5, seat: 21, field: "seat"},
		{name: "row reported before seat", row: 21, seat: 0, field: "row"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeat(tt.row, tt.seat, hall)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var seatErr *SeatError
			require.ErrorAs(t, err, &seatErr)
			assert.Equal(t, tt.field, seatErr.Field)
			assert.Equal(t, 20, seatErr.Max)
		})
	}
}

func TestValidateSeat_Message(t *testing.T) {
	hall := entity.TheatreHall{Rows: 10, SeatsInRow: 15}

	assert.EqualError(t, ValidateSeat(11, 1, hall), "row number must be in range: [1, 10]")
	assert.EqualError(t, ValidateSeat(1, 16, hall), "seat number must be in range: [1, 15]")
}

func TestValidateSeat_NonSquareHall(t *testing.T) {
	hall := entity.TheatreHall{Rows: 3, SeatsInRow: 40}

	assert.NoError(t, ValidateSeat(3, 40, hall))
	assert.Error(t, ValidateSeat(4, 3, hall))
}
