package entity

type TheatreHall struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	Rows       int    `db:"rows"`
	SeatsInRow int    `db:"seats_in_row"`
}

// Capacity is the number of seats in the hall grid.
func (h TheatreHall) Capacity() int {
	return h.Rows * h.SeatsInRow
}
