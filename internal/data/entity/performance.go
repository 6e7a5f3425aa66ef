package entity

import "time"

type Performance struct {
	ID            int64     `db:"id"`
	PlayID        int64     `db:"play_id"`
	TheatreHallID int64     `db:"theatre_hall_id"`
	ShowTime      time.Time `db:"show_time"`
}

// PerformanceSummary is a performance joined with its play and hall and
// annotated with the number of seats still free.
type PerformanceSummary struct {
	Performance
	PlayTitle        string
	Hall             TheatreHall
	TicketsAvailable int
}
