package request

import "time"

type PerformanceRequest struct {
	Play        int64     `json:"play" validate:"required,min=1"`
	TheatreHall int64     `json:"theatre_hall" validate:"required,min=1"`
	ShowTime    time.Time `json:"show_time" validate:"required"`
}
