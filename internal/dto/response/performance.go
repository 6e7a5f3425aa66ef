package response

import (
	"time"

	"theatre-booking/internal/data/entity"
)

type PerformanceListResponse struct {
	ID                  int64     `json:"id"`
	ShowTime            time.Time `json:"show_time"`
	PlayTitle           string    `json:"play_title"`
	TheatreHallName     string    `json:"theatre_hall_name"`
	TheatreHallCapacity int       `json:"theatre_hall_capacity"`
	TicketsAvailable    int       `json:"tickets_available"`
}

type TakenPlaceResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type PerformanceDetailResponse struct {
	ID               int64                `json:"id"`
	ShowTime         time.Time            `json:"show_time"`
	Play             PlayListResponse     `json:"play"`
	TheatreHall      TheatreHallResponse  `json:"theatre_hall"`
	TakenPlaces      []TakenPlaceResponse `json:"taken_places"`
	TicketsAvailable int                  `json:"tickets_available"`
}

type PerformanceWriteResponse struct {
	ID          int64     `json:"id"`
	Play        int64     `json:"play"`
	TheatreHall int64     `json:"theatre_hall"`
	ShowTime    time.Time `json:"show_time"`
}

func PerformanceToListResponse(s *entity.PerformanceSummary) PerformanceListResponse {
	return PerformanceListResponse{
		ID:                  s.ID,
		ShowTime:            s.ShowTime,
		PlayTitle:           s.PlayTitle,
		TheatreHallName:     s.Hall.Name,
		TheatreHallCapacity: s.Hall.Capacity(),
		TicketsAvailable:    s.TicketsAvailable,
	}
}

func PerformanceToDetailResponse(s *entity.PerformanceSummary, play PlayListResponse, taken []entity.Ticket) PerformanceDetailResponse {
	places := make([]TakenPlaceResponse, len(taken))
	for i, ticket := range taken {
		places[i] = TakenPlaceResponse{Row: ticket.Row, Seat: ticket.Seat}
	}

	return PerformanceDetailResponse{
		ID:               s.ID,
		ShowTime:         s.ShowTime,
		Play:             play,
		TheatreHall:      TheatreHallToResponse(s.Hall),
		TakenPlaces:      places,
		TicketsAvailable: s.TicketsAvailable,
	}
}

func PerformanceToWriteResponse(p *entity.Performance) PerformanceWriteResponse {
	return PerformanceWriteResponse{
		ID:          p.ID,
		Play:        p.PlayID,
		TheatreHall: p.TheatreHallID,
		ShowTime:    p.ShowTime,
	}
}
