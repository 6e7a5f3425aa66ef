package response

import (
	"time"

	"theatre-booking/internal/data/entity"
)

type TicketResponse struct {
	ID          int64 `json:"id"`
	Row         int   `json:"row"`
	Seat        int   `json:"seat"`
	Performance int64 `json:"performance"`
}

// ReservationResponse is returned by reservation creation.
type ReservationResponse struct {
	ID        int64            `json:"id"`
	Tickets   []TicketResponse `json:"tickets"`
	CreatedAt time.Time        `json:"created_at"`
}

type TicketListResponse struct {
	ID          int64                    `json:"id"`
	Row         int                      `json:"row"`
	Seat        int                      `json:"seat"`
	Performance *PerformanceListResponse `json:"performance"`
}

type ReservationListResponse struct {
	ID        int64                `json:"id"`
	Tickets   []TicketListResponse `json:"tickets"`
	CreatedAt time.Time            `json:"created_at"`
}

func ReservationToResponse(r *entity.Reservation) ReservationResponse {
	tickets := make([]TicketResponse, len(r.Tickets))
	for i, t := range r.Tickets {
		tickets[i] = TicketResponse{
			ID:          t.ID,
			Row:         t.Row,
			Seat:        t.Seat,
			Performance: t.PerformanceID,
		}
	}

	return ReservationResponse{
		ID:        r.ID,
		Tickets:   tickets,
		CreatedAt: r.CreatedAt,
	}
}

// ReservationToListResponse nests each ticket's performance summary.
// Tickets whose performance is missing from performances get a nil performance.
func ReservationToListResponse(r *entity.Reservation, performances map[int64]*entity.PerformanceSummary) ReservationListResponse {
	tickets := make([]TicketListResponse, len(r.Tickets))
	for i, t := range r.Tickets {
		tickets[i] = TicketListResponse{ID: t.ID, Row: t.Row, Seat: t.Seat}
		if summary, ok := performances[t.PerformanceID]; ok {
			perf := PerformanceToListResponse(summary)
			tickets[i].Performance = &perf
		}
	}

	return ReservationListResponse{
		ID:        r.ID,
		Tickets:   tickets,
		CreatedAt: r.CreatedAt,
	}
}
