package request

// TicketRequest carries no range tags on row and seat: bounds depend on the
// performance's hall and are checked by the reservation service.
type TicketRequest struct {
	Row         int   `json:"row"`
	Seat        int   `json:"seat"`
	Performance int64 `json:"performance" validate:"required,min=1"`
}

type CreateReservationRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"dive"`
}
