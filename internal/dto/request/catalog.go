package request

type GenreRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type ActorRequest struct {
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
}

// TheatreHallRequest caps both dimensions so capacity stays well inside int4.
type TheatreHallRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Rows       int    `json:"rows" validate:"required,min=1,max=1000"`
	SeatsInRow int    `json:"seats_in_row" validate:"required,min=1,max=1000"`
}

type PlayRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description"`
	Genres      []int64 `json:"genres" validate:"omitempty,unique,dive,min=1"`
	Actors      []int64 `json:"actors" validate:"omitempty,unique,dive,min=1"`
}
