package response

import "theatre-booking/internal/data/entity"

// PlayListResponse flattens genres and actors to display names.
type PlayListResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
}

type PlayDetailResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Genres      []GenreResponse `json:"genres"`
	Actors      []ActorResponse `json:"actors"`
}

// PlayWriteResponse echoes the ids accepted on create and update.
type PlayWriteResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Genres      []int64 `json:"genres"`
	Actors      []int64 `json:"actors"`
}

func PlayToListResponse(play *entity.Play, genres []*entity.Genre, actors []*entity.Actor) PlayListResponse {
	resp := PlayListResponse{
		ID:          play.ID,
		Title:       play.Title,
		Description: play.Description,
		Genres:      make([]string, len(genres)),
		Actors:      make([]string, len(actors)),
	}
	for i, genre := range genres {
		resp.Genres[i] = genre.Name
	}
	for i, actor := range actors {
		resp.Actors[i] = actor.FullName()
	}
	return resp
}

func PlayToDetailResponse(play *entity.Play, genres []*entity.Genre, actors []*entity.Actor) PlayDetailResponse {
	resp := PlayDetailResponse{
		ID:          play.ID,
		Title:       play.Title,
		Description: play.Description,
		Genres:      make([]GenreResponse, len(genres)),
		Actors:      make([]ActorResponse, len(actors)),
	}
	for i, genre := range genres {
		resp.Genres[i] = GenreToResponse(genre)
	}
	for i, actor := range actors {
		resp.Actors[i] = ActorToResponse(actor)
	}
	return resp
}

func PlayToWriteResponse(play *entity.Play, genreIDs, actorIDs []int64) PlayWriteResponse {
	if genreIDs == nil {
		genreIDs = []int64{}
	}
	if actorIDs == nil {
		actorIDs = []int64{}
	}
	return PlayWriteResponse{
		ID:          play.ID,
		Title:       play.Title,
		Description: play.Description,
		Genres:      genreIDs,
		Actors:      actorIDs,
	}
}
