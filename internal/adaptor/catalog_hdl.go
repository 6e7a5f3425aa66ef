package adaptor

import (
	"net/http"

	"theatre-booking/internal/dto/request"
	"theatre-booking/internal/usecase"
	"theatre-booking/pkg/utils"

	"go.uber.org/zap"
)

// CatalogHandler serves genres, actors and theatre halls.
type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

func (h *CatalogHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.GetGenres(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get genres")
		return
	}

	utils.ResponseSuccess(w, "Genres retrieved", genres)
}

func (h *CatalogHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req request.GenreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	genre, err := h.service.CreateGenre(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create genre")
		return
	}

	utils.ResponseCreated(w, "Genre created", genre)
}

func (h *CatalogHandler) GetActors(w http.ResponseWriter, r *http.Request) {
	actors, err := h.service.GetActors(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get actors")
		return
	}

	utils.ResponseSuccess(w, "Actors retrieved", actors)
}

func (h *CatalogHandler) CreateActor(w http.ResponseWriter, r *http.Request) {
	var req request.ActorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	actor, err := h.service.CreateActor(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create actor")
		return
	}

	utils.ResponseCreated(w, "Actor created", actor)
}

func (h *CatalogHandler) GetTheatreHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := h.service.GetTheatreHalls(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get theatre halls")
		return
	}

	utils.ResponseSuccess(w, "Theatre halls retrieved", halls)
}

func (h *CatalogHandler) CreateTheatreHall(w http.ResponseWriter, r *http.Request) {
	var req request.TheatreHallRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hall, err := h.service.CreateTheatreHall(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create theatre hall")
		return
	}

	utils.ResponseCreated(w, "Theatre hall created", hall)
}
