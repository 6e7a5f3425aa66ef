package adaptor

import (
	"net/http"

	"theatre-booking/internal/dto/request"
	"theatre-booking/internal/usecase"
	"theatre-booking/pkg/utils"

	"go.uber.org/zap"
)

type PlayHandler struct {
	service usecase.PlayService
	log     *zap.Logger
}

func NewPlayHandler(service usecase.PlayService, log *zap.Logger) *PlayHandler {
	return &PlayHandler{
		service: service,
		log:     log,
	}
}

// GetPlays handles GET /api/theatre/plays
func (h *PlayHandler) GetPlays(w http.ResponseWriter, r *http.Request) {
	plays, err := h.service.GetPlays(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get plays")
		return
	}

	utils.ResponseSuccess(w, "Plays retrieved", plays)
}

// GetPlayByID handles GET /api/theatre/plays/{id}
func (h *PlayHandler) GetPlayByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	play, err := h.service.GetPlayByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get play")
		return
	}

	utils.ResponseSuccess(w, "Play retrieved", play)
}

// CreatePlay handles POST /api/theatre/plays (admin)
func (h *PlayHandler) CreatePlay(w http.ResponseWriter, r *http.Request) {
	var req request.PlayRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	play, err := h.service.CreatePlay(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create play")
		return
	}

	utils.ResponseCreated(w, "Play created", play)
}

// UpdatePlay handles PUT /api/theatre/plays/{id} (admin)
func (h *PlayHandler) UpdatePlay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.PlayRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	play, err := h.service.UpdatePlay(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update play")
		return
	}

	utils.ResponseSuccess(w, "Play updated", play)
}

// DeletePlay handles DELETE /api/theatre/plays/{id} (admin)
func (h *PlayHandler) DeletePlay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePlay(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete play")
		return
	}

	utils.ResponseNoContent(w)
}
