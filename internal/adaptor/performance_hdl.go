package adaptor

import (
	"net/http"

	"theatre-booking/internal/dto/request"
	"theatre-booking/internal/usecase"
	"theatre-booking/pkg/utils"

	"go.uber.org/zap"
)

type PerformanceHandler struct {
	service usecase.PerformanceService
	log     *zap.Logger
}

func NewPerformanceHandler(service usecase.PerformanceService, log *zap.Logger) *PerformanceHandler {
	return &PerformanceHandler{
		service: service,
		log:     log,
	}
}

// GetPerformances handles GET /api/theatre/performances
func (h *PerformanceHandler) GetPerformances(w http.ResponseWriter, r *http.Request) {
	performances, err := h.service.GetPerformances(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get performances")
		return
	}

	utils.ResponseSuccess(w, "Performances retrieved", performances)
}

// GetPerformanceByID handles GET /api/theatre/performances/{id}. The detail
// view lists taken places so clients can draw the seat map.
func (h *PerformanceHandler) GetPerformanceByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	performance, err := h.service.GetPerformanceByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get performance")
		return
	}

	utils.ResponseSuccess(w, "Performance retrieved", performance)
}

// CreatePerformance handles POST /api/theatre/performances (admin)
func (h *PerformanceHandler) CreatePerformance(w http.ResponseWriter, r *http.Request) {
	var req request.PerformanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	performance, err := h.service.CreatePerformance(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create performance")
		return
	}

	utils.ResponseCreated(w, "Performance created", performance)
}

// UpdatePerformance handles PUT /api/theatre/performances/{id} (admin)
func (h *PerformanceHandler) UpdatePerformance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.PerformanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	performance, err := h.service.UpdatePerformance(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update performance")
		return
	}

	utils.ResponseSuccess(w, "Performance updated", performance)
}

// DeletePerformance handles DELETE /api/theatre/performances/{id} (admin)
func (h *PerformanceHandler) DeletePerformance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePerformance(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete performance")
		return
	}

	utils.ResponseNoContent(w)
}
