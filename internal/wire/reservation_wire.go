package wire

import (
	"theatre-booking/internal/adaptor"
	"theatre-booking/pkg/middleware"
	"theatre-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireReservation expects to be mounted under an authenticated route. Only
// creation is throttled.
func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler, deps Deps, config *utils.Config, log *zap.Logger) {
	r.Get("/", reservationHandler.GetReservations)

	if !config.RateLimit.Enabled {
		r.Post("/", reservationHandler.CreateReservation)
		return
	}

	limiter := middleware.NewRateLimiter(deps.Redis, config.RateLimit, log)
	r.With(limiter.Middleware).Post("/", reservationHandler.CreateReservation)
}
