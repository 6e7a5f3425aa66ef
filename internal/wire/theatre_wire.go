package wire

import (
	"theatre-booking/internal/adaptor"
	"theatre-booking/pkg/middleware"
	"theatre-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireTheatre mounts every /api/theatre route behind AuthSession. Catalog,
// play and performance writes are admin only; reservations are open to any
// authenticated user.
func wireTheatre(r chi.Router, handler *adaptor.Handler, deps Deps, config *utils.Config, log *zap.Logger) {
	r.Route("/api/theatre", func(r chi.Router) {
		r.Use(middleware.AuthSession(deps.Repo.Session, log))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminForWrites(deps.Repo.User, log))

			r.Get("/genres", handler.Catalog.GetGenres)
			r.Post("/genres", handler.Catalog.CreateGenre)

			r.Get("/actors", handler.Catalog.GetActors)
			r.Post("/actors", handler.Catalog.CreateActor)

			r.Get("/theatre-halls", handler.Catalog.GetTheatreHalls)
			r.Post("/theatre-halls", handler.Catalog.CreateTheatreHall)

			r.Route("/plays", func(r chi.Router) {
				r.Get("/", handler.Play.GetPlays)
				r.Post("/", handler.Play.CreatePlay)
				r.Get("/{id}", handler.Play.GetPlayByID)
				r.Put("/{id}", handler.Play.UpdatePlay)
				r.Delete("/{id}", handler.Play.DeletePlay)
			})

			r.Route("/performances", func(r chi.Router) {
				r.Get("/", handler.Performance.GetPerformances)
				r.Post("/", handler.Performance.CreatePerformance)
				r.Get("/{id}", handler.Performance.GetPerformanceByID)
				r.Put("/{id}", handler.Performance.UpdatePerformance)
				r.Delete("/{id}", handler.Performance.DeletePerformance)
			})
		})

		r.Route("/reservations", func(r chi.Router) {
			wireReservation(r, handler.Reservation, deps, config, log)
		})
	})
}
