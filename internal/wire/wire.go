package wire

import (
	"net/http"

	"theatre-booking/internal/adaptor"
	"theatre-booking/internal/data/repository"
	"theatre-booking/internal/usecase"
	"theatre-booking/pkg/middleware"
	"theatre-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the assembled HTTP stack.
type App struct {
	Router *chi.Mux
}

// Deps are the long-lived clients built in main. Redis may be nil.
type Deps struct {
	Repo      *repository.Repository
	Redis     *redis.Client
	Publisher usecase.EventPublisher
}

func Wiring(deps Deps, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(deps.Repo, deps.Publisher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, deps, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, deps Deps, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	wireAuth(r, handler.Auth, deps.Repo, logger)
	wireUser(r, handler.User, deps.Repo, logger)
	wireTheatre(r, handler, deps, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Repo.DB.Ping(r.Context()); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Database unavailable", nil, nil)
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
