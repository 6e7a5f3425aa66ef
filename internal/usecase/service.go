package usecase

import (
	"theatre-booking/internal/data/repository"
	"theatre-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Catalog     CatalogService
	Play        PlayService
	Performance PerformanceService
	Reservation ReservationService
}

func NewService(repo *repository.Repository, publisher EventPublisher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		User:        NewUserService(repo, log),
		Catalog:     NewCatalogService(repo, log),
		Play:        NewPlayService(repo, log),
		Performance: NewPerformanceService(repo, log),
		Reservation: NewReservationService(repo, publisher, log),
	}
}
