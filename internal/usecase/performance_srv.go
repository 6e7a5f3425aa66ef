package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"theatre-booking/internal/data/entity"
	"theatre-booking/internal/data/repository"
	"theatre-booking/internal/dto/request"
	"theatre-booking/internal/dto/response"

	"go.uber.org/zap"
)

type PerformanceService interface {
	GetPerformances(ctx context.Context) ([]response.PerformanceListResponse, error)
	GetPerformanceByID(ctx context.Context, id int64) (*response.PerformanceDetailResponse, error)
	CreatePerformance(ctx context.Context, req *request.PerformanceRequest) (*response.PerformanceWriteResponse, error)
	UpdatePerformance(ctx context.Context, id int64, req *request.PerformanceRequest) (*response.PerformanceWriteResponse, error)
	DeletePerformance(ctx context.Context, id int64) error
}

type performanceService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPerformanceService(repo *repository.Repository, log *zap.Logger) PerformanceService {
	return &performanceService{
		repo: repo,
		log:  log.With(zap.String("service", "performance")),
	}
}

// GetPerformances lists performances newest first, each with its live
// tickets_available count.
func (s *performanceService) GetPerformances(ctx context.Context) ([]response.PerformanceListResponse, error) {
	summaries, err := s.repo.Performance.FindAllSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("get performances: %w", err)
	}

	result := make([]response.PerformanceListResponse, len(summaries))
	for i, summary := range summaries {
		result[i] = response.PerformanceToListResponse(summary)
	}

	return result, nil
}

func (s *performanceService) GetPerformanceByID(ctx context.Context, id int64) (*response.PerformanceDetailResponse, error) {
	summary, err := s.repo.Performance.FindSummaryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get performance: %w", err)
	}
	if summary == nil {
		return nil, &NotFoundError{Resource: "performance", ID: id}
	}

	play, err := s.repo.Play.FindByID(ctx, summary.PlayID)
	if err != nil {
		return nil, fmt.Errorf("get performance play: %w", err)
	}
	if play == nil {
		// cascades make this unreachable unless the play was deleted mid-request
		return nil, &NotFoundError{Resource: "performance", ID: id}
	}

	genres, err := s.repo.Genre.FindByPlayID(ctx, play.ID)
	if err != nil {
		return nil, fmt.Errorf("get play genres: %w", err)
	}

	actors, err := s.repo.Actor.FindByPlayID(ctx, play.ID)
	if err != nil {
		return nil, fmt.Errorf("get play actors: %w", err)
	}

	taken, err := s.repo.Ticket.FindTakenPlaces(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get taken places: %w", err)
	}

	resp := response.PerformanceToDetailResponse(summary, response.PlayToListResponse(play, genres, actors), taken)
	return &resp, nil
}

func (s *performanceService) CreatePerformance(ctx context.Context, req *request.PerformanceRequest) (*response.PerformanceWriteResponse, error) {
	performance := &entity.Performance{
		PlayID:        req.Play,
		TheatreHallID: req.TheatreHall,
		ShowTime:      req.ShowTime,
	}

	if err := s.repo.Performance.Create(ctx, performance); err != nil {
		return nil, s.mapWriteError(err)
	}

	s.log.Info("Performance created",
		zap.Int64("performance_id", performance.ID),
		zap.Int64("play_id", performance.PlayID),
		zap.Time("show_time", performance.ShowTime),
	)

	resp := response.PerformanceToWriteResponse(performance)
	return &resp, nil
}

func (s *performanceService) UpdatePerformance(ctx context.Context, id int64, req *request.PerformanceRequest) (*response.PerformanceWriteResponse, error) {
	performance := &entity.Performance{
		ID:            id,
		PlayID:        req.Play,
		TheatreHallID: req.TheatreHall,
		ShowTime:      req.ShowTime,
	}

	found, err := s.repo.Performance.Update(ctx, performance)
	if err != nil {
		return nil, s.mapWriteError(err)
	}
	if !found {
		return nil, &NotFoundError{Resource: "performance", ID: id}
	}

	s.log.Info("Performance updated", zap.Int64("performance_id", id))

	resp := response.PerformanceToWriteResponse(performance)
	return &resp, nil
}

func (s *performanceService) DeletePerformance(ctx context.Context, id int64) error {
	found, err := s.repo.Performance.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete performance: %w", err)
	}
	if !found {
		return &NotFoundError{Resource: "performance", ID: id}
	}

	s.log.Info("Performance deleted", zap.Int64("performance_id", id))
	return nil
}

// mapWriteError turns a dangling play or hall reference into a field error.
func (s *performanceService) mapWriteError(err error) error {
	if !errors.Is(err, repository.ErrReferenceNotFound) {
		return fmt.Errorf("save performance: %w", err)
	}

	field, resource := "play", "play"
	if strings.Contains(repository.ConstraintName(err), "theatre_hall") {
		field, resource = "theatre_hall", "theatre hall"
	}

	return &ValidationError{
		Fields: map[string]string{field: resource + " does not exist"},
		Err:    err,
	}
}
