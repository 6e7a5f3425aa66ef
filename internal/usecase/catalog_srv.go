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

// CatalogService manages the reference data plays and performances point at.
type CatalogService interface {
	GetGenres(ctx context.Context) ([]response.GenreResponse, error)
	CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	GetActors(ctx context.Context) ([]response.ActorResponse, error)
	CreateActor(ctx context.Context, req *request.ActorRequest) (*response.ActorResponse, error)
	GetTheatreHalls(ctx context.Context) ([]response.TheatreHallResponse, error)
	CreateTheatreHall(ctx context.Context, req *request.TheatreHallRequest) (*response.TheatreHallResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetGenres(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.repo.Genre.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}

	result := make([]response.GenreResponse, len(genres))
	for i, genre := range genres {
		result[i] = response.GenreToResponse(genre)
	}
	return result, nil
}

func (s *catalogService) CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	genre := &entity.Genre{Name: strings.TrimSpace(req.Name)}

	if err := s.repo.Genre.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ConflictError{
				Fields: map[string]string{"name": "genre with this name already exists"},
				Err:    err,
			}
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created", zap.Int64("genre_id", genre.ID), zap.String("name", genre.Name))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *catalogService) GetActors(ctx context.Context) ([]response.ActorResponse, error) {
	actors, err := s.repo.Actor.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get actors: %w", err)
	}

	result := make([]response.ActorResponse, len(actors))
	for i, actor := range actors {
		result[i] = response.ActorToResponse(actor)
	}
	return result, nil
}

func (s *catalogService) CreateActor(ctx context.Context, req *request.ActorRequest) (*response.ActorResponse, error) {
	actor := &entity.Actor{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}

	if err := s.repo.Actor.Create(ctx, actor); err != nil {
		return nil, fmt.Errorf("create actor: %w", err)
	}

	s.log.Info("Actor created", zap.Int64("actor_id", actor.ID))

	resp := response.ActorToResponse(actor)
	return &resp, nil
}

func (s *catalogService) GetTheatreHalls(ctx context.Context) ([]response.TheatreHallResponse, error) {
	halls, err := s.repo.TheatreHall.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get theatre halls: %w", err)
	}

	result := make([]response.TheatreHallResponse, len(halls))
	for i, hall := range halls {
		result[i] = response.TheatreHallToResponse(*hall)
	}
	return result, nil
}

func (s *catalogService) CreateTheatreHall(ctx context.Context, req *request.TheatreHallRequest) (*response.TheatreHallResponse, error) {
	hall := &entity.TheatreHall{
		Name:       strings.TrimSpace(req.Name),
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
	}

	if err := s.repo.TheatreHall.Create(ctx, hall); err != nil {
		return nil, fmt.Errorf("create theatre hall: %w", err)
	}

	s.log.Info("Theatre hall created",
		zap.Int64("theatre_hall_id", hall.ID),
		zap.Int("capacity", hall.Capacity()),
	)

	resp := response.TheatreHallToResponse(*hall)
	return &resp, nil
}
