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
	"theatre-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PlayService interface {
	GetPlays(ctx context.Context) ([]response.PlayListResponse, error)
	GetPlayByID(ctx context.Context, id int64) (*response.PlayDetailResponse, error)
	CreatePlay(ctx context.Context, req *request.PlayRequest) (*response.PlayWriteResponse, error)
	UpdatePlay(ctx context.Context, id int64, req *request.PlayRequest) (*response.PlayWriteResponse, error)
	DeletePlay(ctx context.Context, id int64) error
}

type playService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPlayService(repo *repository.Repository, log *zap.Logger) PlayService {
	return &playService{
		repo: repo,
		log:  log.With(zap.String("service", "play")),
	}
}

func (s *playService) GetPlays(ctx context.Context) ([]response.PlayListResponse, error) {
	plays, err := s.repo.Play.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get plays: %w", err)
	}

	result := make([]response.PlayListResponse, len(plays))
	for i, play := range plays {
		genres, actors, err := s.relations(ctx, play.ID)
		if err != nil {
			return nil, err
		}
		result[i] = response.PlayToListResponse(play, genres, actors)
	}

	return result, nil
}

func (s *playService) GetPlayByID(ctx context.Context, id int64) (*response.PlayDetailResponse, error) {
	play, err := s.repo.Play.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get play: %w", err)
	}
	if play == nil {
		return nil, &NotFoundError{Resource: "play", ID: id}
	}

	genres, actors, err := s.relations(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.PlayToDetailResponse(play, genres, actors)
	return &resp, nil
}

// CreatePlay inserts the play and its genre and actor links atomically.
func (s *playService) CreatePlay(ctx context.Context, req *request.PlayRequest) (*response.PlayWriteResponse, error) {
	play := &entity.Play{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}

	err := database.WithTx(ctx, s.repo.DB, database.ReadCommitted, func(tx pgx.Tx) error {
		if err := s.repo.Play.CreateTx(ctx, tx, play); err != nil {
			return err
		}
		return s.linkRelations(ctx, tx, play.ID, req)
	})
	if err != nil {
		return nil, s.mapWriteError(err)
	}

	s.log.Info("Play created", zap.Int64("play_id", play.ID), zap.String("title", play.Title))

	resp := response.PlayToWriteResponse(play, req.Genres, req.Actors)
	return &resp, nil
}

func (s *playService) UpdatePlay(ctx context.Context, id int64, req *request.PlayRequest) (*response.PlayWriteResponse, error) {
	play := &entity.Play{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}

	err := database.WithTx(ctx, s.repo.DB, database.ReadCommitted, func(tx pgx.Tx) error {
		found, err := s.repo.Play.UpdateTx(ctx, tx, play)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Resource: "play", ID: id}
		}
		return s.linkRelations(ctx, tx, id, req)
	})
	if err != nil {
		return nil, s.mapWriteError(err)
	}

	s.log.Info("Play updated", zap.Int64("play_id", id))

	resp := response.PlayToWriteResponse(play, req.Genres, req.Actors)
	return &resp, nil
}

func (s *playService) DeletePlay(ctx context.Context, id int64) error {
	found, err := s.repo.Play.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete play: %w", err)
	}
	if !found {
		return &NotFoundError{Resource: "play", ID: id}
	}

	s.log.Info("Play deleted", zap.Int64("play_id", id))
	return nil
}

func (s *playService) relations(ctx context.Context, playID int64) ([]*entity.Genre, []*entity.Actor, error) {
	genres, err := s.repo.Genre.FindByPlayID(ctx, playID)
	if err != nil {
		return nil, nil, fmt.Errorf("get play genres: %w", err)
	}

	actors, err := s.repo.Actor.FindByPlayID(ctx, playID)
	if err != nil {
		return nil, nil, fmt.Errorf("get play actors: %w", err)
	}

	return genres, actors, nil
}

func (s *playService) linkRelations(ctx context.Context, tx pgx.Tx, playID int64, req *request.PlayRequest) error {
	if err := s.repo.Play.ReplaceGenresTx(ctx, tx, playID, req.Genres); err != nil {
		return &relationError{field: "genres", err: err}
	}
	if err := s.repo.Play.ReplaceActorsTx(ctx, tx, playID, req.Actors); err != nil {
		return &relationError{field: "actors", err: err}
	}
	return nil
}

// relationError remembers which link table failed so a dangling id can be
// reported against the right request field.
type relationError struct {
	field string
	err   error
}

func (e *relationError) Error() string { return e.field + ": " + e.err.Error() }
func (e *relationError) Unwrap() error { return e.err }

func (s *playService) mapWriteError(err error) error {
	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return notFoundErr
	}

	var relErr *relationError
	if errors.As(err, &relErr) && errors.Is(err, repository.ErrReferenceNotFound) {
		return &ValidationError{
			Fields: map[string]string{relErr.field: "one or more " + relErr.field + " do not exist"},
			Err:    err,
		}
	}

	return fmt.Errorf("save play: %w", err)
}
