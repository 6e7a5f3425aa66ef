package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"theatre-booking/internal/data/repository"
	"theatre-booking/internal/dto/request"
	"theatre-booking/internal/dto/response"
	"theatre-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateMe changes email and/or password. A password change revokes every
// session of the user, including the current one.
func (s *userService) UpdateMe(ctx context.Context, userID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}

	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	passwordChanged := false
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
		passwordChanged = true
	}

	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ConflictError{
				Fields: map[string]string{"email": "user with this email already exists"},
				Err:    err,
			}
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if passwordChanged {
		if err := s.repo.Session.RevokeAllUserSessions(ctx, userID); err != nil {
			s.log.Warn("Failed to revoke sessions after password change",
				zap.Error(err),
				zap.String("user_id", userID.String()),
			)
		}
	}

	s.log.Info("User updated", zap.String("user_id", userID.String()), zap.Bool("password_changed", passwordChanged))

	resp := response.UserToResponse(user)
	return &resp, nil
}
