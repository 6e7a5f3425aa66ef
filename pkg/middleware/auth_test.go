package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"theatre-booking/internal/data/entity"
	"theatre-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func serveWithAuth(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/theatre/plays", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthSession(t *testing.T) {
	userID := uuid.New()
	token := uuid.NewString()

	repo := new(mockSessionRepo)
	repo.On("FindValidSession", mock.Anything, token).Return(&entity.Session{
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	var seenUser uuid.UUID
	var seenToken string
	h := AuthSession(repo, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = utils.GetUserIDFromContext(r.Context())
		seenToken, _ = utils.GetTokenFromContext(r.Context())
	}))

	rec := serveWithAuth(h, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, seenUser)
	assert.Equal(t, token, seenToken)
	repo.AssertExpectations(t)
}

func TestAuthSession_Rejects(t *testing.T) {
	unknown := uuid.NewString()

	repo := new(mockSessionRepo)
	repo.On("FindValidSession", mock.Anything, unknown).Return(nil, nil)

	h := AuthSession(repo, zap.NewNop())(okHandler())

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token " + unknown},
		{"no token", "Bearer "},
		{"not a uuid", "Bearer abc"},
		{"unknown session", "Bearer " + unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, serveWithAuth(h, tt.header).Code)
		})
	}
}

func TestAdminForWrites(t *testing.T) {
	customerID := uuid.New()
	adminID := uuid.New()

	users := new(mockUserRepo)
	users.On("FindByID", mock.Anything, customerID).Return(&entity.User{Role: entity.RoleCustomer}, nil)
	users.On("FindByID", mock.Anything, adminID).Return(&entity.User{Role: entity.RoleAdmin}, nil)

	h := AdminForWrites(users, zap.NewNop())(okHandler())

	serve := func(method string, userID uuid.UUID) int {
		req := httptest.NewRequest(method, "/api/theatre/genres", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), userID))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, serve(http.MethodGet, customerID))
	assert.Equal(t, http.StatusForbidden, serve(http.MethodPost, customerID))
	assert.Equal(t, http.StatusCreated, serve(http.MethodPost, adminID))
}
