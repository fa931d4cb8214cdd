package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"media-review/internal/data/entity"
	"media-review/pkg/token"
	"media-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUserRepo struct {
	user *entity.User
}

func (s *stubUserRepo) Create(context.Context, *entity.User) error { return nil }

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserRepo) FindByEmail(context.Context, string) (*entity.User, error) { return nil, nil }

func (s *stubUserRepo) FindByUsername(context.Context, string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindAll(context.Context, int, int, *string) ([]*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) CountAll(context.Context, *string) (int64, error) { return 0, nil }

func (s *stubUserRepo) Update(context.Context, *entity.User) error { return nil }

func (s *stubUserRepo) Delete(context.Context, uuid.UUID) error { return nil }

func newTokenManager(t *testing.T) *token.Manager {
	t.Helper()
	manager, err := token.NewManager(utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	require.NoError(t, err)
	return manager
}

func TestAuthMissingHeader(t *testing.T) {
	handler := Auth(newTokenManager(t), zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthBadFormat(t *testing.T) {
	handler := Auth(newTokenManager(t), zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthGarbageToken(t *testing.T) {
	handler := Auth(newTokenManager(t), zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSetsUserContext(t *testing.T) {
	tokens := newTokenManager(t)
	userID := uuid.New()

	signed, _, err := tokens.Issue(userID, "alice", "moderator")
	require.NoError(t, err)

	called := false
	handler := Auth(tokens, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true

		gotID, ok := utils.GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, userID, gotID)

		role, ok := utils.GetRoleFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "moderator", role)

		username, ok := utils.GetUsernameFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "alice", username)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminMiddleware(t *testing.T) {
	admin := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "root",
		Role:     entity.RoleAdmin,
	}
	repo := &stubUserRepo{user: admin}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Admin(repo, zap.NewNop())(next)

	// No identity in context
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Admin passes
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := utils.SetUserContext(req.Context(), admin.ID, admin.Username, string(admin.Role))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Unknown user is rejected even with a valid-looking context
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx = utils.SetUserContext(req.Context(), uuid.New(), "ghost", "admin")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRespectsStoredRole(t *testing.T) {
	demoted := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "was-admin",
		Role:     entity.RoleUser,
	}
	repo := &stubUserRepo{user: demoted}

	handler := Admin(repo, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	// Token still says admin, storage says user
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := utils.SetUserContext(req.Context(), demoted.ID, demoted.Username, "admin")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
