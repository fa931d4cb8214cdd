package usecase

import (
	"context"
	"testing"

	"media-review/internal/data/entity"
	"media-review/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateUserWithRole(t *testing.T) {
	store := newTestStore()
	svc := NewUserService(store.repo.User, zap.NewNop())

	resp, err := svc.Create(context.Background(), &request.CreateUserRequest{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     strPtr("moderator"),
	})
	require.NoError(t, err)
	assert.Equal(t, "moderator", resp.Role)

	// Role defaults to user when omitted
	resp, err = svc.Create(context.Background(), &request.CreateUserRequest{
		Username: "plain",
		Email:    "plain@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", resp.Role)
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	store := newTestStore()
	svc := NewUserService(store.repo.User, zap.NewNop())

	store.addUser("alice", entity.RoleUser)

	_, err := svc.Create(context.Background(), &request.CreateUserRequest{
		Username: "alice",
		Email:    "new@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")

	_, err = svc.Create(context.Background(), &request.CreateUserRequest{
		Username: "alice2",
		Email:    "alice@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestCreateUserRejectsBadRole(t *testing.T) {
	store := newTestStore()
	svc := NewUserService(store.repo.User, zap.NewNop())

	_, err := svc.Create(context.Background(), &request.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     strPtr("superuser"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestUpdateUserPromotesRole(t *testing.T) {
	store := newTestStore()
	svc := NewUserService(store.repo.User, zap.NewNop())

	store.addUser("alice", entity.RoleUser)

	resp, err := svc.UpdateByUsername(context.Background(), "alice", &request.UpdateUserRequest{
		Role: strPtr("admin"),
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
}

func TestUpdateMe(t *testing.T) {
	store := newTestStore()
	svc := NewUserService(store.repo.User, zap.NewNop())

	user := store.addUser("alice", entity.RoleUser)

	resp, err := svc.UpdateMe(context.Background(), user.ID, &request.UpdateMeRequest{
		Bio:       strPtr("hello"),
		FirstName: strPtr("Alice"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Bio)
	assert.Equal(t, "hello", *resp.Bio)
	assert.Equal(t, "user", resp.Role)
}

func TestDeleteUser(t *testing.T) {
	store := newTestStore()
	svc := NewUserService(store.repo.User, zap.NewNop())

	store.addUser("alice", entity.RoleUser)

	require.NoError(t, svc.DeleteByUsername(context.Background(), "alice"))
	assert.Empty(t, store.users.users)

	err := svc.DeleteByUsername(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListUsersSearch(t *testing.T) {
	store := newTestStore()
	svc := NewUserService(store.repo.User, zap.NewNop())

	store.addUser("alice", entity.RoleUser)
	store.addUser("alina", entity.RoleUser)
	store.addUser("bob", entity.RoleUser)

	resp, err := svc.List(context.Background(), firstPage(), "ali")
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)

	resp, err = svc.List(context.Background(), firstPage(), "")
	require.NoError(t, err)
	assert.Len(t, resp.Data, 3)
}
