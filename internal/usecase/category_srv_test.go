package usecase

import (
	"context"
	"testing"

	"media-review/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateCategory(t *testing.T) {
	store := newTestStore()
	svc := NewCategoryService(store.repo.Category, zap.NewNop())

	resp, err := svc.Create(context.Background(), &request.CreateCategoryRequest{
		Name: "Films",
		Slug: "films",
	})
	require.NoError(t, err)
	assert.Equal(t, "films", resp.Slug)

	_, err = svc.Create(context.Background(), &request.CreateCategoryRequest{
		Name: "Movies",
		Slug: "films",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")
}

func TestCreateCategoryRejectsBadSlug(t *testing.T) {
	store := newTestStore()
	svc := NewCategoryService(store.repo.Category, zap.NewNop())

	_, err := svc.Create(context.Background(), &request.CreateCategoryRequest{
		Name: "Films",
		Slug: "no spaces!",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestDeleteCategory(t *testing.T) {
	store := newTestStore()
	svc := NewCategoryService(store.repo.Category, zap.NewNop())

	store.addCategory("Films", "films")

	require.NoError(t, svc.Delete(context.Background(), "films"))
	assert.Empty(t, store.categories.categories)

	err := svc.Delete(context.Background(), "films")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGenreLifecycle(t *testing.T) {
	store := newTestStore()
	svc := NewGenreService(store.repo.Genre, zap.NewNop())

	resp, err := svc.Create(context.Background(), &request.CreateGenreRequest{
		Name: "Drama",
		Slug: "drama",
	})
	require.NoError(t, err)
	assert.Equal(t, "drama", resp.Slug)

	_, err = svc.Create(context.Background(), &request.CreateGenreRequest{
		Name: "Drama Again",
		Slug: "drama",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")

	require.NoError(t, svc.Delete(context.Background(), "drama"))

	err = svc.Delete(context.Background(), "drama")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListCategoriesSearch(t *testing.T) {
	store := newTestStore()
	svc := NewCategoryService(store.repo.Category, zap.NewNop())

	store.addCategory("Films", "films")
	store.addCategory("Books", "books")

	resp, err := svc.List(context.Background(), firstPage(), "film")
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "films", resp.Data[0].Slug)
	assert.Equal(t, int64(1), resp.Pagination.Total)
}
