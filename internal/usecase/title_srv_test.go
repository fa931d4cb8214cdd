package usecase

import (
	"context"
	"testing"
	"time"

	"media-review/internal/data/entity"
	"media-review/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func (s *testStore) addCategory(name, slug string) *entity.Category {
	category := &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       name,
		Slug:       slug,
	}
	s.categories.categories = append(s.categories.categories, category)
	return category
}

func (s *testStore) addGenre(name, slug string) *entity.Genre {
	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       name,
		Slug:       slug,
	}
	s.genres.genres = append(s.genres.genres, genre)
	return genre
}

func firstPage() *request.PaginatedRequest {
	return &request.PaginatedRequest{Page: 1, PerPage: 10}
}

func TestCreateTitle(t *testing.T) {
	store := newTestStore()
	svc := NewTitleService(store.repo, zap.NewNop())

	store.addCategory("Films", "films")
	store.addGenre("Drama", "drama")
	store.addGenre("Comedy", "comedy")

	resp, err := svc.Create(context.Background(), &request.CreateTitleRequest{
		Name:     "Some Film",
		Year:     1999,
		Category: strPtr("films"),
		Genres:   []string{"drama", "comedy"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Some Film", resp.Name)
	assert.Equal(t, 1999, resp.Year)
	require.NotNil(t, resp.Category)
	assert.Equal(t, "films", resp.Category.Slug)
	assert.Len(t, resp.Genres, 2)
	assert.Nil(t, resp.Rating)
}

func TestCreateTitleRejectsFutureYear(t *testing.T) {
	store := newTestStore()
	svc := NewTitleService(store.repo, zap.NewNop())
	store.addGenre("Drama", "drama")

	_, err := svc.Create(context.Background(), &request.CreateTitleRequest{
		Name:   "From The Future",
		Year:   time.Now().Year() + 1,
		Genres: []string{"drama"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year cannot be in the future")
}

func TestCreateTitleUnknownRefs(t *testing.T) {
	store := newTestStore()
	svc := NewTitleService(store.repo, zap.NewNop())
	store.addGenre("Drama", "drama")

	_, err := svc.Create(context.Background(), &request.CreateTitleRequest{
		Name:     "Some Film",
		Year:     1999,
		Category: strPtr("nope"),
		Genres:   []string{"drama"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")

	_, err = svc.Create(context.Background(), &request.CreateTitleRequest{
		Name:   "Some Film",
		Year:   1999,
		Genres: []string{"nope"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown genre")
}

func TestTitleRatingIsAverageOfScores(t *testing.T) {
	store := newTestStore()
	svc := NewTitleService(store.repo, zap.NewNop())

	title := store.addTitle("Some Film", 1999)
	alice := store.addUser("alice", entity.RoleUser)
	bob := store.addUser("bob", entity.RoleUser)

	resp, err := svc.Get(context.Background(), title.ID.String())
	require.NoError(t, err)
	assert.Nil(t, resp.Rating, "no reviews means no rating")

	store.addReview(title, alice, 4)
	store.addReview(title, bob, 7)

	resp, err = svc.Get(context.Background(), title.ID.String())
	require.NoError(t, err)
	require.NotNil(t, resp.Rating)
	assert.InDelta(t, 5.5, *resp.Rating, 0.001)
}

func TestUpdateTitleReplacesGenres(t *testing.T) {
	store := newTestStore()
	svc := NewTitleService(store.repo, zap.NewNop())

	store.addGenre("Drama", "drama")
	store.addGenre("Comedy", "comedy")

	created, err := svc.Create(context.Background(), &request.CreateTitleRequest{
		Name:   "Some Film",
		Year:   1999,
		Genres: []string{"drama"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &request.UpdateTitleRequest{
		Genres: []string{"comedy"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "comedy", updated.Genres[0].Slug)
}

func TestListTitlesFiltersByName(t *testing.T) {
	store := newTestStore()
	svc := NewTitleService(store.repo, zap.NewNop())

	store.addTitle("Winter Tale", 1999)
	store.addTitle("Summer Story", 2001)

	resp, err := svc.List(context.Background(), firstPage(), &request.TitleListFilter{Name: "winter"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Winter Tale", resp.Data[0].Name)
}

func TestGetTitleErrors(t *testing.T) {
	store := newTestStore()
	svc := NewTitleService(store.repo, zap.NewNop())

	// A malformed id is indistinguishable from a missing title for clients.
	_, err := svc.Get(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title not found")

	_, err = svc.Get(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title not found")
}
