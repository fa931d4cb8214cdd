package usecase

import (
	"context"
	"strings"
	"time"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repositories shared by the service tests

type memUserRepo struct {
	users []*entity.User
}

func (m *memUserRepo) Create(_ context.Context, user *entity.User) error {
	m.users = append(m.users, user)
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindAll(_ context.Context, offset, limit int, search *string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.users {
		if search != nil && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(*search)) {
			continue
		}
		out = append(out, u)
	}
	return paginate(out, offset, limit), nil
}

func (m *memUserRepo) CountAll(_ context.Context, search *string) (int64, error) {
	all, _ := m.FindAll(context.Background(), 0, len(m.users)+1, search)
	return int64(len(all)), nil
}

func (m *memUserRepo) Update(_ context.Context, user *entity.User) error {
	for i, u := range m.users {
		if u.ID == user.ID {
			m.users[i] = user
			return nil
		}
	}
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}

type memConfirmationRepo struct {
	codes []*entity.ConfirmationCode
}

func (m *memConfirmationRepo) Create(_ context.Context, code *entity.ConfirmationCode) error {
	m.codes = append(m.codes, code)
	return nil
}

func (m *memConfirmationRepo) FindValidByUserID(_ context.Context, userID uuid.UUID) (*entity.ConfirmationCode, error) {
	var latest *entity.ConfirmationCode
	for _, c := range m.codes {
		if c.UserID != userID || c.IsUsed || c.ExpiresAt.Before(time.Now()) {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	return latest, nil
}

func (m *memConfirmationRepo) MarkAsUsed(_ context.Context, codeID uuid.UUID) error {
	for _, c := range m.codes {
		if c.ID == codeID {
			c.IsUsed = true
		}
	}
	return nil
}

func (m *memConfirmationRepo) InvalidateForUser(_ context.Context, userID uuid.UUID) error {
	for _, c := range m.codes {
		if c.UserID == userID {
			c.IsUsed = true
		}
	}
	return nil
}

type memCategoryRepo struct {
	categories []*entity.Category
}

func (m *memCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	m.categories = append(m.categories, category)
	return nil
}

func (m *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range m.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCategoryRepo) FindAll(_ context.Context, offset, limit int, search *string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range m.categories {
		if search != nil && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(*search)) {
			continue
		}
		out = append(out, c)
	}
	return paginate(out, offset, limit), nil
}

func (m *memCategoryRepo) CountAll(_ context.Context, search *string) (int64, error) {
	all, _ := m.FindAll(context.Background(), 0, len(m.categories)+1, search)
	return int64(len(all)), nil
}

func (m *memCategoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	for i, c := range m.categories {
		if c.Slug == slug {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

type memGenreRepo struct {
	genres []*entity.Genre
	links  *memTitleGenreRepo
}

func (m *memGenreRepo) Create(_ context.Context, genre *entity.Genre) error {
	m.genres = append(m.genres, genre)
	return nil
}

func (m *memGenreRepo) FindBySlug(_ context.Context, slug string) (*entity.Genre, error) {
	for _, g := range m.genres {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, nil
}

func (m *memGenreRepo) FindBySlugs(_ context.Context, slugs []string) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, slug := range slugs {
		for _, g := range m.genres {
			if g.Slug == slug {
				out = append(out, g)
				break
			}
		}
	}
	return out, nil
}

func (m *memGenreRepo) FindByTitleID(_ context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	var out []*entity.Genre
	if m.links == nil {
		return out, nil
	}
	for _, link := range m.links.links {
		if link.TitleID != titleID {
			continue
		}
		for _, g := range m.genres {
			if g.ID == link.GenreID {
				out = append(out, g)
			}
		}
	}
	return out, nil
}

func (m *memGenreRepo) FindAll(_ context.Context, offset, limit int, search *string) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, g := range m.genres {
		if search != nil && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(*search)) {
			continue
		}
		out = append(out, g)
	}
	return paginate(out, offset, limit), nil
}

func (m *memGenreRepo) CountAll(_ context.Context, search *string) (int64, error) {
	all, _ := m.FindAll(context.Background(), 0, len(m.genres)+1, search)
	return int64(len(all)), nil
}

func (m *memGenreRepo) DeleteBySlug(_ context.Context, slug string) error {
	for i, g := range m.genres {
		if g.Slug == slug {
			m.genres = append(m.genres[:i], m.genres[i+1:]...)
			return nil
		}
	}
	return nil
}

type memTitleRepo struct {
	titles  []*entity.Title
	reviews *memReviewRepo
}

func (m *memTitleRepo) Create(_ context.Context, title *entity.Title) error {
	m.titles = append(m.titles, title)
	return nil
}

func (m *memTitleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Title, error) {
	for _, t := range m.titles {
		if t.ID == id {
			out := *t
			out.Rating = m.ratingFor(id)
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memTitleRepo) FindAll(_ context.Context, offset, limit int, filter repository.TitleFilter) ([]*entity.Title, error) {
	var out []*entity.Title
	for _, t := range m.titles {
		if filter.Name != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Year != nil && t.Year != *filter.Year {
			continue
		}
		copied := *t
		copied.Rating = m.ratingFor(t.ID)
		out = append(out, &copied)
	}
	return paginate(out, offset, limit), nil
}

func (m *memTitleRepo) CountAll(_ context.Context, filter repository.TitleFilter) (int64, error) {
	all, _ := m.FindAll(context.Background(), 0, len(m.titles)+1, filter)
	return int64(len(all)), nil
}

func (m *memTitleRepo) Update(_ context.Context, title *entity.Title) error {
	for i, t := range m.titles {
		if t.ID == title.ID {
			m.titles[i] = title
			return nil
		}
	}
	return nil
}

func (m *memTitleRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range m.titles {
		if t.ID == id {
			m.titles = append(m.titles[:i], m.titles[i+1:]...)
			return nil
		}
	}
	return nil
}

// ratingFor mirrors the AVG(score) subselect of the SQL implementation
func (m *memTitleRepo) ratingFor(titleID uuid.UUID) *float64 {
	if m.reviews == nil {
		return nil
	}
	var sum, n int
	for _, r := range m.reviews.reviews {
		if r.TitleID == titleID {
			sum += r.Score
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := float64(sum) / float64(n)
	return &avg
}

type memTitleGenreRepo struct {
	links []*entity.TitleGenre
}

func (m *memTitleGenreRepo) Create(_ context.Context, titleGenre *entity.TitleGenre) error {
	m.links = append(m.links, titleGenre)
	return nil
}

func (m *memTitleGenreRepo) ReplaceForTitle(ctx context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	m.DeleteByTitleID(ctx, titleID)
	for _, genreID := range genreIDs {
		m.links = append(m.links, &entity.TitleGenre{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			TitleID:    titleID,
			GenreID:    genreID,
		})
	}
	return nil
}

func (m *memTitleGenreRepo) DeleteByTitleID(_ context.Context, titleID uuid.UUID) error {
	var keep []*entity.TitleGenre
	for _, link := range m.links {
		if link.TitleID != titleID {
			keep = append(keep, link)
		}
	}
	m.links = keep
	return nil
}

type memReviewRepo struct {
	reviews []*entity.Review
}

func (m *memReviewRepo) Create(_ context.Context, review *entity.Review) error {
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *memReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	for _, r := range m.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memReviewRepo) FindByTitleID(_ context.Context, titleID uuid.UUID, offset, limit int) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, r := range m.reviews {
		if r.TitleID == titleID {
			out = append(out, r)
		}
	}
	return paginate(out, offset, limit), nil
}

func (m *memReviewRepo) FindByTitleAndAuthor(_ context.Context, titleID, authorID uuid.UUID) (*entity.Review, error) {
	for _, r := range m.reviews {
		if r.TitleID == titleID && r.AuthorID == authorID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memReviewRepo) CountByTitleID(_ context.Context, titleID uuid.UUID) (int64, error) {
	all, _ := m.FindByTitleID(context.Background(), titleID, 0, len(m.reviews)+1)
	return int64(len(all)), nil
}

func (m *memReviewRepo) Update(_ context.Context, review *entity.Review) error {
	for i, r := range m.reviews {
		if r.ID == review.ID {
			m.reviews[i] = review
			return nil
		}
	}
	return nil
}

func (m *memReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, r := range m.reviews {
		if r.ID == id {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return nil
}

type memCommentRepo struct {
	comments []*entity.Comment
}

func (m *memCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	m.comments = append(m.comments, comment)
	return nil
}

func (m *memCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	for _, c := range m.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCommentRepo) FindByReviewID(_ context.Context, reviewID uuid.UUID, offset, limit int) ([]*entity.Comment, error) {
	var out []*entity.Comment
	for _, c := range m.comments {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	return paginate(out, offset, limit), nil
}

func (m *memCommentRepo) CountByReviewID(_ context.Context, reviewID uuid.UUID) (int64, error) {
	all, _ := m.FindByReviewID(context.Background(), reviewID, 0, len(m.comments)+1)
	return int64(len(all)), nil
}

func (m *memCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	for i, c := range m.comments {
		if c.ID == comment.ID {
			m.comments[i] = comment
			return nil
		}
	}
	return nil
}

func (m *memCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range m.comments {
		if c.ID == id {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// memMailer captures outgoing mail for assertions
type memMailer struct {
	sent []string
}

func (m *memMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, body)
	return nil
}

// testStore bundles the in-memory repositories behind one Repository value
type testStore struct {
	users         *memUserRepo
	confirmations *memConfirmationRepo
	categories    *memCategoryRepo
	genres        *memGenreRepo
	titles        *memTitleRepo
	titleGenres   *memTitleGenreRepo
	reviews       *memReviewRepo
	comments      *memCommentRepo

	repo *repository.Repository
}

func newTestStore() *testStore {
	users := &memUserRepo{}
	confirmations := &memConfirmationRepo{}
	categories := &memCategoryRepo{}
	titleGenres := &memTitleGenreRepo{}
	genres := &memGenreRepo{links: titleGenres}
	reviews := &memReviewRepo{}
	titles := &memTitleRepo{reviews: reviews}
	comments := &memCommentRepo{}

	return &testStore{
		users:         users,
		confirmations: confirmations,
		categories:    categories,
		genres:        genres,
		titles:        titles,
		titleGenres:   titleGenres,
		reviews:       reviews,
		comments:      comments,
		repo: &repository.Repository{
			User:         users,
			Confirmation: confirmations,
			Category:     categories,
			Genre:        genres,
			Title:        titles,
			TitleGenre:   titleGenres,
			Review:       reviews,
			Comment:      comments,
		},
	}
}

func (s *testStore) addUser(username string, role entity.UserRole) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		IsActive: true,
	}
	s.users.users = append(s.users.users, user)
	return user
}

func (s *testStore) addTitle(name string, year int) *entity.Title {
	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: name,
		Year: year,
	}
	s.titles.titles = append(s.titles.titles, title)
	return title
}

func (s *testStore) addReview(title *entity.Title, author *entity.User, score int) *entity.Review {
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		TitleID:    title.ID,
		AuthorID:   author.ID,
		Text:       "some text",
		Score:      score,
	}
	s.reviews.reviews = append(s.reviews.reviews, review)
	return review
}

func (s *testStore) addComment(review *entity.Review, author *entity.User) *entity.Comment {
	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		ReviewID:   review.ID,
		AuthorID:   author.ID,
		Text:       "a comment",
	}
	s.comments.comments = append(s.comments.comments, comment)
	return comment
}
