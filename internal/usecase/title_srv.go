package usecase

import (
	"context"
	"fmt"
	"time"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/dto/response"
	"media-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleService interface {
	List(ctx context.Context, page *request.PaginatedRequest, filter *request.TitleListFilter) (*response.PaginatedResponse[response.TitleResponse], error)
	Get(ctx context.Context, titleID string) (*response.TitleResponse, error)
	Create(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	Update(ctx context.Context, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, titleID string) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log,
	}
}

func (s *titleService) List(ctx context.Context, page *request.PaginatedRequest, filter *request.TitleListFilter) (*response.PaginatedResponse[response.TitleResponse], error) {
	repoFilter := repository.TitleFilter{
		Name:     filter.Name,
		Category: filter.Category,
		Genre:    filter.Genre,
		Year:     filter.Year,
	}

	titles, err := s.repo.Title.FindAll(ctx, page.Offset(), page.Limit(), repoFilter)
	if err != nil {
		s.log.Error("Failed to list titles", zap.Error(err))
		return nil, fmt.Errorf("failed to list titles")
	}

	total, err := s.repo.Title.CountAll(ctx, repoFilter)
	if err != nil {
		s.log.Error("Failed to count titles", zap.Error(err))
		return nil, fmt.Errorf("failed to list titles")
	}

	out := make([]response.TitleResponse, 0, len(titles))
	for _, title := range titles {
		resp, err := s.convertTitle(ctx, title)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}

	return response.NewPaginatedResponse(out, page.Page, page.Limit(), total), nil
}

func (s *titleService) Get(ctx context.Context, titleID string) (*response.TitleResponse, error) {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	return s.convertTitle(ctx, title)
}

func (s *titleService) Create(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Year > time.Now().Year() {
		return nil, fmt.Errorf("validation failed: year cannot be in the future")
	}

	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genreIDs, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := s.repo.Title.Create(ctx, title); err != nil {
		s.log.Error("Failed to create title", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create title")
	}

	if err := s.repo.TitleGenre.ReplaceForTitle(ctx, title.ID, genreIDs); err != nil {
		s.log.Error("Failed to attach genres", zap.Error(err), zap.String("title_id", title.ID.String()))
		return nil, fmt.Errorf("failed to create title")
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name))

	return s.convertTitle(ctx, title)
}

func (s *titleService) Update(ctx context.Context, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if *req.Year > time.Now().Year() {
			return nil, fmt.Errorf("validation failed: year cannot be in the future")
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		categoryID, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = categoryID
	}
	title.UpdatedAt = time.Now()

	if err := s.repo.Title.Update(ctx, title); err != nil {
		s.log.Error("Failed to update title", zap.Error(err), zap.String("title_id", title.ID.String()))
		return nil, fmt.Errorf("failed to update title")
	}

	if len(req.Genres) > 0 {
		genreIDs, err := s.resolveGenres(ctx, req.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.repo.TitleGenre.ReplaceForTitle(ctx, title.ID, genreIDs); err != nil {
			s.log.Error("Failed to replace genres", zap.Error(err), zap.String("title_id", title.ID.String()))
			return nil, fmt.Errorf("failed to update title")
		}
	}

	return s.convertTitle(ctx, title)
}

func (s *titleService) Delete(ctx context.Context, titleID string) error {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return err
	}

	if err := s.repo.Title.Delete(ctx, title.ID); err != nil {
		s.log.Error("Failed to delete title", zap.Error(err), zap.String("title_id", title.ID.String()))
		return fmt.Errorf("failed to delete title")
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *titleService) findTitle(ctx context.Context, titleID string) (*entity.Title, error) {
	id, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("title not found")
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("failed to find title")
	}
	if title == nil {
		return nil, fmt.Errorf("title not found")
	}

	return title, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug *string) (*uuid.UUID, error) {
	if slug == nil || *slug == "" {
		return nil, nil
	}

	category, err := s.repo.Category.FindBySlug(ctx, *slug)
	if err != nil {
		s.log.Error("Failed to resolve category", zap.Error(err), zap.String("slug", *slug))
		return nil, fmt.Errorf("failed to resolve category")
	}
	if category == nil {
		return nil, fmt.Errorf("validation failed: unknown category %s", *slug)
	}

	return &category.ID, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]uuid.UUID, error) {
	genres, err := s.repo.Genre.FindBySlugs(ctx, slugs)
	if err != nil {
		s.log.Error("Failed to resolve genres", zap.Error(err), zap.Strings("slugs", slugs))
		return nil, fmt.Errorf("failed to resolve genres")
	}

	found := make(map[string]uuid.UUID, len(genres))
	for _, genre := range genres {
		found[genre.Slug] = genre.ID
	}

	ids := make([]uuid.UUID, 0, len(slugs))
	for _, slug := range slugs {
		id, ok := found[slug]
		if !ok {
			return nil, fmt.Errorf("validation failed: unknown genre %s", slug)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *titleService) convertTitle(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	var category *entity.Category
	if title.CategoryID != nil {
		var err error
		category, err = s.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			s.log.Error("Failed to load title category",
				zap.Error(err), zap.String("title_id", title.ID.String()))
			return nil, fmt.Errorf("failed to load title")
		}
	}

	genres, err := s.repo.Genre.FindByTitleID(ctx, title.ID)
	if err != nil {
		s.log.Error("Failed to load title genres",
			zap.Error(err), zap.String("title_id", title.ID.String()))
		return nil, fmt.Errorf("failed to load title")
	}

	resp := response.TitleToResponse(title, category, genres)
	return &resp, nil
}
