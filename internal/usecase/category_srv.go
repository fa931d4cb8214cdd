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

type CategoryService interface {
	List(ctx context.Context, page *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.CategoryResponse], error)
	Create(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	log          *zap.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepository, log *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		log:          log,
	}
}

func (s *categoryService) List(ctx context.Context, page *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.CategoryResponse], error) {
	var searchPtr *string
	if search != "" {
		searchPtr = &search
	}

	categories, err := s.categoryRepo.FindAll(ctx, page.Offset(), page.Limit(), searchPtr)
	if err != nil {
		s.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories")
	}

	total, err := s.categoryRepo.CountAll(ctx, searchPtr)
	if err != nil {
		s.log.Error("Failed to count categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories")
	}

	out := make([]response.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, response.CategoryToResponse(category))
	}

	return response.NewPaginatedResponse(out, page.Page, page.Limit(), total), nil
}

func (s *categoryService) Create(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create category validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.categoryRepo.FindBySlug(ctx, req.Slug)
	if err != nil {
		s.log.Error("Failed to check category slug", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("failed to check category slug")
	}
	if existing != nil {
		return nil, fmt.Errorf("validation failed: slug already in use")
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.log.Error("Failed to create category", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("failed to create category")
	}

	s.log.Info("Category created", zap.String("slug", category.Slug))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to find category", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to find category")
	}
	if category == nil {
		return fmt.Errorf("category %s not found", slug)
	}

	if err := s.categoryRepo.DeleteBySlug(ctx, slug); err != nil {
		s.log.Error("Failed to delete category", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to delete category")
	}

	return nil
}
