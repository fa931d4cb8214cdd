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

type GenreService interface {
	List(ctx context.Context, page *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.GenreResponse], error)
	Create(ctx context.Context, req *request.CreateGenreRequest) (*response.GenreResponse, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
	log       *zap.Logger
}

func NewGenreService(genreRepo repository.GenreRepository, log *zap.Logger) GenreService {
	return &genreService{
		genreRepo: genreRepo,
		log:       log,
	}
}

func (s *genreService) List(ctx context.Context, page *request.PaginatedRequest, search string) (*response.PaginatedResponse[response.GenreResponse], error) {
	var searchPtr *string
	if search != "" {
		searchPtr = &search
	}

	genres, err := s.genreRepo.FindAll(ctx, page.Offset(), page.Limit(), searchPtr)
	if err != nil {
		s.log.Error("Failed to list genres", zap.Error(err))
		return nil, fmt.Errorf("failed to list genres")
	}

	total, err := s.genreRepo.CountAll(ctx, searchPtr)
	if err != nil {
		s.log.Error("Failed to count genres", zap.Error(err))
		return nil, fmt.Errorf("failed to list genres")
	}

	return response.NewPaginatedResponse(response.GenresToResponse(genres), page.Page, page.Limit(), total), nil
}

func (s *genreService) Create(ctx context.Context, req *request.CreateGenreRequest) (*response.GenreResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create genre validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.genreRepo.FindBySlug(ctx, req.Slug)
	if err != nil {
		s.log.Error("Failed to check genre slug", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("failed to check genre slug")
	}
	if existing != nil {
		return nil, fmt.Errorf("validation failed: slug already in use")
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.genreRepo.Create(ctx, genre); err != nil {
		s.log.Error("Failed to create genre", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("failed to create genre")
	}

	s.log.Info("Genre created", zap.String("slug", genre.Slug))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	genre, err := s.genreRepo.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to find genre", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to find genre")
	}
	if genre == nil {
		return fmt.Errorf("genre %s not found", slug)
	}

	if err := s.genreRepo.DeleteBySlug(ctx, slug); err != nil {
		s.log.Error("Failed to delete genre", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to delete genre")
	}

	return nil
}
