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

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error)
	Create(ctx context.Context, titleID string, actor Actor, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Update(ctx context.Context, titleID, reviewID string, actor Actor, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, titleID, reviewID string, actor Actor) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log,
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	title, err := s.resolveTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, title.ID, page.Offset(), page.Limit())
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("failed to list reviews")
	}

	total, err := s.repo.Review.CountByTitleID(ctx, title.ID)
	if err != nil {
		s.log.Error("Failed to count reviews", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("failed to list reviews")
	}

	out := make([]response.ReviewResponse, 0, len(reviews))
	authors := map[uuid.UUID]string{}
	for _, review := range reviews {
		author, ok := authors[review.AuthorID]
		if !ok {
			author, err = s.authorName(ctx, review.AuthorID)
			if err != nil {
				return nil, err
			}
			authors[review.AuthorID] = author
		}
		out = append(out, response.ReviewToResponse(review, author))
	}

	return response.NewPaginatedResponse(out, page.Page, page.Limit(), total), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	author, err := s.authorName(ctx, review.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, author)
	return &resp, nil
}

func (s *reviewService) Create(ctx context.Context, titleID string, actor Actor, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	title, err := s.resolveTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	// One review per user per title. The unique constraint backs this up
	// under concurrent duplicates.
	existing, err := s.repo.Review.FindByTitleAndAuthor(ctx, title.ID, actor.ID)
	if err != nil {
		s.log.Error("Failed to check existing review",
			zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("failed to check existing review")
	}
	if existing != nil {
		return nil, fmt.Errorf("you have already reviewed this title")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  title.ID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("failed to create review")
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", title.ID.String()),
		zap.String("author_id", actor.ID.String()))

	author, err := s.authorName(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, author)
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, titleID, reviewID string, actor Actor, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !actor.Owns(review.AuthorID) && !actor.CanModerate() {
		s.log.Warn("Review update forbidden",
			zap.String("review_id", reviewID),
			zap.String("actor_id", actor.ID.String()))
		return nil, fmt.Errorf("forbidden")
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("failed to update review")
	}

	author, err := s.authorName(ctx, review.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, author)
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, reviewID string, actor Actor) error {
	review, err := s.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !actor.Owns(review.AuthorID) && !actor.CanModerate() {
		s.log.Warn("Review delete forbidden",
			zap.String("review_id", reviewID),
			zap.String("actor_id", actor.ID.String()))
		return fmt.Errorf("forbidden")
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("failed to delete review")
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) resolveTitle(ctx context.Context, titleID string) (*entity.Title, error) {
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

// resolveReview loads the review and checks it belongs to the title in the path
func (s *reviewService) resolveReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	title, err := s.resolveTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("review not found")
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("failed to find review")
	}
	if review == nil || review.TitleID != title.ID {
		return nil, fmt.Errorf("review not found")
	}

	return review, nil
}

func (s *reviewService) authorName(ctx context.Context, authorID uuid.UUID) (string, error) {
	user, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil {
		s.log.Error("Failed to find review author", zap.Error(err), zap.String("author_id", authorID.String()))
		return "", fmt.Errorf("failed to load author")
	}
	if user == nil {
		// Author rows cascade with their reviews, so this is unexpected
		return "", nil
	}
	return user.Username, nil
}
