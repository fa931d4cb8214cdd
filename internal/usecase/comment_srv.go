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

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	Get(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error)
	Create(ctx context.Context, titleID, reviewID string, actor Actor, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	Update(ctx context.Context, titleID, reviewID, commentID string, actor Actor, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	Delete(ctx context.Context, titleID, reviewID, commentID string, actor Actor) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log,
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	review, err := s.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, review.ID, page.Offset(), page.Limit())
	if err != nil {
		s.log.Error("Failed to list comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("failed to list comments")
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, review.ID)
	if err != nil {
		s.log.Error("Failed to count comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("failed to list comments")
	}

	out := make([]response.CommentResponse, 0, len(comments))
	authors := map[uuid.UUID]string{}
	for _, comment := range comments {
		author, ok := authors[comment.AuthorID]
		if !ok {
			author, err = s.authorName(ctx, comment.AuthorID)
			if err != nil {
				return nil, err
			}
			authors[comment.AuthorID] = author
		}
		out = append(out, response.CommentToResponse(comment, author))
	}

	return response.NewPaginatedResponse(out, page.Page, page.Limit(), total), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error) {
	comment, err := s.resolveComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	author, err := s.authorName(ctx, comment.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, author)
	return &resp, nil
}

func (s *commentService) Create(ctx context.Context, titleID, reviewID string, actor Actor, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: review.ID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment",
			zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("failed to create comment")
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", review.ID.String()),
		zap.String("author_id", actor.ID.String()))

	author, err := s.authorName(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, author)
	return &resp, nil
}

func (s *commentService) Update(ctx context.Context, titleID, reviewID, commentID string, actor Actor, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	comment, err := s.resolveComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !actor.Owns(comment.AuthorID) && !actor.CanModerate() {
		s.log.Warn("Comment update forbidden",
			zap.String("comment_id", commentID),
			zap.String("actor_id", actor.ID.String()))
		return nil, fmt.Errorf("forbidden")
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		s.log.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("failed to update comment")
	}

	author, err := s.authorName(ctx, comment.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, author)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, titleID, reviewID, commentID string, actor Actor) error {
	comment, err := s.resolveComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !actor.Owns(comment.AuthorID) && !actor.CanModerate() {
		s.log.Warn("Comment delete forbidden",
			zap.String("comment_id", commentID),
			zap.String("actor_id", actor.ID.String()))
		return fmt.Errorf("forbidden")
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		s.log.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", commentID))
		return fmt.Errorf("failed to delete comment")
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *commentService) resolveReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	tid, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("title not found")
	}

	title, err := s.repo.Title.FindByID(ctx, tid)
	if err != nil {
		s.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("failed to find title")
	}
	if title == nil {
		return nil, fmt.Errorf("title not found")
	}

	rid, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("review not found")
	}

	review, err := s.repo.Review.FindByID(ctx, rid)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("failed to find review")
	}
	if review == nil || review.TitleID != title.ID {
		return nil, fmt.Errorf("review not found")
	}

	return review, nil
}

func (s *commentService) resolveComment(ctx context.Context, titleID, reviewID, commentID string) (*entity.Comment, error) {
	review, err := s.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(commentID)
	if err != nil {
		return nil, fmt.Errorf("comment not found")
	}

	comment, err := s.repo.Comment.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("failed to find comment")
	}
	if comment == nil || comment.ReviewID != review.ID {
		return nil, fmt.Errorf("comment not found")
	}

	return comment, nil
}

func (s *commentService) authorName(ctx context.Context, authorID uuid.UUID) (string, error) {
	user, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil {
		s.log.Error("Failed to find comment author", zap.Error(err), zap.String("author_id", authorID.String()))
		return "", fmt.Errorf("failed to load author")
	}
	if user == nil {
		return "", nil
	}
	return user.Username, nil
}
