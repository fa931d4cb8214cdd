package adaptor

import (
	"net/http"

	"media-review/internal/dto/request"
	"media-review/internal/usecase"
	"media-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// GetComments handles GET /api/v1/titles/{title_id}/reviews/{review_id}/comments
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	page := parsePagination(r)

	comments, err := h.service.ListByReview(r.Context(), titleID, reviewID, page)
	if err != nil {
		handleServiceError(h.log, w, err, "list comments")
		return
	}

	utils.ResponseSuccess(w, "Comments retrieved successfully", comments)
}

// GetComment handles GET .../comments/{comment_id}
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	commentID := chi.URLParam(r, "comment_id")

	comment, err := h.service.Get(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		handleServiceError(h.log, w, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "Comment retrieved successfully", comment)
}

// CreateComment handles POST .../reviews/{review_id}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")

	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	comment, err := h.service.Create(r.Context(), titleID, reviewID, actor, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "Comment created successfully", comment)
}

// UpdateComment handles PATCH .../comments/{comment_id}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	commentID := chi.URLParam(r, "comment_id")

	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	comment, err := h.service.Update(r.Context(), titleID, reviewID, commentID, actor, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "Comment updated successfully", comment)
}

// DeleteComment handles DELETE .../comments/{comment_id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	commentID := chi.URLParam(r, "comment_id")

	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), titleID, reviewID, commentID, actor); err != nil {
		handleServiceError(h.log, w, err, "delete comment")
		return
	}

	utils.ResponseNoContent(w)
}
