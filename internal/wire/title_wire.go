package wire

import (
	"media-review/internal/adaptor"
	"media-review/internal/data/repository"
	"media-review/pkg/middleware"
	"media-review/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireTitle mounts the whole /titles subtree, including the nested
// review and comment routes, so the routing patterns live in one place.
func wireTitle(
	r chi.Router,
	titleHandler *adaptor.TitleHandler,
	reviewHandler *adaptor.ReviewHandler,
	commentHandler *adaptor.CommentHandler,
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) {
	r.Route("/api/v1/titles", func(r chi.Router) {
		// Catalogue reads are public
		r.Get("/", titleHandler.GetTitles)
		r.Get("/{title_id}", titleHandler.GetTitle)

		// Catalogue writes are admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens, log))
			r.Use(middleware.Admin(repo.User, log))

			r.Post("/", titleHandler.CreateTitle)
			r.Patch("/{title_id}", titleHandler.UpdateTitle)
			r.Delete("/{title_id}", titleHandler.DeleteTitle)
		})

		r.Route("/{title_id}/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.GetReviews)
			r.Get("/{review_id}", reviewHandler.GetReview)

			// Writes need a token; object-level ownership is
			// checked by the service layer
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(tokens, log))

				r.Post("/", reviewHandler.CreateReview)
				r.Patch("/{review_id}", reviewHandler.UpdateReview)
				r.Delete("/{review_id}", reviewHandler.DeleteReview)
			})

			r.Route("/{review_id}/comments", func(r chi.Router) {
				r.Get("/", commentHandler.GetComments)
				r.Get("/{comment_id}", commentHandler.GetComment)

				r.Group(func(r chi.Router) {
					r.Use(middleware.Auth(tokens, log))

					r.Post("/", commentHandler.CreateComment)
					r.Patch("/{comment_id}", commentHandler.UpdateComment)
					r.Delete("/{comment_id}", commentHandler.DeleteComment)
				})
			})
		})
	})
}
