package wire

import (
	"media-review/internal/adaptor"
	"media-review/internal/data/repository"
	"media-review/pkg/middleware"
	"media-review/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCategory(
	r chi.Router,
	categoryHandler *adaptor.CategoryHandler,
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) {
	r.Route("/api/v1/categories", func(r chi.Router) {
		// Anyone can browse categories
		r.Get("/", categoryHandler.GetCategories)

		// Writes are admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens, log))
			r.Use(middleware.Admin(repo.User, log))

			r.Post("/", categoryHandler.CreateCategory)
			r.Delete("/{slug}", categoryHandler.DeleteCategory)
		})
	})
}
