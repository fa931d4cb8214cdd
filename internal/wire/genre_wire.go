package wire

import (
	"media-review/internal/adaptor"
	"media-review/internal/data/repository"
	"media-review/pkg/middleware"
	"media-review/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGenre(
	r chi.Router,
	genreHandler *adaptor.GenreHandler,
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) {
	r.Route("/api/v1/genres", func(r chi.Router) {
		// Anyone can browse genres
		r.Get("/", genreHandler.GetGenres)

		// Writes are admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens, log))
			r.Use(middleware.Admin(repo.User, log))

			r.Post("/", genreHandler.CreateGenre)
			r.Delete("/{slug}", genreHandler.DeleteGenre)
		})
	})
}
