package wire

import (
	"media-review/internal/adaptor"
	"media-review/internal/data/repository"
	"media-review/pkg/middleware"
	"media-review/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))

		// Own profile, any authenticated user
		r.Get("/me", userHandler.GetMe)
		r.Patch("/me", userHandler.UpdateMe)

		// Account administration
		r.Group(func(r chi.Router) {
			r.Use(middleware.Admin(repo.User, log))

			r.Get("/", userHandler.GetUsers)
			r.Post("/", userHandler.CreateUser)
			r.Get("/{username}", userHandler.GetUser)
			r.Patch("/{username}", userHandler.UpdateUser)
			r.Delete("/{username}", userHandler.DeleteUser)
		})
	})
}
