package wire

import (
	"net/http"

	"media-review/internal/adaptor"
	"media-review/internal/data/repository"
	"media-review/internal/usecase"
	"media-review/pkg/mailer"
	"media-review/pkg/middleware"
	"media-review/pkg/token"
	"media-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	tokens, err := token.NewManager(config.JWT)
	if err != nil {
		return nil, err
	}

	mail := mailer.NewSender(config.Mail, logger)

	service := usecase.NewService(repo, tokens, mail, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, tokens, config, logger)

	return &App{
		Router: router,
	}, nil
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens *token.Manager,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	wireAuth(r, handler.Auth, config, logger)
	wireUser(r, handler.User, repo, tokens, logger)
	wireCategory(r, handler.Category, repo, tokens, logger)
	wireGenre(r, handler.Genre, repo, tokens, logger)
	wireTitle(r, handler.Title, handler.Review, handler.Comment, repo, tokens, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
