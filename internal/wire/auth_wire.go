package wire

import (
	"time"

	"media-review/internal/adaptor"
	"media-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	perMinute := config.RateLimit.AuthPerMinute
	if perMinute <= 0 {
		perMinute = 10
	}

	// Both endpoints are unauthenticated, so throttle by client IP
	// to slow down confirmation-code brute force.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(httprate.LimitByIP(perMinute, time.Minute))

		r.Post("/signup", authHandler.SignUp)
		r.Post("/token", authHandler.Token)
	})
}
