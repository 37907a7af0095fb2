package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bildev/facturepro/internal/auth"
	authHandler "github.com/bildev/facturepro/internal/http/auth"
	documentHandler "github.com/bildev/facturepro/internal/http/document"
	exportHandler "github.com/bildev/facturepro/internal/http/export"
	profileHandler "github.com/bildev/facturepro/internal/http/profile"
)

func New(
	tokens *auth.TokenService,
	allowedOrigins []string,
	authV1 *authHandler.Handler,
	profileV1 *profileHandler.Handler,
	documentsV1 *documentHandler.Handler,
	exportV1 *exportHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens))

			r.Route("/profile", func(r chi.Router) {
				profileV1.Routes(r)
			})

			r.Route("/documents", func(r chi.Router) {
				documentsV1.Routes(r)
				exportV1.Routes(r)
			})
		})
	})

	return router
}
