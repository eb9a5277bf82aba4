package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"agentproxy-backend/internal/handlers"
	"agentproxy-backend/internal/middleware"
)

func New(
	relayHandler *handlers.RelayHandler,
	staticHandler *handlers.StaticHandler,
	allowedOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(allowedOrigin))

	// Health check
	r.Get("/health", relayHandler.Health)

	// ──── API Routes ────
	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", relayHandler.Generate)
		r.Get("/colab-status", relayHandler.ColabStatus)
	})

	// ──── Frontend ────
	r.Get("/", staticHandler.Index)
	r.Handle("/static/*", staticHandler.Assets())

	return r
}
