package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tournio/tournaments-api/handlers"
	"github.com/tournio/tournaments-api/middleware"
	"github.com/tournio/tournaments-api/services"
)

type Config struct {
	TournamentHandler *handlers.TournamentHandler
	GameHandler       *handlers.GameHandler
	TokenHandler      *handlers.TokenHandler
	RequestLogger     func(http.Handler) http.Handler
	JWTSecret         string
}

// New assembles the router. Reads are open; every mutating route requires
// a bearer token carrying the API scope.
func New(cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.RequestLogger != nil {
		r.Use(cfg.RequestLogger)
	}
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Page-Size", "Current-Page", "Last-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireScope := middleware.RequireScope(cfg.JWTSecret, services.APIScope)

	r.Post("/connect/token", cfg.TokenHandler.Token)

	r.Route("/Tournaments", func(r chi.Router) {
		r.Get("/", cfg.TournamentHandler.List)
		r.Get("/{id}", cfg.TournamentHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(requireScope)
			r.Post("/", cfg.TournamentHandler.Create)
			r.Post("/collection", cfg.TournamentHandler.CreateCollection)
			r.Put("/", cfg.TournamentHandler.Update)
			r.Put("/collection", cfg.TournamentHandler.UpdateCollection)
			r.Patch("/{id}", cfg.TournamentHandler.Patch)
			r.Delete("/{id}", cfg.TournamentHandler.Delete)
		})
	})

	r.Route("/Games", func(r chi.Router) {
		r.Get("/", cfg.GameHandler.List)
		r.Get("/{id}", cfg.GameHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(requireScope)
			r.Post("/", cfg.GameHandler.Create)
			r.Post("/collection", cfg.GameHandler.CreateCollection)
			r.Put("/", cfg.GameHandler.Update)
			r.Put("/collection", cfg.GameHandler.UpdateCollection)
			r.Patch("/{id}", cfg.GameHandler.Patch)
			r.Delete("/{id}", cfg.GameHandler.Delete)
		})
	})

	return r
}
