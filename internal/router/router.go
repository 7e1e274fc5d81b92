package router

import (
	"net/http"

	"github.com/Sam-Cowman/E-Commerce/internal/handler"
	"github.com/Sam-Cowman/E-Commerce/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	tagHandler *handler.TagHandler,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Recovery outermost, then request id so the access log can carry it.
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Post("/", categoryHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", categoryHandler.GetByID)
				r.Put("/", categoryHandler.Update)
				r.Delete("/", categoryHandler.Delete)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Post("/", productHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", productHandler.GetByID)
				r.Put("/", productHandler.Update)
				r.Delete("/", productHandler.Delete)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tagHandler.List)
			r.Post("/", tagHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", tagHandler.GetByID)
				r.Put("/", tagHandler.Update)
				r.Delete("/", tagHandler.Delete)
			})
		})
	})

	return r
}
