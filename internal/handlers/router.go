package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the table pages, the JSON API and static assets
func NewRouter(h *Handler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP, LoggerMiddleware(h.logger), middleware.Recoverer)

	r.Get("/", h.HandleContent)
	r.Route("/page/{pageNumber}", func(r chi.Router) {
		r.Get("/", h.HandleContent)
		r.Post("/next", h.HandleNext)
		r.Post("/prev", h.HandlePrevious)
		r.Post("/editor", h.HandleEditor)
		r.Post("/size", h.HandlePageSize)
		r.Post("/goto", h.HandleGoTo)
		r.Post("/select", h.HandleSelect)
		r.Post("/clear", h.HandleClearSelection)
	})

	r.Route("/api", func(r chi.Router) {
		if len(corsOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   corsOrigins,
				AllowedMethods:   []string{"GET", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Content-Type"},
				AllowCredentials: true,
				MaxAge:           300,
			}))
		}
		r.Get("/artworks", h.HandleArtworks)
		r.Get("/selection", h.HandleSelection)
	})

	r.Handle("/static/*", http.HandlerFunc(h.HandleStatic))
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			h.logger.Error("Unable to write healthcheck", "err", err)
		}
	})

	return r
}
