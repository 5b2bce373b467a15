/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:      Request logging
  2. Recoverer:   Panic recovery (500 instead of crash)
  3. RequestID:   Unique ID per request for tracing
  4. CORS:        Cross-origin requests for the frontend
  5. BearerToken: Attaches the caller's raw token to the request context
                  for the identity provider; never rejects by itself

AUTH MODEL:
  The token middleware only transports credentials. Rejection happens in
  the repositories, which fail closed when no identity resolves, so a
  route accidentally added without auth still cannot read records.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/warp/seller-core/identity"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(BearerToken)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/me", h.Me)

		r.Route("/ledger", func(r chi.Router) {
			r.Get("/", h.ListEntries)
			r.Post("/", h.CreateEntry)
			r.Get("/{id}", h.GetEntry)
			r.Put("/{id}", h.UpdateEntry)
			r.Delete("/{id}", h.DeleteEntry)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Get("/{id}", h.GetProduct)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})
	})

	return r
}

// BearerToken extracts the Authorization bearer token into the request
// context. It passes every request through; handlers fail closed via the
// identity resolver when the token is missing or invalid.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				r = r.WithContext(identity.ContextWithToken(r.Context(), parts[1]))
			}
		}
		next.ServeHTTP(w, r)
	})
}
