// internal/app/features/public/routes.go
package public

import "github.com/go-chi/chi/v5"

// Routes returns the /public subrouter. No authentication.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/property", h.Property)

	return r
}
