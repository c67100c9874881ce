// internal/app/features/guests/routes.go
package guests

import (
	"github.com/go-chi/chi/v5"

	"github.com/letkeeper/letkeeper/internal/app/system/auth"
)

// Routes returns the /guest subrouter. All routes require a signed-in
// caller.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/create", h.Create)
	r.Post("/delete", h.Delete)
	r.Post("/fetch", h.Fetch)
	r.Post("/fetch-future-guests", h.FetchFuture)
	r.Post("/fetch-past-guests", h.FetchPast)

	return r
}
