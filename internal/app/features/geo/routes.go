// internal/app/features/geo/routes.go
package geo

import (
	"github.com/go-chi/chi/v5"

	"github.com/letkeeper/letkeeper/internal/app/system/auth"
)

// Routes returns the /map subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/geo-location", h.Location)

	return r
}
