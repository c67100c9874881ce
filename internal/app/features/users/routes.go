// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/letkeeper/letkeeper/internal/app/system/auth"
)

// Routes returns the /user subrouter. Every route is masteradmin-only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireMasterAdmin)

	r.Get("/fetch-all", h.FetchAll)
	r.Post("/delete", h.Delete)
	r.Post("/fetch-by-id", h.FetchByID)
	r.Post("/update", h.Update)
	r.Post("/change-password", h.ChangePassword)

	return r
}
