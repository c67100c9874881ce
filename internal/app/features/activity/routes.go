// internal/app/features/activity/routes.go
package activity

import (
	"github.com/go-chi/chi/v5"

	"github.com/letkeeper/letkeeper/internal/app/system/auth"
)

// Routes returns the /activity subrouter. The audit trail is
// masteradmin-only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireMasterAdmin)

	r.Post("/fetch", h.Fetch)
	r.Post("/fetch-by-date", h.FetchByDate)

	return r
}
