// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/go-chi/chi/v5"

	"github.com/letkeeper/letkeeper/internal/app/system/auth"
)

// Routes returns the /account subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/signin", h.SignIn)
	r.Post("/refresh", h.Refresh)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Post("/signup", h.SignUp)
		r.Get("/fetch", h.FetchCurrent)
		r.Post("/logout", h.Logout)
		r.Delete("/delete", h.DeleteSelf)
	})

	return r
}
