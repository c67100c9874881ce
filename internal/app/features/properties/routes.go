// internal/app/features/properties/routes.go
package properties

import (
	"github.com/go-chi/chi/v5"

	"github.com/letkeeper/letkeeper/internal/app/system/auth"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// Routes returns the /property subrouter. Every route requires a signed
// in caller; record deletion additionally requires an admin role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/create", h.Create)
	r.Post("/update", h.Update)
	r.Post("/fetch", h.Fetch)
	r.Post("/fetch-by-id", h.FetchByID)
	r.Post("/nearby-search", h.NearbySearch)

	r.Post("/upload-image", h.UploadImage)
	r.Post("/update-images", h.UpdateImages)
	r.Post("/update-images-order", h.UpdateImagesOrder)
	r.Post("/delete-image", h.DeleteImage)

	r.Post("/update-videos", h.UpdateVideos)
	r.Post("/save-videos", h.SaveVideos)

	r.Post("/upload-floorplan", h.UploadFloorplan)
	r.Post("/update-floorplan", h.UpdateFloorplan)
	r.Post("/change-floorplan", h.ChangeFloorplan)
	r.Post("/delete-floorplan", h.DeleteFloorplan)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleAdmin, models.RoleMasterAdmin))
		r.Post("/delete", h.Delete)
	})

	return r
}
