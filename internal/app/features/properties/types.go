// internal/app/features/properties/types.go
package properties

import (
	propertystore "github.com/letkeeper/letkeeper/internal/app/store/properties"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

type createRequest struct {
	FormData models.Property `json:"formData" validate:"required"`
}

type updateRequest struct {
	PropertyID string          `json:"propertyId" validate:"required"`
	FormData   models.Property `json:"formData" validate:"required"`
}

type fetchRequest struct {
	Skip  int64 `json:"skip"`
	Limit int64 `json:"limit"`
}

type propertyIDRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

type nearbyRequest struct {
	// Coordinates are [longitude, latitude], matching the stored
	// GeoJSON order.
	Coordinates []float64                   `json:"coordinates" validate:"required,len=2"`
	Filters     propertystore.NearbyFilters `json:"filters"`
}

type imagesRequest struct {
	PropertyID string         `json:"propertyId" validate:"required"`
	Images     []models.Image `json:"images" validate:"required"`
}

type deleteImageRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
	ImageID    string `json:"imageId" validate:"required"`
}

type videosRequest struct {
	PropertyID string         `json:"propertyId" validate:"required"`
	Videos     []models.Video `json:"videos" validate:"required"`
}

type floorplanRequest struct {
	PropertyID string           `json:"propertyId" validate:"required"`
	Floorplan  models.Floorplan `json:"floorplan" validate:"required"`
}

type propertyResponse struct {
	Success  bool            `json:"success"`
	Property models.Property `json:"property"`
}

type listResponse struct {
	Success  bool              `json:"success"`
	Listings []models.Property `json:"listings"`
	Number   int64             `json:"number"`
}

type nearbyResponse struct {
	Success    bool              `json:"success"`
	Properties []models.Property `json:"properties"`
}

type uploadResponse struct {
	Images []models.Image `json:"images"`
}

type floorplanUploadResponse struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

type messageResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Warnings []string `json:"warnings,omitempty"`
}
