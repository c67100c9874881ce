// internal/app/features/geo/handler.go

// Package geo serves the /map endpoints: forward geocoding lookups used
// when a listing address is entered.
package geo

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/letkeeper/letkeeper/internal/app/system/geocode"
	"github.com/letkeeper/letkeeper/internal/app/system/httpjson"
	"github.com/letkeeper/letkeeper/internal/app/system/timeouts"
)

// Handler holds the dependencies for the geocoding endpoints.
type Handler struct {
	Geocoder *geocode.Client
	Log      *zap.Logger
}

// NewHandler constructs a geo Handler.
func NewHandler(geocoder *geocode.Client, log *zap.Logger) *Handler {
	return &Handler{Geocoder: geocoder, Log: log}
}

type locationRequest struct {
	Query string `json:"query" validate:"required"`
}

type locationResponse struct {
	Success bool             `json:"success"`
	Results []geocode.Result `json:"results"`
}

// Location handles POST /map/geo-location: resolve a free-text address
// to candidate positions.
func (h *Handler) Location(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	results, err := h.Geocoder.Search(ctx, req.Query)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, locationResponse{Success: true, Results: results})
}
