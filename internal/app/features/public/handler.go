// internal/app/features/public/handler.go

// Package public serves the unauthenticated listing view: the same
// property document minus audit fields.
package public

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"github.com/letkeeper/letkeeper/internal/app/system/httpjson"
	"github.com/letkeeper/letkeeper/internal/app/system/timeouts"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// Handler holds the dependencies for the public endpoints. It reads the
// properties collection directly into the public view so audit fields
// never leave the database.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a public Handler.
func NewHandler(db *mongo.Database, log *zap.Logger) *Handler {
	return &Handler{DB: db, Log: log}
}

type propertyRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

type propertyResponse struct {
	Success  bool                  `json:"success"`
	Property models.PublicProperty `json:"property"`
}

// Property handles POST /public/property.
func (h *Handler) Property(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	id, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid property id", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var p models.PublicProperty
	err = h.DB.Collection("properties").FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Fail(w, h.Log, apperr.New(apperr.NotFound, "Property not found"))
		return
	}
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, propertyResponse{Success: true, Property: p})
}
