// internal/app/features/properties/handler.go

// Package properties serves the /property endpoints: listing CRUD, the
// proximity search, and the media attachment routes.
package properties

import (
	"context"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/letkeeper/letkeeper/internal/app/media"
	accountstore "github.com/letkeeper/letkeeper/internal/app/store/accounts"
	propertystore "github.com/letkeeper/letkeeper/internal/app/store/properties"
	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"github.com/letkeeper/letkeeper/internal/app/system/auditlog"
	"github.com/letkeeper/letkeeper/internal/app/system/auth"
	"github.com/letkeeper/letkeeper/internal/app/system/htmlsanitize"
	"github.com/letkeeper/letkeeper/internal/app/system/httpjson"
	"github.com/letkeeper/letkeeper/internal/app/system/timeouts"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// Handler holds the dependencies for the property endpoints.
type Handler struct {
	Properties *propertystore.Store
	Accounts   *accountstore.Store
	Media      *media.Manager
	Audit      *auditlog.Logger
	Log        *zap.Logger
}

// NewHandler constructs a properties Handler.
func NewHandler(properties *propertystore.Store, accounts *accountstore.Store, m *media.Manager, audit *auditlog.Logger, log *zap.Logger) *Handler {
	return &Handler{Properties: properties, Accounts: accounts, Media: m, Audit: audit, Log: log}
}

// sanitizeContent cleans the free-text fields before they are stored.
// The name is stripped to plain text; the rich-text fields keep safe
// formatting.
func sanitizeContent(p *models.Property) {
	p.Name = htmlsanitize.Strict(p.Name)
	p.Description = htmlsanitize.Sanitize(p.Description)
	p.ParkingType.Value = htmlsanitize.Sanitize(p.ParkingType.Value)
	p.CheckInProcess.Value = htmlsanitize.Sanitize(p.CheckInProcess.Value)
	p.PetsPolicy.Value = htmlsanitize.Sanitize(p.PetsPolicy.Value)
	p.Housekeeping.Value = htmlsanitize.Sanitize(p.Housekeeping.Value)
	for i := range p.SellingPoints {
		p.SellingPoints[i].Text = htmlsanitize.Strict(p.SellingPoints[i].Text)
	}
}

// Create handles POST /property/create.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentActor(r)
	actorID, err := actor.ObjectID()
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	sanitizeContent(&req.FormData)
	req.FormData.CreatedBy = actorID

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Properties.Create(ctx, req.FormData)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	h.Audit.Created(ctx, actorID, "property "+p.Name)

	httpjson.Respond(w, http.StatusCreated, propertyResponse{Success: true, Property: p})
}

// Update handles POST /property/update. The editor's display name comes
// from their account record, so the edit history survives later account
// changes.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentActor(r)
	actorID, err := actor.ObjectID()
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	id, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid property id", err))
		return
	}
	sanitizeContent(&req.FormData)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	editorAcct, err := h.Accounts.GetByID(ctx, actorID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	p, err := h.Properties.Update(ctx, id, req.FormData, models.UpdatedBy{
		UserID: actorID,
		Name:   editorAcct.FullName,
	})
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	h.Audit.Updated(ctx, actorID, "property "+p.Name)

	httpjson.Respond(w, http.StatusOK, propertyResponse{Success: true, Property: p})
}

// Fetch handles POST /property/fetch: one page of listings plus the
// total count across all pages.
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	listings, total, err := h.Properties.List(ctx, req.Skip, req.Limit)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, listResponse{Success: true, Listings: listings, Number: total})
}

// FetchByID handles POST /property/fetch-by-id.
func (h *Handler) FetchByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.decodePropertyID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Properties.GetByID(ctx, id)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, propertyResponse{Success: true, Property: *p})
}

// NearbySearch handles POST /property/nearby-search: listings around
// [lng, lat], nearest first, with optional attribute filters.
func (h *Handler) NearbySearch(w http.ResponseWriter, r *http.Request) {
	var req nearbyRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	results, err := h.Properties.FindNearby(ctx, req.Coordinates[0], req.Coordinates[1], req.Filters)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, nearbyResponse{Success: true, Properties: results})
}

// Delete handles POST /property/delete: admin only. Remote media is
// drained first; drain failures become warnings, never blockers, so a
// listing can always be removed.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentActor(r)
	actorID, err := actor.ObjectID()
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	id, ok := h.decodePropertyID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	p, err := h.Properties.GetByID(ctx, id)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	warnings := h.Media.DrainProperty(ctx, p)

	if err := h.Properties.Delete(ctx, id); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	h.Audit.Deleted(ctx, actorID, "property "+p.Name)

	httpjson.Respond(w, http.StatusOK, messageResponse{
		Success:  true,
		Message:  fmt.Sprintf("Property %s was deleted", p.Name),
		Warnings: warnings,
	})
}

// decodePropertyID reads the {propertyId} body shared by several routes.
func (h *Handler) decodePropertyID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	var req propertyIDRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid property id", err))
		return primitive.NilObjectID, false
	}
	return id, true
}
