// internal/app/features/guests/handler.go

// Package guests serves the /guest endpoints: recording bookings,
// removing them, and the booking list views.
package guests

import (
	"context"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	gueststore "github.com/letkeeper/letkeeper/internal/app/store/guests"
	propertystore "github.com/letkeeper/letkeeper/internal/app/store/properties"
	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"github.com/letkeeper/letkeeper/internal/app/system/auditlog"
	"github.com/letkeeper/letkeeper/internal/app/system/auth"
	"github.com/letkeeper/letkeeper/internal/app/system/httpjson"
	"github.com/letkeeper/letkeeper/internal/app/system/timeouts"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// Handler holds the dependencies for the guest endpoints.
type Handler struct {
	Guests     *gueststore.Store
	Properties *propertystore.Store
	Audit      *auditlog.Logger
	Log        *zap.Logger
}

// NewHandler constructs a guests Handler.
func NewHandler(guests *gueststore.Store, properties *propertystore.Store, audit *auditlog.Logger, log *zap.Logger) *Handler {
	return &Handler{Guests: guests, Properties: properties, Audit: audit, Log: log}
}

// Create handles POST /guest/create. The property must exist; the
// activity entry names both the guest and the property.
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
	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid property id", err))
		return
	}
	if !req.CheckOut.After(req.CheckIn) {
		httpjson.Fail(w, h.Log, apperr.New(apperr.Validation, "Check-out must be after check-in"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Properties.GetByID(ctx, propertyID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	g, err := h.Guests.Create(ctx, models.Guest{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Supplier:   req.Supplier,
		Identifier: req.Identifier,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		CreatedBy:  actorID,
		PropertyID: propertyID,
		Other:      req.Other,
	})
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	h.Audit.Created(ctx, actorID, fmt.Sprintf("guest %s for %s", g.Name, p.Name))

	httpjson.Respond(w, http.StatusCreated, createResponse{
		Success: true,
		Guest:   g,
		Message: "Guest was added",
	})
}

// Delete handles POST /guest/delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentActor(r)
	actorID, err := actor.ObjectID()
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	var req guestIDRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	id, err := primitive.ObjectIDFromHex(req.GuestID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid guest id", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Guests.GetByID(ctx, id)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if err := h.Guests.Delete(ctx, id); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	target := "guest " + g.Name
	if p, perr := h.Properties.GetByID(ctx, g.PropertyID); perr == nil {
		target = fmt.Sprintf("guest %s from %s", g.Name, p.Name)
	}
	h.Audit.Deleted(ctx, actorID, target)

	httpjson.Respond(w, http.StatusOK, messageResponse{Success: true, Message: "Guest was deleted"})
}

// Fetch handles POST /guest/fetch: a page of bookings ordered by
// check-in. Without an explicit window the page covers future check-ins
// only; with from and to the window is [from, to).
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	guests, total, err := h.Guests.List(ctx, req.Skip, req.Limit, req.From, req.To)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, listResponse{Success: true, Guests: guests, Number: total})
}

// FetchFuture handles POST /guest/fetch-future-guests: a property's
// upcoming bookings plus the next check-in date.
func (h *Handler) FetchFuture(w http.ResponseWriter, r *http.Request) {
	id, ok := h.decodePropertyID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	guests, next, err := h.Guests.FutureByProperty(ctx, id)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, futureResponse{
		Success:         true,
		Guests:          guests,
		NextBookingDate: next,
	})
}

// FetchPast handles POST /guest/fetch-past-guests.
func (h *Handler) FetchPast(w http.ResponseWriter, r *http.Request) {
	id, ok := h.decodePropertyID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	guests, err := h.Guests.PastByProperty(ctx, id)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, pastResponse{Success: true, Guests: guests})
}

// decodePropertyID reads the {propertyId} body shared by the per-property
// list routes.
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
