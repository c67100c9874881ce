// internal/app/features/activity/handler.go

// Package activity serves the /activity endpoints: the audit trail
// views. Masteradmin only.
package activity

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	activitystore "github.com/letkeeper/letkeeper/internal/app/store/activity"
	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"github.com/letkeeper/letkeeper/internal/app/system/httpjson"
	"github.com/letkeeper/letkeeper/internal/app/system/timeouts"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// Handler holds the dependencies for the activity endpoints.
type Handler struct {
	Activity *activitystore.Store
	Log      *zap.Logger
}

// NewHandler constructs an activity Handler.
func NewHandler(activity *activitystore.Store, log *zap.Logger) *Handler {
	return &Handler{Activity: activity, Log: log}
}

type fetchRequest struct {
	UserID string `json:"userId" validate:"required"`
	Limit  int64  `json:"limit"`
}

type fetchByDateRequest struct {
	UserID string    `json:"userId" validate:"required"`
	From   time.Time `json:"from" validate:"required"`
	To     time.Time `json:"to" validate:"required"`
	Limit  int64     `json:"limit"`
}

type listResponse struct {
	Success    bool              `json:"success"`
	Activities []models.Activity `json:"activities"`
}

// Fetch handles POST /activity/fetch: the latest entries for one
// account, newest first, capped at the default limit unless the caller
// asks for fewer.
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid account id", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, err := h.Activity.GetByActor(ctx, userID, req.Limit)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, listResponse{Success: true, Activities: entries})
}

// FetchByDate handles POST /activity/fetch-by-date: one account's
// entries within [from, to), newest first.
func (h *Handler) FetchByDate(w http.ResponseWriter, r *http.Request) {
	var req fetchByDateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid account id", err))
		return
	}
	if !req.To.After(req.From) {
		httpjson.Fail(w, h.Log, apperr.New(apperr.Validation, "Invalid date range"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, err := h.Activity.GetByActorBetween(ctx, userID, req.From, req.To, req.Limit)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, listResponse{Success: true, Activities: entries})
}
