// internal/app/features/users/handler.go

// Package users serves the /user endpoints: staff administration of
// other accounts. All routes require the masteradmin role.
package users

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	accountstore "github.com/letkeeper/letkeeper/internal/app/store/accounts"
	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"github.com/letkeeper/letkeeper/internal/app/system/auditlog"
	"github.com/letkeeper/letkeeper/internal/app/system/auth"
	"github.com/letkeeper/letkeeper/internal/app/system/httpjson"
	"github.com/letkeeper/letkeeper/internal/app/system/timeouts"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// Handler holds the dependencies for the user-administration endpoints.
type Handler struct {
	Accounts *accountstore.Store
	Audit    *auditlog.Logger
	Log      *zap.Logger
}

// NewHandler constructs a users Handler.
func NewHandler(accounts *accountstore.Store, audit *auditlog.Logger, log *zap.Logger) *Handler {
	return &Handler{Accounts: accounts, Audit: audit, Log: log}
}

// FetchAll handles GET /user/fetch-all: every live account, passwords
// stripped, newest first.
func (h *Handler) FetchAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Accounts.ListActive(ctx)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, listResponse{Success: true, Users: users})
}

// Delete handles POST /user/delete: the administrative soft delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.decodeAccountID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Accounts.SoftDelete(ctx, id); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, messageResponse{Success: true, Message: "Account deleted"})
}

// FetchByID handles POST /user/fetch-by-id.
func (h *Handler) FetchByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.decodeAccountID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	acct, err := h.Accounts.GetByID(ctx, id)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	acct.Password = ""
	httpjson.Respond(w, http.StatusOK, accountResponse{Success: true, Account: *acct})
}

// Update handles POST /user/update: name, email and role changes.
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
	if !models.ValidRole(req.Data.Role) {
		httpjson.Fail(w, h.Log, apperr.New(apperr.Validation, "Unknown role"))
		return
	}

	id, err := primitive.ObjectIDFromHex(req.AccountID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid account id", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	acct, err := h.Accounts.UpdateBasicInfo(ctx, id, req.Data.FirstName, req.Data.LastName, req.Data.Email, req.Data.Role)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	h.Audit.Updated(ctx, actorID, acct.FullName)

	acct.Password = ""
	httpjson.Respond(w, http.StatusOK, accountResponse{Success: true, Account: *acct})
}

// ChangePassword handles POST /user/change-password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentActor(r)
	actorID, err := actor.ObjectID()
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	var req changePasswordRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(req.AccountID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid account id", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	acct, err := h.Accounts.GetByID(ctx, id)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if err := h.Accounts.ChangePassword(ctx, id, req.Password); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	h.Audit.Updated(ctx, actorID, acct.FullName)

	httpjson.Respond(w, http.StatusOK, messageResponse{Success: true, Message: "Password changed"})
}

// decodeAccountID reads the {accountId} body shared by several routes.
func (h *Handler) decodeAccountID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	var req accountIDRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(req.AccountID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Validation, "Invalid account id", err))
		return primitive.NilObjectID, false
	}
	return id, true
}
