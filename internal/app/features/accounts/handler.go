// internal/app/features/accounts/handler.go

// Package accounts serves the /account endpoints: sign-in, sign-up,
// token refresh, current-account lookup, logout, and self-deletion.
package accounts

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	accountstore "github.com/letkeeper/letkeeper/internal/app/store/accounts"
	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"github.com/letkeeper/letkeeper/internal/app/system/auditlog"
	"github.com/letkeeper/letkeeper/internal/app/system/auth"
	"github.com/letkeeper/letkeeper/internal/app/system/httpjson"
	"github.com/letkeeper/letkeeper/internal/app/system/ratelimit"
	"github.com/letkeeper/letkeeper/internal/app/system/timeouts"
)

// Handler holds the dependencies for the account endpoints.
type Handler struct {
	Accounts *accountstore.Store
	Tokens   *auth.Manager
	Audit    *auditlog.Logger
	Limits   *ratelimit.SignInLimiter
	Log      *zap.Logger
}

// NewHandler constructs an accounts Handler.
func NewHandler(accounts *accountstore.Store, tokens *auth.Manager, audit *auditlog.Logger, limits *ratelimit.SignInLimiter, log *zap.Logger) *Handler {
	return &Handler{Accounts: accounts, Tokens: tokens, Audit: audit, Limits: limits, Log: log}
}

// SignIn handles POST /account/signin.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	if ok, reason := h.Limits.Check(r, req.Email); !ok {
		httpjson.Fail(w, h.Log, apperr.New(apperr.RateLimited, reason))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	acct, err := h.Accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if err := h.Accounts.VerifyPassword(acct, req.Password); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	token, err := h.Tokens.IssueAccess(acct.ID.Hex(), acct.Email, acct.Role)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	var refresh string
	if req.RememberMe {
		refresh, err = h.Tokens.IssueRefresh(acct.ID.Hex(), acct.Email, acct.Role, false)
		if err != nil {
			httpjson.Fail(w, h.Log, err)
			return
		}
	}

	h.Limits.ResetEmail(acct.Email)
	h.Audit.Login(ctx, acct.ID)

	httpjson.Respond(w, http.StatusOK, signInResponse{
		Success:      true,
		Message:      "Successfully login user",
		Token:        token,
		RefreshToken: refresh,
		UserID:       acct.ID.Hex(),
	})
}

// SignUp handles POST /account/signup. The caller must be signed in;
// the new account records who created it.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentActor(r)
	actorID, err := actor.ObjectID()
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	var req signUpRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	creator, err := h.Accounts.GetByID(ctx, actorID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.Unauthorized, "Permission denied. Try to login again", err))
		return
	}

	acct, err := h.Accounts.Create(ctx, accountstore.NewAccountInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	}, accountstore.Snapshot(creator))
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	h.Audit.AccountAdded(ctx, actorID, acct.FullName)

	acct.Password = ""
	httpjson.Respond(w, http.StatusCreated, signUpResponse{Success: true, Account: acct})
}

// Refresh handles POST /account/refresh: a valid refresh token earns a
// fresh access token with the account's current role.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	claims, err := h.Tokens.Validate(req.RefreshToken)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	actor := auth.Actor{ID: claims.UserID}
	accountID, err := actor.ObjectID()
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	acct, err := h.Accounts.GetByID(ctx, accountID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	token, err := h.Tokens.IssueAccess(acct.ID.Hex(), acct.Email, acct.Role)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, refreshResponse{Token: token})
}

// FetchCurrent handles GET /account/fetch.
func (h *Handler) FetchCurrent(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentActor(r)
	actorID, err := actor.ObjectID()
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	acct, err := h.Accounts.GetByID(ctx, actorID)
	if err != nil {
		httpjson.Fail(w, h.Log, apperr.Wrap(apperr.NotFound,
			"User account not found. Please check your credentials and try again.", err))
		return
	}

	acct.Password = ""
	httpjson.Respond(w, http.StatusOK, currentUserResponse{
		Success:  true,
		UserData: *acct,
		Message:  "Account info",
	})
}

// Logout handles POST /account/logout. Tokens are stateless, so this
// only records the activity; clients discard their tokens.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentActor(r)
	actorID, err := actor.ObjectID()
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	h.Audit.Logout(ctx, actorID)

	httpjson.Respond(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Successfully logout user",
	})
}

// DeleteSelf handles DELETE /account/delete: the caller hard-removes
// their own account. This is the only physical account removal path.
func (h *Handler) DeleteSelf(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentActor(r)
	actorID, err := actor.ObjectID()
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Accounts.GetByID(ctx, actorID); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if err := h.Accounts.HardDelete(ctx, actorID); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Your account was deleted",
	})
}
