package users_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/letkeeper/letkeeper/internal/app/features/users"
	accountstore "github.com/letkeeper/letkeeper/internal/app/store/accounts"
	"github.com/letkeeper/letkeeper/internal/app/system/auth"
	"github.com/letkeeper/letkeeper/internal/domain/models"
	"github.com/letkeeper/letkeeper/internal/testutil"
)

func newHandler(t *testing.T) (*users.Handler, *accountstore.Store) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	return users.NewHandler(store, nil, zap.NewNop()), store
}

func createAccount(t *testing.T, store *accountstore.Store, first, last, email, role string) models.Account {
	t.Helper()

	ctx, cancel := testutil.TestContext()
	defer cancel()

	acct, err := store.Create(ctx, accountstore.NewAccountInput{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  "initial-password",
		Role:      role,
	}, models.CreatedBySnapshot{})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return acct
}

func adminRequest(t *testing.T, admin models.Account, method, target string, body any) *http.Request {
	t.Helper()
	req := testutil.JSONRequest(t, method, target, body)
	return testutil.WithActor(req, &auth.Actor{ID: admin.ID.Hex(), Email: admin.Email, Role: admin.Role})
}

func TestFetchAll_ReturnsLiveAccounts(t *testing.T) {
	h, store := newHandler(t)
	admin := createAccount(t, store, "Ada", "Admin", "ada@example.com", "masteradmin")
	createAccount(t, store, "Bob", "Staff", "bob@example.com", "user")

	rec := httptest.NewRecorder()
	h.FetchAll(rec, adminRequest(t, admin, "GET", "/user/fetch-all", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Users []models.Account `json:"users"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if len(resp.Users) != 2 {
		t.Errorf("users: got %d, want 2", len(resp.Users))
	}
}

func TestDelete_SoftDeletes(t *testing.T) {
	h, store := newHandler(t)
	admin := createAccount(t, store, "Ada", "Admin", "ada@example.com", "masteradmin")
	target := createAccount(t, store, "Bob", "Staff", "bob@example.com", "user")

	rec := httptest.NewRecorder()
	h.Delete(rec, adminRequest(t, admin, "POST", "/user/delete", map[string]any{
		"accountId": target.ID.Hex(),
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Soft delete: sign-in lookup misses, direct lookup still works.
	if _, err := store.GetByEmail(ctx, "bob@example.com"); err == nil {
		t.Error("soft-deleted account still visible to GetByEmail")
	}
	acct, err := store.GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetByID after soft delete: %v", err)
	}
	if !acct.IsDeleted {
		t.Error("isDeleted not set")
	}
}

func TestUpdate_RejectsUnknownRole(t *testing.T) {
	h, store := newHandler(t)
	admin := createAccount(t, store, "Ada", "Admin", "ada@example.com", "masteradmin")
	target := createAccount(t, store, "Bob", "Staff", "bob@example.com", "user")

	rec := httptest.NewRecorder()
	h.Update(rec, adminRequest(t, admin, "POST", "/user/update", map[string]any{
		"accountId": target.ID.Hex(),
		"data": map[string]any{
			"firstName": "Bob",
			"lastName":  "Staff",
			"email":     "bob@example.com",
			"role":      "superuser",
		},
	}))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}

	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Message != "Unknown role" {
		t.Errorf("message: got %q", resp.Message)
	}
}

func TestUpdate_ChangesBasicInfo(t *testing.T) {
	h, store := newHandler(t)
	admin := createAccount(t, store, "Ada", "Admin", "ada@example.com", "masteradmin")
	target := createAccount(t, store, "Bob", "Staff", "bob@example.com", "user")

	rec := httptest.NewRecorder()
	h.Update(rec, adminRequest(t, admin, "POST", "/user/update", map[string]any{
		"accountId": target.ID.Hex(),
		"data": map[string]any{
			"firstName": "Robert",
			"lastName":  "Staff",
			"email":     "robert@example.com",
			"role":      "moderator",
		},
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Account models.Account `json:"account"`
	}
	testutil.DecodeJSON(t, rec, &resp)

	if resp.Account.FullName != "Robert Staff" {
		t.Errorf("fullName: got %q", resp.Account.FullName)
	}
	if resp.Account.Role != "moderator" {
		t.Errorf("role: got %q", resp.Account.Role)
	}
	// Alias is permanent; renames never touch it.
	if resp.Account.Alias != target.Alias {
		t.Errorf("alias changed: got %q, want %q", resp.Account.Alias, target.Alias)
	}
}

func TestChangePassword(t *testing.T) {
	h, store := newHandler(t)
	admin := createAccount(t, store, "Ada", "Admin", "ada@example.com", "masteradmin")
	target := createAccount(t, store, "Bob", "Staff", "bob@example.com", "user")

	rec := httptest.NewRecorder()
	h.ChangePassword(rec, adminRequest(t, admin, "POST", "/user/change-password", map[string]any{
		"accountId": target.ID.Hex(),
		"password":  "brand-new-password",
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()

	acct, err := store.GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if err := store.VerifyPassword(acct, "brand-new-password"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if err := store.VerifyPassword(acct, "initial-password"); err == nil {
		t.Error("old password still accepted")
	}
}
