package public_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	feature "github.com/letkeeper/letkeeper/internal/app/features/public"
	"github.com/letkeeper/letkeeper/internal/testutil"
)

func TestProperty_OmitsAuditFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := feature.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	p := fixtures.CreateProperty(ctx, "Seaview Cottage", -0.12, 51.5)

	req := testutil.JSONRequest(t, "POST", "/public/property", map[string]any{"propertyId": p.ID.Hex()})
	rec := httptest.NewRecorder()
	h.Property(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	body := rec.Body.String()

	var resp struct {
		Success  bool `json:"success"`
		Property struct {
			Name string `json:"name"`
		} `json:"property"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Property.Name != "Seaview Cottage" {
		t.Errorf("name: got %q", resp.Property.Name)
	}

	for _, field := range []string{"createdBy", "updatedBy", "createdAt", "updatedAt"} {
		if strings.Contains(body, field) {
			t.Errorf("audit field %q leaked in public view", field)
		}
	}
}

func TestProperty_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := feature.NewHandler(db, zap.NewNop())

	req := testutil.JSONRequest(t, "POST", "/public/property", map[string]any{
		"propertyId": "64dbfa000000000000000000",
	})
	rec := httptest.NewRecorder()
	h.Property(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestProperty_RejectsMalformedID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := feature.NewHandler(db, zap.NewNop())

	req := testutil.JSONRequest(t, "POST", "/public/property", map[string]any{"propertyId": "nope"})
	rec := httptest.NewRecorder()
	h.Property(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}
