// internal/testutil/http.go
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/letkeeper/letkeeper/internal/app/system/auth"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// AdminActor returns an authenticated masteradmin caller for tests.
func AdminActor() *auth.Actor {
	return &auth.Actor{
		ID:    primitive.NewObjectID().Hex(),
		Email: "admin@test.com",
		Role:  models.RoleMasterAdmin,
	}
}

// StaffActor returns an authenticated regular caller for tests.
func StaffActor() *auth.Actor {
	return &auth.Actor{
		ID:    primitive.NewObjectID().Hex(),
		Email: "staff@test.com",
		Role:  models.RoleUser,
	}
}

// JSONRequest builds a request with a JSON-encoded body.
func JSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithActor injects an authenticated caller into the request context,
// the way the auth middleware does in production.
func WithActor(r *http.Request, a *auth.Actor) *http.Request {
	return r.WithContext(auth.ContextWithActor(r.Context(), a))
}

// DecodeJSON unmarshals a response recorder body into dst.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}
