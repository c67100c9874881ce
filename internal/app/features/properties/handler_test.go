package properties_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	feature "github.com/letkeeper/letkeeper/internal/app/features/properties"
	"github.com/letkeeper/letkeeper/internal/app/media"
	accountstore "github.com/letkeeper/letkeeper/internal/app/store/accounts"
	propertystore "github.com/letkeeper/letkeeper/internal/app/store/properties"
	"github.com/letkeeper/letkeeper/internal/app/system/auth"
	"github.com/letkeeper/letkeeper/internal/domain/models"
	"github.com/letkeeper/letkeeper/internal/testutil"
)

// fakeObjects is an in-memory object store. Delete returns 204 unless a
// status or error is registered for the key.
type fakeObjects struct {
	statuses map[string]int
	deleted  []string
}

func (f *fakeObjects) Put(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	return "https://cdn.test/" + key, nil
}

func (f *fakeObjects) Delete(_ context.Context, key string) (int, error) {
	f.deleted = append(f.deleted, key)
	if status, ok := f.statuses[key]; ok {
		return status, nil
	}
	return http.StatusNoContent, nil
}

type env struct {
	handler    *feature.Handler
	properties *propertystore.Store
	accounts   *accountstore.Store
	objects    *fakeObjects
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.SetupTestDB(t)
	props := propertystore.New(db)
	accts := accountstore.New(db)
	objects := &fakeObjects{statuses: map[string]int{}}
	mgr := media.New(props, objects, "properties", zap.NewNop())

	return &env{
		handler:    feature.NewHandler(props, accts, mgr, nil, zap.NewNop()),
		properties: props,
		accounts:   accts,
		objects:    objects,
	}
}

func (e *env) staffActor(t *testing.T) *auth.Actor {
	t.Helper()

	ctx, cancel := testutil.TestContext()
	defer cancel()

	acct, err := e.accounts.Create(ctx, accountstore.NewAccountInput{
		FirstName: "Pat",
		LastName:  "Manager",
		Email:     "pat@example.com",
		Password:  "irrelevant-here",
		Role:      "user",
	}, models.CreatedBySnapshot{})
	if err != nil {
		t.Fatalf("create staff account: %v", err)
	}
	return &auth.Actor{ID: acct.ID.Hex(), Email: acct.Email, Role: acct.Role}
}

func formData(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"type":        "apartment",
		"description": "<p>Bright and airy.</p>",
		"address": map[string]any{
			"city":     "London",
			"position": map[string]any{"type": "Point", "coordinates": []float64{-0.12, 51.5}},
		},
		"bedrooms": []map[string]any{
			{"type": "double", "name": "Master", "beds": []any{"double"}},
			{"type": "twin", "name": "Second", "beds": []any{"single", "single"}},
		},
		"bathrooms": []map[string]any{
			{"type": "full", "value": "1"},
			{"type": "en-suite", "value": "0.5"},
		},
	}
}

func TestCreate_DerivesCountsAndStripsMarkup(t *testing.T) {
	e := newEnv(t)
	actor := e.staffActor(t)

	form := formData("Seaview Cottage")
	form["description"] = `<p>Nice</p><script>alert(1)</script>`

	req := testutil.JSONRequest(t, "POST", "/property/create", map[string]any{"formData": form})
	req = testutil.WithActor(req, actor)
	rec := httptest.NewRecorder()
	e.handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		Property models.Property `json:"property"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	p := resp.Property

	if p.Alias != "seaview-cottage" {
		t.Errorf("alias: got %q", p.Alias)
	}
	if p.NumberOfBedrooms != 2 || p.NumberOfBeds != 3 || p.NumberOfBathrooms != 1.5 {
		t.Errorf("derived counts: got %d/%d/%v", p.NumberOfBedrooms, p.NumberOfBeds, p.NumberOfBathrooms)
	}
	if p.Description != "<p>Nice</p>" {
		t.Errorf("description not sanitized: got %q", p.Description)
	}
	if p.CreatedBy.Hex() != actor.ID {
		t.Errorf("createdBy: got %s, want %s", p.CreatedBy.Hex(), actor.ID)
	}
}

func TestUpdate_PrependsEditor(t *testing.T) {
	e := newEnv(t)
	actor := e.staffActor(t)

	create := testutil.JSONRequest(t, "POST", "/property/create", map[string]any{"formData": formData("Seaview Cottage")})
	create = testutil.WithActor(create, actor)
	rec := httptest.NewRecorder()
	e.handler.Create(rec, create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var created struct {
		Property models.Property `json:"property"`
	}
	testutil.DecodeJSON(t, rec, &created)

	form := formData("Seaview Cottage Renamed")
	req := testutil.JSONRequest(t, "POST", "/property/update", map[string]any{
		"propertyId": created.Property.ID.Hex(),
		"formData":   form,
	})
	req = testutil.WithActor(req, actor)
	rec = httptest.NewRecorder()
	e.handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("update status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var updated struct {
		Property models.Property `json:"property"`
	}
	testutil.DecodeJSON(t, rec, &updated)
	p := updated.Property

	if p.Name != "Seaview Cottage Renamed" {
		t.Errorf("name: got %q", p.Name)
	}
	if p.Alias != "seaview-cottage" {
		t.Errorf("alias must not change on update: got %q", p.Alias)
	}
	if len(p.UpdatedBy) != 1 {
		t.Fatalf("updatedBy entries: got %d, want 1", len(p.UpdatedBy))
	}
	if p.UpdatedBy[0].Name != "Pat Manager" {
		t.Errorf("editor name: got %q", p.UpdatedBy[0].Name)
	}
}

func TestFetch_PagesWithTotal(t *testing.T) {
	e := newEnv(t)
	actor := e.staffActor(t)

	for _, name := range []string{"First Flat", "Second Flat", "Third Flat"} {
		req := testutil.JSONRequest(t, "POST", "/property/create", map[string]any{"formData": formData(name)})
		req = testutil.WithActor(req, actor)
		rec := httptest.NewRecorder()
		e.handler.Create(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %q: status %d (body %s)", name, rec.Code, rec.Body.String())
		}
	}

	req := testutil.JSONRequest(t, "POST", "/property/fetch", map[string]any{"skip": 0, "limit": 2})
	rec := httptest.NewRecorder()
	e.handler.Fetch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Listings []models.Property `json:"listings"`
		Number   int64             `json:"number"`
	}
	testutil.DecodeJSON(t, rec, &resp)

	if len(resp.Listings) != 2 {
		t.Errorf("page size: got %d, want 2", len(resp.Listings))
	}
	if resp.Number != 3 {
		t.Errorf("total: got %d, want 3", resp.Number)
	}
}

func TestDelete_DrainsMediaAndReportsWarnings(t *testing.T) {
	e := newEnv(t)
	actor := e.staffActor(t)

	create := testutil.JSONRequest(t, "POST", "/property/create", map[string]any{"formData": formData("Doomed Flat")})
	create = testutil.WithActor(create, actor)
	rec := httptest.NewRecorder()
	e.handler.Create(rec, create)

	var created struct {
		Property models.Property `json:"property"`
	}
	testutil.DecodeJSON(t, rec, &created)
	id := created.Property.ID

	ctx, cancel := testutil.TestContext()
	defer cancel()
	images := []models.Image{
		{Key: "properties/a.jpeg", Name: "a", URL: "https://cdn.test/properties/a.jpeg"},
		{Key: "properties/b.jpeg", Name: "b", URL: "https://cdn.test/properties/b.jpeg"},
	}
	if err := e.properties.PushImages(ctx, id, images); err != nil {
		t.Fatalf("push images: %v", err)
	}
	e.objects.statuses["properties/b.jpeg"] = http.StatusInternalServerError

	req := testutil.JSONRequest(t, "POST", "/property/delete", map[string]any{"propertyId": id.Hex()})
	req = testutil.WithActor(req, &auth.Actor{ID: actor.ID, Email: actor.Email, Role: models.RoleAdmin})
	rec = httptest.NewRecorder()
	e.handler.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message  string   `json:"message"`
		Warnings []string `json:"warnings"`
	}
	testutil.DecodeJSON(t, rec, &resp)

	if resp.Message != "Property Doomed Flat was deleted" {
		t.Errorf("message: got %q", resp.Message)
	}
	if len(resp.Warnings) != 1 {
		t.Errorf("warnings: got %d, want 1 (%v)", len(resp.Warnings), resp.Warnings)
	}

	// A failed remote delete never blocks record removal.
	if _, err := e.properties.GetByID(ctx, id); err == nil {
		t.Error("property record still present after delete")
	}
}

func TestDelete_RequiresAdminRole(t *testing.T) {
	e := newEnv(t)

	router := feature.Routes(e.handler)

	req := testutil.JSONRequest(t, "POST", "/delete", map[string]any{"propertyId": "irrelevant"})
	req = testutil.WithActor(req, testutil.StaffActor())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestDetachImage_KeepsDescriptorWhenRemoteDeleteFails(t *testing.T) {
	e := newEnv(t)
	actor := e.staffActor(t)

	create := testutil.JSONRequest(t, "POST", "/property/create", map[string]any{"formData": formData("Media Flat")})
	create = testutil.WithActor(create, actor)
	rec := httptest.NewRecorder()
	e.handler.Create(rec, create)

	var created struct {
		Property models.Property `json:"property"`
	}
	testutil.DecodeJSON(t, rec, &created)
	id := created.Property.ID

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := e.properties.PushImages(ctx, id, []models.Image{
		{Key: "properties/stuck.jpeg", Name: "stuck", URL: "https://cdn.test/properties/stuck.jpeg"},
	}); err != nil {
		t.Fatalf("push images: %v", err)
	}
	p, err := e.properties.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get property: %v", err)
	}
	imageID := p.Images[0].ID

	e.objects.statuses["properties/stuck.jpeg"] = http.StatusInternalServerError

	req := testutil.JSONRequest(t, "POST", "/property/delete-image", map[string]any{
		"propertyId": id.Hex(),
		"imageId":    imageID.Hex(),
	})
	req = testutil.WithActor(req, actor)
	rec = httptest.NewRecorder()
	e.handler.DeleteImage(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadGateway)
	}

	p, err = e.properties.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get property: %v", err)
	}
	if len(p.Images) != 1 {
		t.Errorf("image detached despite failed remote delete")
	}
}
