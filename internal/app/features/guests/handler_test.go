package guests_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	feature "github.com/letkeeper/letkeeper/internal/app/features/guests"
	gueststore "github.com/letkeeper/letkeeper/internal/app/store/guests"
	propertystore "github.com/letkeeper/letkeeper/internal/app/store/properties"
	"github.com/letkeeper/letkeeper/internal/domain/models"
	"github.com/letkeeper/letkeeper/internal/testutil"
)

type env struct {
	handler  *feature.Handler
	guests   *gueststore.Store
	fixtures *testutil.Fixtures
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.SetupTestDB(t)
	guests := gueststore.New(db)
	props := propertystore.New(db)
	return &env{
		handler:  feature.NewHandler(guests, props, nil, zap.NewNop()),
		guests:   guests,
		fixtures: testutil.NewFixtures(t, db),
	}
}

func TestCreate_InsertsBooking(t *testing.T) {
	e := newEnv(t)
	actor := testutil.StaffActor()

	ctx, cancel := testutil.TestContext()
	defer cancel()
	p := e.fixtures.CreateProperty(ctx, "Seaview Cottage", -0.12, 51.5)

	checkIn := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	req := testutil.JSONRequest(t, "POST", "/guest/create", map[string]any{
		"name":       "jane doe",
		"email":      "Jane@Example.com",
		"phone":      "0123456789",
		"checkIn":    checkIn,
		"checkOut":   checkIn.Add(72 * time.Hour),
		"propertyId": p.ID.Hex(),
	})
	req = testutil.WithActor(req, actor)
	rec := httptest.NewRecorder()
	e.handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		Guest   models.Guest `json:"guest"`
		Message string       `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)

	if resp.Message != "Guest was added" {
		t.Errorf("message: got %q", resp.Message)
	}
	if resp.Guest.Name != "Jane Doe" {
		t.Errorf("name not normalized: got %q", resp.Guest.Name)
	}
	if resp.Guest.Email != "jane@example.com" {
		t.Errorf("email not normalized: got %q", resp.Guest.Email)
	}
	if resp.Guest.CreatedBy.Hex() != actor.ID {
		t.Errorf("createdBy: got %s, want %s", resp.Guest.CreatedBy.Hex(), actor.ID)
	}
}

func TestCreate_RejectsInvertedWindow(t *testing.T) {
	e := newEnv(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	p := e.fixtures.CreateProperty(ctx, "Seaview Cottage", -0.12, 51.5)

	checkIn := time.Now().UTC().Add(48 * time.Hour)
	req := testutil.JSONRequest(t, "POST", "/guest/create", map[string]any{
		"name":       "Jane Doe",
		"email":      "jane@example.com",
		"checkIn":    checkIn,
		"checkOut":   checkIn.Add(-24 * time.Hour),
		"propertyId": p.ID.Hex(),
	})
	req = testutil.WithActor(req, testutil.StaffActor())
	rec := httptest.NewRecorder()
	e.handler.Create(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestCreate_UnknownProperty(t *testing.T) {
	e := newEnv(t)

	checkIn := time.Now().UTC().Add(48 * time.Hour)
	req := testutil.JSONRequest(t, "POST", "/guest/create", map[string]any{
		"name":       "Jane Doe",
		"email":      "jane@example.com",
		"checkIn":    checkIn,
		"checkOut":   checkIn.Add(72 * time.Hour),
		"propertyId": "64dbfa000000000000000000",
	})
	req = testutil.WithActor(req, testutil.StaffActor())
	rec := httptest.NewRecorder()
	e.handler.Create(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDelete_RemovesBooking(t *testing.T) {
	e := newEnv(t)
	actor := testutil.StaffActor()

	ctx, cancel := testutil.TestContext()
	defer cancel()
	p := e.fixtures.CreateProperty(ctx, "Seaview Cottage", -0.12, 51.5)
	actorID, _ := actor.ObjectID()
	g := e.fixtures.CreateGuest(ctx, p.ID, actorID, "Jane Doe", 48*time.Hour)

	req := testutil.JSONRequest(t, "POST", "/guest/delete", map[string]any{"guestId": g.ID.Hex()})
	req = testutil.WithActor(req, actor)
	rec := httptest.NewRecorder()
	e.handler.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Message != "Guest was deleted" {
		t.Errorf("message: got %q", resp.Message)
	}

	if _, err := e.guests.GetByID(ctx, g.ID); err == nil {
		t.Error("booking still present after delete")
	}
}

func TestFetchFuture_ReturnsNextBookingDate(t *testing.T) {
	e := newEnv(t)
	actor := testutil.StaffActor()

	ctx, cancel := testutil.TestContext()
	defer cancel()
	p := e.fixtures.CreateProperty(ctx, "Seaview Cottage", -0.12, 51.5)
	actorID, _ := actor.ObjectID()
	e.fixtures.CreateGuest(ctx, p.ID, actorID, "Later Guest", 96*time.Hour)
	soon := e.fixtures.CreateGuest(ctx, p.ID, actorID, "Sooner Guest", 24*time.Hour)
	e.fixtures.CreateGuest(ctx, p.ID, actorID, "Past Guest", -24*time.Hour)

	req := testutil.JSONRequest(t, "POST", "/guest/fetch-future-guests", map[string]any{"propertyId": p.ID.Hex()})
	req = testutil.WithActor(req, actor)
	rec := httptest.NewRecorder()
	e.handler.FetchFuture(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Guests          []models.GuestListing `json:"guests"`
		NextBookingDate *time.Time            `json:"nextBookingDate"`
	}
	testutil.DecodeJSON(t, rec, &resp)

	if len(resp.Guests) != 2 {
		t.Fatalf("future guests: got %d, want 2", len(resp.Guests))
	}
	if resp.Guests[0].Name != "Sooner Guest" {
		t.Errorf("ordering: first guest %q", resp.Guests[0].Name)
	}
	if resp.NextBookingDate == nil || !resp.NextBookingDate.Equal(soon.CheckIn) {
		t.Errorf("nextBookingDate: got %v, want %v", resp.NextBookingDate, soon.CheckIn)
	}
	if resp.Guests[0].PropertyName != "Seaview Cottage" {
		t.Errorf("propertyName: got %q", resp.Guests[0].PropertyName)
	}
}

func TestFetch_WindowedList(t *testing.T) {
	e := newEnv(t)
	actor := testutil.StaffActor()

	ctx, cancel := testutil.TestContext()
	defer cancel()
	p := e.fixtures.CreateProperty(ctx, "Seaview Cottage", -0.12, 51.5)
	actorID, _ := actor.ObjectID()
	in := e.fixtures.CreateGuest(ctx, p.ID, actorID, "In Window", 24*time.Hour)
	e.fixtures.CreateGuest(ctx, p.ID, actorID, "Out Of Window", 240*time.Hour)

	from := time.Now().UTC()
	to := from.Add(48 * time.Hour)
	req := testutil.JSONRequest(t, "POST", "/guest/fetch", map[string]any{
		"from": from,
		"to":   to,
	})
	req = testutil.WithActor(req, actor)
	rec := httptest.NewRecorder()
	e.handler.Fetch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Guests []models.GuestListing `json:"guests"`
		Number int64                 `json:"number"`
	}
	testutil.DecodeJSON(t, rec, &resp)

	if len(resp.Guests) != 1 || resp.Guests[0].Name != in.Name {
		t.Errorf("windowed guests: got %v", resp.Guests)
	}
	// The total counts every booking, not just the window.
	if resp.Number != 2 {
		t.Errorf("total: got %d, want 2", resp.Number)
	}
}
