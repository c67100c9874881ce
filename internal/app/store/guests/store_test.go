package guests_test

import (
	"testing"
	"time"

	"github.com/letkeeper/letkeeper/internal/app/store/guests"
	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"github.com/letkeeper/letkeeper/internal/domain/models"
	"github.com/letkeeper/letkeeper/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := guests.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := models.Guest{
		Name:       "John Smith",
		Email:      "JOHN@Example.com",
		Phone:      "0123456789",
		CheckIn:    time.Now().Add(48 * time.Hour),
		CheckOut:   time.Now().Add(96 * time.Hour),
		CreatedBy:  primitive.NewObjectID(),
		PropertyID: primitive.NewObjectID(),
	}

	created, err := store.Create(ctx, g)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("created guest has zero id")
	}
	if created.Email != "john@example.com" {
		t.Errorf("Email = %q, want normalized", created.Email)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, created.ID); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("second Delete kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestStore_FutureAndPastByProperty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := guests.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	acct := fx.CreateAccount(ctx, "Jane", "Doe", "jane@example.com", models.RoleUser)
	prop := fx.CreateProperty(ctx, "Seaview Cottage", -0.1276, 51.5072)

	fx.CreateGuest(ctx, prop.ID, acct.ID, "soon", 24*time.Hour)
	fx.CreateGuest(ctx, prop.ID, acct.ID, "later", 240*time.Hour)
	fx.CreateGuest(ctx, prop.ID, acct.ID, "past", -24*time.Hour)
	// Another property's booking must not appear.
	fx.CreateGuest(ctx, primitive.NewObjectID(), acct.ID, "elsewhere", 24*time.Hour)

	future, next, err := store.FutureByProperty(ctx, prop.ID)
	if err != nil {
		t.Fatalf("FutureByProperty failed: %v", err)
	}
	if len(future) != 2 {
		t.Fatalf("got %d future guests, want 2", len(future))
	}
	if future[0].Name != "soon" {
		t.Errorf("first future guest = %q, want earliest check-in first", future[0].Name)
	}
	if next == nil || !next.Equal(future[0].CheckIn) {
		t.Errorf("next = %v, want the earliest future check-in", next)
	}
	if future[0].PropertyName != "Seaview Cottage" {
		t.Errorf("PropertyName = %q, want joined name", future[0].PropertyName)
	}
	if future[0].CreatedByName != "Jane Doe" {
		t.Errorf("CreatedByName = %q, want joined creator name", future[0].CreatedByName)
	}

	past, err := store.PastByProperty(ctx, prop.ID)
	if err != nil {
		t.Fatalf("PastByProperty failed: %v", err)
	}
	if len(past) != 1 || past[0].Name != "past" {
		t.Fatalf("past = %d entries, want just the past booking", len(past))
	}
}

func TestStore_List_DefaultWindowIsFuture(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := guests.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	acct := fx.CreateAccount(ctx, "Jane", "Doe", "jane@example.com", models.RoleUser)
	prop := fx.CreateProperty(ctx, "Seaview Cottage", -0.1276, 51.5072)

	fx.CreateGuest(ctx, prop.ID, acct.ID, "future", 24*time.Hour)
	fx.CreateGuest(ctx, prop.ID, acct.ID, "past", -24*time.Hour)

	page, total, err := store.List(ctx, 0, 10, nil, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page) != 1 || page[0].Name != "future" {
		t.Fatalf("default window returned %d guests, want only the future one", len(page))
	}
	if total != 2 {
		t.Errorf("total = %d, want 2 (count is window-independent)", total)
	}
}

func TestStore_List_ExplicitWindowIsHalfOpen(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := guests.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	acct := fx.CreateAccount(ctx, "Jane", "Doe", "jane@example.com", models.RoleUser)
	prop := fx.CreateProperty(ctx, "Seaview Cottage", -0.1276, 51.5072)

	inside := fx.CreateGuest(ctx, prop.ID, acct.ID, "inside", 24*time.Hour)
	fx.CreateGuest(ctx, prop.ID, acct.ID, "after", 200*time.Hour)

	from := inside.CheckIn.Add(-time.Hour)
	to := inside.CheckIn.Add(time.Hour)

	page, _, err := store.List(ctx, 0, 10, &from, &to)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page) != 1 || page[0].Name != "inside" {
		t.Fatalf("window returned %d guests, want only the one inside [from, to)", len(page))
	}

	// A window ending exactly at the check-in excludes it.
	to = inside.CheckIn
	page, _, err = store.List(ctx, 0, 10, &from, &to)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page) != 0 {
		t.Fatalf("half-open window included its upper bound: %d guests", len(page))
	}
}
