// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateAccount inserts a test account and returns it. The password
// hash is a placeholder; use the accounts store when the test exercises
// password verification.
func (f *Fixtures) CreateAccount(ctx context.Context, firstName, lastName, email, role string) models.Account {
	f.t.Helper()

	now := time.Now().UTC()
	acct := models.Account{
		ID:        primitive.NewObjectID(),
		FirstName: firstName,
		LastName:  lastName,
		FullName:  firstName + " " + lastName,
		Email:     email,
		Password:  "$2a$12$testtesttesttesttesttesttesttesttesttesttesttesttestte",
		Alias:     firstName + "-" + lastName,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("accounts").InsertOne(ctx, acct); err != nil {
		f.t.Fatalf("create test account: %v", err)
	}
	return acct
}

// CreateProperty inserts a minimal test listing at the given position.
func (f *Fixtures) CreateProperty(ctx context.Context, name string, lng, lat float64) models.Property {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Property{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Alias: name,
		Type:  "apartment",
		Address: models.Address{
			City:     "Test City",
			Position: models.NewGeoPoint(lng, lat),
		},
		IsActive:  true,
		CreatedBy: primitive.NewObjectID(),
		UpdatedBy: []models.UpdatedBy{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("properties").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("create test property: %v", err)
	}
	return p
}

// CreateGuest inserts a test booking for the given property with the
// given check-in offset from now.
func (f *Fixtures) CreateGuest(ctx context.Context, propertyID, createdBy primitive.ObjectID, name string, checkInOffset time.Duration) models.Guest {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.Guest{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Email:      name + "@example.com",
		Phone:      "0123456789",
		CheckIn:    now.Add(checkInOffset),
		CheckOut:   now.Add(checkInOffset + 72*time.Hour),
		CreatedBy:  createdBy,
		PropertyID: propertyID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("guests").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("create test guest: %v", err)
	}
	return g
}
