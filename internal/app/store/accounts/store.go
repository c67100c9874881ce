// internal/app/store/accounts/store.go
package accounts

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"github.com/letkeeper/letkeeper/internal/app/system/normalize"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// bcryptCost matches what the hashes in production were minted with.
const bcryptCost = 12

// defaultAvatarURL is assigned to new accounts until they upload one.
const defaultAvatarURL = "https://i.ibb.co/mGGbcFN/sbcf-default-avatar.webp"

// Store manages staff accounts.
type Store struct {
	c *mongo.Collection
}

// New creates a new accounts Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("accounts")}
}

// EnsureIndexes creates the unique email and alias indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_account_email"),
		},
		{
			Keys:    bson.D{{Key: "alias", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_account_alias"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// NewAccountInput is the material for account creation.
type NewAccountInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// Create hashes the password and inserts the account, stamping the
// creator snapshot. Duplicate email or alias is a Conflict.
func (s *Store) Create(ctx context.Context, in NewAccountInput, creator models.CreatedBySnapshot) (models.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return models.Account{}, err
	}

	first := normalize.Name(in.FirstName)
	last := normalize.Name(in.LastName)
	now := time.Now().UTC()

	acct := models.Account{
		ID:        primitive.NewObjectID(),
		FirstName: first,
		LastName:  last,
		FullName:  first + " " + last,
		Email:     normalize.Email(in.Email),
		Password:  string(hash),
		ImageURL:  defaultAvatarURL,
		Alias:     normalize.Slug(first, last),
		Role:      normalize.Role(in.Role),
		CreatedBy: creator,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.c.InsertOne(ctx, acct); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Account{}, apperr.Wrap(apperr.Conflict,
				"The email address you entered is already associated with an existing account.", err)
		}
		return models.Account{}, err
	}
	return acct, nil
}

// GetByEmail fetches a live (not soft-deleted) account by email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acct models.Account
	filter := bson.M{"email": normalize.Email(email), "is_deleted": false}
	err := s.c.FindOne(ctx, filter).Decode(&acct)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound,
			"User account not found. Please check your credentials and try again.")
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// GetByID fetches an account regardless of soft-delete state.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	var acct models.Account
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&acct)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "No user found")
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// ListActive returns all live accounts, newest first. Password hashes
// never leave this store: the field is cleared before return.
func (s *Store) ListActive(ctx context.Context) ([]models.Account, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"is_deleted": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	accounts := []models.Account{}
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i].Password = ""
	}
	return accounts, nil
}

// VerifyPassword checks a candidate password against the stored hash.
// A mismatch is Forbidden, mirroring the sign-in contract.
func (s *Store) VerifyPassword(acct *models.Account, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(password)); err != nil {
		return apperr.Wrap(apperr.Forbidden, "Invalid credentials", err)
	}
	return nil
}

// UpdateBasicInfo changes the account's name, email and role.
func (s *Store) UpdateBasicInfo(ctx context.Context, id primitive.ObjectID, firstName, lastName, email, role string) (*models.Account, error) {
	first := normalize.Name(firstName)
	last := normalize.Name(lastName)

	update := bson.M{"$set": bson.M{
		"first_name": first,
		"last_name":  last,
		"full_name":  first + " " + last,
		"email":      normalize.Email(email),
		"role":       normalize.Role(role),
		"updated_at": time.Now().UTC(),
	}}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, apperr.Wrap(apperr.Conflict,
				"The email address you entered is already associated with an existing account.", err)
		}
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, apperr.New(apperr.NotFound, "No user found")
	}
	return s.GetByID(ctx, id)
}

// ChangePassword re-hashes and stores a new password.
func (s *Store) ChangePassword(ctx context.Context, id primitive.ObjectID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"password":   string(hash),
		"updated_at": time.Now().UTC(),
	}}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "No user found")
	}
	return nil
}

// SoftDelete marks the account deleted without removing the record.
// This is the administrative removal path.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"is_deleted": true,
		"updated_at": time.Now().UTC(),
	}}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "No user found")
	}
	return nil
}

// HardDelete physically removes the record. Reserved for accounts
// deleting themselves.
func (s *Store) HardDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "Account not found.")
	}
	return nil
}

// Snapshot captures the creator identity stamped onto new accounts.
func Snapshot(acct *models.Account) models.CreatedBySnapshot {
	return models.CreatedBySnapshot{
		ID:       acct.ID,
		FullName: acct.FullName,
		Alias:    acct.Alias,
	}
}
