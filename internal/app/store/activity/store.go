// internal/app/store/activity/store.go
package activity

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// Activity actions. Anything outside this set still records, with the
// generic description.
const (
	ActionLogin      = "login"
	ActionLogout     = "logout"
	ActionView       = "view"
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionAddAccount = "addAccount"
)

// DefaultLimit caps activity queries when the caller asks for no limit.
const DefaultLimit = 10

// Describe renders the human-readable description for an action/target
// pair. Unknown actions fall through to the generic form.
func Describe(action, target string) string {
	switch action {
	case ActionLogin:
		return "User logged in"
	case ActionLogout:
		return "User logged out"
	case ActionView:
		return "Viewed " + target
	case ActionCreate:
		return "Created " + target
	case ActionUpdate:
		return "Updated " + target
	case ActionDelete:
		return "Deleted " + target
	case ActionAddAccount:
		return "Added a new account: " + target
	default:
		return "Performed " + action + " on " + target
	}
}

// Store manages activity records.
type Store struct {
	c *mongo.Collection
}

// New creates a new activity Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("activities")}
}

// EnsureIndexes creates the index the actor-scoped queries depend on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_activity_actor"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Record inserts one activity entry. The description is derived from
// the action/target pair; callers never supply it.
func (s *Store) Record(ctx context.Context, userID primitive.ObjectID, action, target string, metadata map[string]any) error {
	entry := models.Activity{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Action:      action,
		Target:      target,
		Description: Describe(action, target),
		Timestamp:   time.Now().UTC(),
		Metadata:    metadata,
	}
	_, err := s.c.InsertOne(ctx, entry)
	return err
}

// GetByActor retrieves the actor's most recent entries, newest first.
// A non-positive limit falls back to DefaultLimit.
func (s *Store) GetByActor(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Activity, error) {
	return s.find(ctx, bson.M{"user_id": userID}, limit)
}

// GetByActorBetween retrieves the actor's entries with
// from <= timestamp < to, newest first.
func (s *Store) GetByActorBetween(ctx context.Context, userID primitive.ObjectID, from, to time.Time, limit int64) ([]models.Activity, error) {
	filter := bson.M{
		"user_id": userID,
		"timestamp": bson.M{
			"$gte": from,
			"$lt":  to,
		},
	}
	return s.find(ctx, filter, limit)
}

func (s *Store) find(ctx context.Context, filter bson.M, limit int64) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := make([]models.Activity, 0, limit)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
