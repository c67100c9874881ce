// internal/app/store/guests/store.go
package guests

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"github.com/letkeeper/letkeeper/internal/app/system/normalize"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// Store manages guest bookings.
type Store struct {
	c *mongo.Collection
}

// New creates a new guests Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("guests")}
}

// EnsureIndexes creates the property/check-in index the booking queries
// sort and filter on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "property_id", Value: 1},
				{Key: "check_in", Value: 1},
			},
			Options: options.Index().SetName("idx_guest_property_checkin"),
		},
		{
			Keys:    bson.D{{Key: "check_in", Value: 1}},
			Options: options.Index().SetName("idx_guest_checkin"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a booking.
func (s *Store) Create(ctx context.Context, g models.Guest) (models.Guest, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.Name = normalize.Name(g.Name)
	g.Email = normalize.Email(g.Email)
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Guest{}, err
	}
	return g, nil
}

// GetByID fetches one booking.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Guest, error) {
	var g models.Guest
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "No guest found")
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Delete removes a booking.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "No guest found")
	}
	return nil
}

// FutureByProperty returns a property's bookings with a check-in after
// now, plus the next check-in date if there is one.
func (s *Store) FutureByProperty(ctx context.Context, propertyID primitive.ObjectID) ([]models.GuestListing, *time.Time, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"property_id": propertyID,
		"check_in":    bson.M{"$gt": now},
	}

	guests, err := s.joined(ctx, filter, bson.D{{Key: "check_in", Value: 1}}, 0, 0)
	if err != nil {
		return nil, nil, err
	}

	var next *time.Time
	if len(guests) > 0 {
		next = &guests[0].CheckIn
	}
	return guests, next, nil
}

// PastByProperty returns a property's bookings with a check-in at or
// before now.
func (s *Store) PastByProperty(ctx context.Context, propertyID primitive.ObjectID) ([]models.GuestListing, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"property_id": propertyID,
		"check_in":    bson.M{"$lte": now},
	}
	return s.joined(ctx, filter, bson.D{{Key: "check_in", Value: -1}}, 0, 0)
}

// List returns a page of bookings ordered by check-in ascending, plus
// the total booking count independent of the page. With both from and
// to set, the window is half-open [from, to); otherwise the default
// window is future check-ins only.
func (s *Store) List(ctx context.Context, skip, limit int64, from, to *time.Time) ([]models.GuestListing, int64, error) {
	filter := bson.M{"check_in": bson.M{"$gt": time.Now().UTC()}}
	if from != nil && to != nil {
		filter = bson.M{"check_in": bson.M{"$gte": *from, "$lt": *to}}
	}

	guests, err := s.joined(ctx, filter, bson.D{{Key: "check_in", Value: 1}}, skip, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return guests, total, nil
}

// joined runs the booking query with display fields looked up from the
// properties and accounts collections.
func (s *Store) joined(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]models.GuestListing, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: sort}},
	}
	if skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: skip}})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "properties",
			"localField":   "property_id",
			"foreignField": "_id",
			"as":           "property_doc",
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "accounts",
			"localField":   "created_by",
			"foreignField": "_id",
			"as":           "creator_doc",
		}}},
		bson.D{{Key: "$set", Value: bson.M{
			"property_name":   bson.M{"$first": "$property_doc.name"},
			"property_city":   bson.M{"$first": "$property_doc.address.city"},
			"created_by_name": bson.M{"$first": "$creator_doc.full_name"},
		}}},
		bson.D{{Key: "$unset", Value: bson.A{"property_doc", "creator_doc"}}},
	)

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	guests := []models.GuestListing{}
	if err := cur.All(ctx, &guests); err != nil {
		return nil, err
	}
	return guests, nil
}
