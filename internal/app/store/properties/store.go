// internal/app/store/properties/store.go
package properties

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"github.com/letkeeper/letkeeper/internal/app/system/normalize"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// Store manages property listings.
type Store struct {
	c *mongo.Collection
}

// New creates a new properties Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("properties")}
}

// EnsureIndexes creates the unique alias index, the 2dsphere index the
// proximity search depends on, and the listing sort index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "alias", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_property_alias"),
		},
		{
			Keys:    bson.D{{Key: "address.position", Value: "2dsphere"}},
			Options: options.Index().SetName("idx_property_position"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_property_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a listing. The alias is derived from the name and is
// permanent; the room counts are derived from the submitted arrays. A
// duplicate alias is a Conflict.
func (s *Store) Create(ctx context.Context, p models.Property) (models.Property, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.Name = normalize.Name(p.Name)
	p.Alias = normalize.Slug(p.Name)
	p.UpdatedBy = []models.UpdatedBy{}
	p.CreatedAt = now
	p.UpdatedAt = now
	applyDerived(&p)
	ensureSubdocumentIDs(&p)

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Property{}, apperr.Wrap(apperr.Conflict, "A property with that name already exists", err)
		}
		return models.Property{}, err
	}
	return p, nil
}

// Update replaces the listing's content fields and prepends the editor
// to the edit history. Identity fields (alias, createdBy, createdAt) and
// media are preserved; counts are re-derived from the incoming arrays.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, incoming models.Property, editor models.UpdatedBy) (models.Property, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Property{}, err
	}

	editor.CreatedAt = time.Now().UTC()

	incoming.ID = existing.ID
	incoming.Alias = existing.Alias
	incoming.Images = existing.Images
	incoming.Videos = existing.Videos
	incoming.Floorplan = existing.Floorplan
	incoming.CreatedBy = existing.CreatedBy
	incoming.CreatedAt = existing.CreatedAt
	incoming.UpdatedAt = editor.CreatedAt
	incoming.UpdatedBy = append([]models.UpdatedBy{editor}, existing.UpdatedBy...)
	applyDerived(&incoming)
	ensureSubdocumentIDs(&incoming)

	if _, err := s.c.ReplaceOne(ctx, bson.M{"_id": id}, incoming); err != nil {
		return models.Property{}, err
	}
	return incoming, nil
}

// Delete removes the listing record. Remote media cleanup is the media
// manager's job and happens before this is called.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "Property not found")
	}
	return nil
}

// GetByID fetches one listing.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var p models.Property
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "Property not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns a page of listings, newest first, plus the total count
// of all listings regardless of the page.
func (s *Store) List(ctx context.Context, skip, limit int64) ([]models.Property, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	listings := []models.Property{}
	if err := cur.All(ctx, &listings); err != nil {
		return nil, 0, err
	}

	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// FindNearby runs the proximity search around [lng, lat]. Results come
// back in distance order, nearest first, per the $near contract.
func (s *Store) FindNearby(ctx context.Context, lng, lat float64, f NearbyFilters) ([]models.Property, error) {
	cur, err := s.c.Find(ctx, NearbyQuery(lng, lat, f))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	results := []models.Property{}
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GetImage projects out a single image subdocument by its id.
func (s *Store) GetImage(ctx context.Context, propertyID, imageID primitive.ObjectID) (*models.Image, error) {
	filter := bson.M{"_id": propertyID, "images._id": imageID}
	projection := options.FindOne().SetProjection(bson.M{"images.$": 1})

	var doc struct {
		Images []models.Image `bson:"images"`
	}
	err := s.c.FindOne(ctx, filter, projection).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "Image not found")
	}
	if err != nil {
		return nil, err
	}
	if len(doc.Images) == 0 {
		return nil, apperr.New(apperr.NotFound, "Image not found")
	}
	return &doc.Images[0], nil
}

// PullImage removes one image subdocument. Callers must have confirmed
// the remote object is gone first.
func (s *Store) PullImage(ctx context.Context, propertyID, imageID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"images": bson.M{"_id": imageID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": propertyID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "Property not found")
	}
	return nil
}

// PushImages appends image descriptors, assigning ids to new entries.
func (s *Store) PushImages(ctx context.Context, propertyID primitive.ObjectID, images []models.Image) error {
	for i := range images {
		if images[i].ID.IsZero() {
			images[i].ID = primitive.NewObjectID()
		}
	}
	update := bson.M{
		"$push": bson.M{"images": bson.M{"$each": images}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": propertyID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "Property not found")
	}
	return nil
}

// SetImages replaces the whole image array. Used for reordering; the
// caller sends the full array in display order.
func (s *Store) SetImages(ctx context.Context, propertyID primitive.ObjectID, images []models.Image) error {
	return s.setField(ctx, propertyID, "images", images)
}

// PushVideos appends video descriptors, assigning ids to new entries.
func (s *Store) PushVideos(ctx context.Context, propertyID primitive.ObjectID, videos []models.Video) error {
	for i := range videos {
		if videos[i].ID.IsZero() {
			videos[i].ID = primitive.NewObjectID()
		}
	}
	update := bson.M{
		"$push": bson.M{"videos": bson.M{"$each": videos}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": propertyID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "Property not found")
	}
	return nil
}

// SetVideos replaces the whole video array.
func (s *Store) SetVideos(ctx context.Context, propertyID primitive.ObjectID, videos []models.Video) error {
	return s.setField(ctx, propertyID, "videos", videos)
}

// SetFloorplan replaces the floorplan descriptor.
func (s *Store) SetFloorplan(ctx context.Context, propertyID primitive.ObjectID, fp models.Floorplan) error {
	return s.setField(ctx, propertyID, "floorplan", fp)
}

// ClearFloorplan resets the floorplan to its empty form.
func (s *Store) ClearFloorplan(ctx context.Context, propertyID primitive.ObjectID) error {
	return s.setField(ctx, propertyID, "floorplan", models.Floorplan{})
}

func (s *Store) setField(ctx context.Context, propertyID primitive.ObjectID, field string, value any) error {
	update := bson.M{"$set": bson.M{
		field:        value,
		"updated_at": time.Now().UTC(),
	}}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": propertyID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "Property not found")
	}
	return nil
}

// ensureSubdocumentIDs assigns ids to room and marketing entries that
// arrive without one, so later per-entry operations can address them.
func ensureSubdocumentIDs(p *models.Property) {
	for i := range p.Bedrooms {
		if p.Bedrooms[i].ID.IsZero() {
			p.Bedrooms[i].ID = primitive.NewObjectID()
		}
	}
	for i := range p.Bathrooms {
		if p.Bathrooms[i].ID.IsZero() {
			p.Bathrooms[i].ID = primitive.NewObjectID()
		}
	}
	for i := range p.LivingRooms {
		if p.LivingRooms[i].ID.IsZero() {
			p.LivingRooms[i].ID = primitive.NewObjectID()
		}
	}
	for i := range p.SellingPoints {
		if p.SellingPoints[i].ID.IsZero() {
			p.SellingPoints[i].ID = primitive.NewObjectID()
		}
	}
}
