// internal/app/store/customers/customerstore.go

// Package customerstore persists the visit entries recorded by showroom
// terminals. The collection is named "customers" for continuity with
// the data the dashboards were built on.
package customerstore

import (
	"context"
	"time"

	"github.com/showroomhq/showroomhub/internal/app/system/normalize"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("customers")}
}

// EnsureIndexes creates the indexes backing the range queries and the
// per-showroom aggregations.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_customers_created"),
		},
		{
			Keys:    bson.D{{Key: "showroom_branch", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_customers_branch_created"),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetName("idx_customers_phone"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a visit. Phone is normalized so the analytics
// deduplication sees one identity per visitor.
func (s *Store) Create(ctx context.Context, v models.Visit) (models.Visit, error) {
	v.ID = primitive.NewObjectID()
	v.Name = normalize.Name(v.Name)
	v.Phone = normalize.Phone(v.Phone)

	now := time.Now().UTC()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, v); err != nil {
		return models.Visit{}, err
	}
	return v, nil
}

// GetByID loads one visit.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Visit, error) {
	var v models.Visit
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ListFilter narrows a List call. Zero values mean "no constraint".
type ListFilter struct {
	Showroom string    // exact branch string
	Start    time.Time // inclusive
	End      time.Time // exclusive
	Limit    int64
	Skip     int64
}

// List returns visits newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Visit, error) {
	filter := bson.M{}
	if f.Showroom != "" {
		filter["showroom_branch"] = f.Showroom
	}
	created := bson.M{}
	if !f.Start.IsZero() {
		created["$gte"] = f.Start
	}
	if !f.End.IsZero() {
		created["$lt"] = f.End
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	if f.Skip > 0 {
		opts.SetSkip(f.Skip)
	}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var visits []models.Visit
	if err := cur.All(ctx, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

// UpdateFields is the set of caller-editable visit fields. Nil pointers
// leave the stored value untouched.
type UpdateFields struct {
	Name     *string
	Phone    *string
	Category *string
	Notes    *string
	Status   *string
}

// Update patches the editable fields of a visit.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, f UpdateFields) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if f.Name != nil {
		set["name"] = normalize.Name(*f.Name)
	}
	if f.Phone != nil {
		set["phone"] = normalize.Phone(*f.Phone)
	}
	if f.Category != nil {
		set["category"] = *f.Category
	}
	if f.Notes != nil {
		set["notes"] = *f.Notes
	}
	if f.Status != nil {
		set["status"] = normalize.Status(*f.Status)
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a visit.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountCreatedBetween returns the RAW number of visit documents in the
// half-open window [start, end). Repeat visitors are counted once per
// visit; the office-admin reconciliation compares raw traffic, not
// unique visitors.
func (s *Store) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": start, "$lt": end},
	})
}
