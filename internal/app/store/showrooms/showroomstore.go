// internal/app/store/showrooms/showroomstore.go

// Package showroomstore manages the showroom registry. The registry is
// advisory: analytics only filter against it when it has entries, so a
// deployment that never seeds it sees every branch string that appears
// in the event streams.
package showroomstore

import (
	"context"
	"errors"
	"time"

	"github.com/showroomhq/showroomhub/internal/app/system/normalize"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateName is returned when a showroom name already exists.
var ErrDuplicateName = errors.New("a showroom with this name already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("showrooms")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_showrooms_name_ci"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a registry entry. New entries are active.
func (s *Store) Create(ctx context.Context, name string) (models.Showroom, error) {
	now := time.Now().UTC()
	sr := models.Showroom{
		ID:        primitive.NewObjectID(),
		Name:      normalize.Name(name),
		NameCI:    text.Fold(normalize.Name(name)),
		Active:    true,
		Status:    "Active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, sr); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Showroom{}, ErrDuplicateName
		}
		return models.Showroom{}, err
	}
	return sr, nil
}

// List returns the whole registry sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.Showroom, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Showroom
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetActive flips a registry entry's active state, keeping the legacy
// status string in step.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	status := "Active"
	if !active {
		status = "Inactive"
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"active":     active,
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a registry entry.
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

// ActiveFilter returns the set of active showroom names and whether the
// analytics should filter against it. The registry has accumulated three
// activity conventions over time, so an entry counts as active when its
// active flag is true, its status field is absent, or its status is the
// literal "Active". An empty registry disables filtering entirely.
func (s *Store) ActiveFilter(ctx context.Context) (map[string]bool, bool, error) {
	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, false, err
	}
	if total == 0 {
		return nil, false, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"$or": []bson.M{
		{"active": true},
		{"status": bson.M{"$exists": false}},
		{"status": "Active"},
	}})
	if err != nil {
		return nil, false, err
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var sr models.Showroom
		if err := cur.Decode(&sr); err != nil {
			return nil, false, err
		}
		names[sr.Name] = true
	}
	if err := cur.Err(); err != nil {
		return nil, false, err
	}
	return names, true, nil
}
