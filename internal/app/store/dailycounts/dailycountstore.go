// internal/app/store/dailycounts/dailycountstore.go

// Package dailycountstore persists the manual visitor tallies office
// admins enter for reconciliation against the automatic showroom counts.
// One document per (office admin, calendar day, showroom).
package dailycountstore

import (
	"context"
	"errors"
	"time"

	"github.com/showroomhq/showroomhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrConflict is returned when two concurrent upserts race on the same
// (admin, date, showroom) key and one loses on the unique index.
var ErrConflict = errors.New("daily count was updated concurrently")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("daily_counts")}
}

// EnsureIndexes creates the unique reconciliation key.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "office_admin_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "showroom", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_daily_counts_key"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Upsert stores the admin's count for one day and showroom, replacing
// any previous value. A duplicate-key error from a concurrent upsert on
// the same key maps to ErrConflict.
func (s *Store) Upsert(ctx context.Context, adminID primitive.ObjectID, date, showroom string, count float64) (models.DailyCount, error) {
	filter := bson.M{
		"office_admin_id": adminID,
		"date":            date,
		"showroom":        showroom,
	}
	update := bson.M{
		"$set": bson.M{
			"count":      count,
			"updated_at": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"office_admin_id": adminID,
			"date":            date,
			"showroom":        showroom,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var dc models.DailyCount
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&dc); err != nil {
		if wafflemongo.IsDup(err) {
			return models.DailyCount{}, ErrConflict
		}
		return models.DailyCount{}, err
	}
	return dc, nil
}

// ForDay returns the admin's counts for one calendar day, one row per
// showroom.
func (s *Store) ForDay(ctx context.Context, adminID primitive.ObjectID, date string) ([]models.DailyCount, error) {
	opts := options.Find().SetSort(bson.D{{Key: "showroom", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"office_admin_id": adminID, "date": date}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.DailyCount
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SumForDay totals the admin's counts for one calendar day across
// showrooms.
func (s *Store) SumForDay(ctx context.Context, adminID primitive.ObjectID, date string) (float64, error) {
	sums, err := s.SumsByDate(ctx, adminID, date, date)
	if err != nil {
		return 0, err
	}
	return sums[date], nil
}

// SumsByDate totals the admin's counts per calendar day for dates in
// [from, to] inclusive. Date strings compare lexicographically, which is
// calendar order for the "YYYY-MM-DD" form. Days with no entries are
// absent from the map.
func (s *Store) SumsByDate(ctx context.Context, adminID primitive.ObjectID, from, to string) (map[string]float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{
			"office_admin_id": adminID,
			"date":            bson.M{"$gte": from, "$lte": to},
		}},
		{"$group": bson.M{
			"_id":   "$date",
			"total": bson.M{"$sum": "$count"},
		}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	sums := make(map[string]float64)
	for cur.Next(ctx) {
		var row struct {
			Date  string  `bson:"_id"`
			Total float64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		sums[row.Date] = row.Total
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return sums, nil
}
