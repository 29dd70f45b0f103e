// internal/app/store/sales/salestore.go
package salestore

import (
	"context"
	"errors"
	"time"

	"github.com/showroomhq/showroomhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrBadAmount is returned for a negative or non-finite sale amount.
var ErrBadAmount = errors.New("amount must be a finite number >= 0")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sales")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_sales_created"),
		},
		{
			Keys:    bson.D{{Key: "showroom", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_sales_showroom_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create records one sale amount for a showroom.
func (s *Store) Create(ctx context.Context, showroom string, amount float64, at time.Time) (models.Sale, error) {
	if amount < 0 || amount != amount || amount > 1e15 {
		return models.Sale{}, ErrBadAmount
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	sale := models.Sale{
		ID:        primitive.NewObjectID(),
		Showroom:  showroom,
		Amount:    amount,
		CreatedAt: at,
	}
	if _, err := s.c.InsertOne(ctx, sale); err != nil {
		return models.Sale{}, err
	}
	return sale, nil
}

// List returns sales in [start, end), newest first, optionally filtered
// to one showroom.
func (s *Store) List(ctx context.Context, showroom string, start, end time.Time) ([]models.Sale, error) {
	filter := bson.M{}
	if showroom != "" {
		filter["showroom"] = showroom
	}
	created := bson.M{}
	if !start.IsZero() {
		created["$gte"] = start
	}
	if !end.IsZero() {
		created["$lt"] = end
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sales []models.Sale
	if err := cur.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}
