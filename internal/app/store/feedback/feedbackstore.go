// internal/app/store/feedback/feedbackstore.go
package feedbackstore

import (
	"context"
	"errors"
	"time"

	"github.com/showroomhq/showroomhub/internal/app/system/normalize"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrBadStatus is returned for a status outside new|reviewed|resolved.
var ErrBadStatus = errors.New(`status must be "new"|"reviewed"|"resolved"`)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("feedback")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_feedback_created"),
		},
		{
			Keys:    bson.D{{Key: "showroom", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_feedback_showroom_created"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_feedback_status"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a feedback event. Status defaults to "new".
func (s *Store) Create(ctx context.Context, fb models.Feedback) (models.Feedback, error) {
	fb.ID = primitive.NewObjectID()
	fb.Phone = normalize.Phone(fb.Phone)
	if fb.Status == "" {
		fb.Status = models.FeedbackNew
	}

	now := time.Now().UTC()
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = now
	}
	fb.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, fb); err != nil {
		return models.Feedback{}, err
	}
	return fb, nil
}

// GetByID loads one feedback event.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	var fb models.Feedback
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// ListFilter narrows a List call. Zero values mean "no constraint".
type ListFilter struct {
	Showroom string
	Status   string
	Start    time.Time
	End      time.Time
	Limit    int64
	Skip     int64
}

// List returns feedback newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Feedback, error) {
	filter := bson.M{}
	if f.Showroom != "" {
		filter["showroom"] = f.Showroom
	}
	if f.Status != "" {
		filter["status"] = normalize.Status(f.Status)
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

	var items []models.Feedback
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetStatus moves a feedback event to a new review status.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	status = normalize.Status(status)
	switch status {
	case models.FeedbackNew, models.FeedbackReviewed, models.FeedbackResolved:
		// ok
	default:
		return ErrBadStatus
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
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
