// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"time"

	"github.com/showroomhq/showroomhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// singletonKey pins the collection to exactly one settings document.
const singletonKey = "app"

// Store provides access to the settings collection, which holds one
// document of SMS and feedback-link configuration.
type Store struct {
	c *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("settings")}
}

// Get returns the settings document. If none has ever been saved, it
// returns defaults with SMS disabled.
func (s *Store) Get(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := s.c.FindOne(ctx, bson.M{"key": singletonKey}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return models.Settings{
			FeedbackURL: models.DefaultFeedbackURL,
		}, nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	if settings.FeedbackURL == "" {
		settings.FeedbackURL = models.DefaultFeedbackURL
	}
	return settings, nil
}

// Save upserts the settings document, recording who changed it.
func (s *Store) Save(ctx context.Context, settings models.Settings, byID primitive.ObjectID, byName string) error {
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"sms_enabled":     settings.SMSEnabled,
			"sms_api_url":     settings.SMSApiURL,
			"sms_api_key":     settings.SMSApiKey,
			"sms_sender":      settings.SMSSender,
			"feedback_url":    settings.FeedbackURL,
			"updated_at":      now,
			"updated_by_id":   byID,
			"updated_by_name": byName,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
			"key": singletonKey,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"key": singletonKey}, update, opts)
	return err
}
