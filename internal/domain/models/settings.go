// internal/domain/models/settings.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default feedback link sent in visit SMS messages when settings have
// never been saved.
const DefaultFeedbackURL = "https://feedback.showroomhub.com"

// Settings is the single SMS/feedback configuration document. It is loaded
// by the settings store and handed to the SMS dispatcher as a plain value;
// nothing reads it as ambient global state.
type Settings struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	SMSEnabled bool   `bson:"sms_enabled" json:"sms_enabled"`
	SMSApiURL  string `bson:"sms_api_url,omitempty" json:"sms_api_url,omitempty"`
	SMSApiKey  string `bson:"sms_api_key,omitempty" json:"-"`
	SMSSender  string `bson:"sms_sender,omitempty" json:"sms_sender,omitempty"`

	// FeedbackURL is the public form link included in the SMS sent after
	// a visit is recorded.
	FeedbackURL string `bson:"feedback_url,omitempty" json:"feedback_url,omitempty"`

	UpdatedAt     *time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	UpdatedByID   *primitive.ObjectID `bson:"updated_by_id,omitempty" json:"-"`
	UpdatedByName string              `bson:"updated_by_name,omitempty" json:"updated_by_name,omitempty"`
}
