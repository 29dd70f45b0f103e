// internal/domain/models/feedback.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback statuses.
const (
	FeedbackNew      = "new"
	FeedbackReviewed = "reviewed"
	FeedbackResolved = "resolved"
)

// Feedback is one customer response submitted through the public
// feedback link. Showroom and category are free strings matched against
// visits byte-for-byte by the aggregators.
type Feedback struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Showroom string             `bson:"showroom" json:"showroom"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`
	Phone    string             `bson:"phone" json:"phone"`
	Comment  string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Rating   int                `bson:"rating,omitempty" json:"rating,omitempty"`
	Status   string             `bson:"status" json:"status"` // new | reviewed | resolved

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
