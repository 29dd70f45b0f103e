// internal/domain/models/visit.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Visit is one customer walk-in recorded by a showroom terminal. The
// phone number doubles as the visitor identity for the analytics
// deduplication, so it is stored exactly as normalized at entry time.
type Visit struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Phone          string             `bson:"phone" json:"phone"`
	ShowroomBranch string             `bson:"showroom_branch" json:"showroom_branch"`
	Category       string             `bson:"category,omitempty" json:"category,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status         string             `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
