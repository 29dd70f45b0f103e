// internal/domain/models/token.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthToken is a bearer API token issued at login. Expired tokens are
// reaped by a TTL index on expires_at.
type AuthToken struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token  string             `bson:"token" json:"-"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role   string             `bson:"role" json:"role"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}
