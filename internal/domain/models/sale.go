// internal/domain/models/sale.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale is one recorded sale amount attributed to a showroom branch.
type Sale struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Showroom string             `bson:"showroom" json:"showroom"`
	Amount   float64            `bson:"amount" json:"amount"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
