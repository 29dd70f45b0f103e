// internal/domain/models/showroom.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Showroom is a registry entry for one branch. The aggregators use the
// registry only as a filter: rollup rows for names not marked active are
// dropped, unless the registry is empty.
//
// A showroom counts as active if Active is true, OR the status field is
// absent, OR Status equals "Active". Older records used the status string
// and newer ones the boolean, so all three conventions must keep working.
type Showroom struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`
	Active bool               `bson:"active" json:"active"`
	Status string             `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActive reports whether the entry counts as active under any of the
// three accepted conventions.
func (s Showroom) IsActive() bool {
	return s.Active || s.Status == "" || s.Status == "Active"
}
