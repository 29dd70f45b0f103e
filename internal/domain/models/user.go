// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a dashboard account: a head-office admin, an office
// admin entering manual daily counts, or a showroom terminal account.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	LoginID    string             `bson:"login_id" json:"login_id"`
	LoginIDCI  string             `bson:"login_id_ci" json:"-"`

	PasswordHash string `bson:"password_hash,omitempty" json:"-"`
	AuthMethod   string `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // password | google

	Role string `bson:"role" json:"role"` // admin | officeadmin | showroom

	// Showroom accounts are pinned to the branch they record visits for.
	Showroom string `bson:"showroom,omitempty" json:"showroom,omitempty"`

	Status string `bson:"status,omitempty" json:"status,omitempty"` // active | disabled

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
