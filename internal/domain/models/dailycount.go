// internal/domain/models/dailycount.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyCount is an office admin's manual visitor tally for one calendar
// day, kept alongside the automatic showroom counts for reconciliation.
// Date is a "YYYY-MM-DD" string so that equality is calendar equality,
// not instant equality.
type DailyCount struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OfficeAdminID primitive.ObjectID `bson:"office_admin_id" json:"office_admin_id"`
	Date          string             `bson:"date" json:"date"`
	Showroom      string             `bson:"showroom,omitempty" json:"showroom,omitempty"`
	Count         float64            `bson:"count" json:"count"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
