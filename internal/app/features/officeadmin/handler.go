// internal/app/features/officeadmin/handler.go

// Package officeadmin serves the manual daily-count entry and the
// reconciliation stats that compare those counts against the measured
// showroom traffic.
package officeadmin

import (
	customerstore "github.com/showroomhq/showroomhub/internal/app/store/customers"
	dailycountstore "github.com/showroomhq/showroomhub/internal/app/store/dailycounts"
	"github.com/showroomhq/showroomhub/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the office-admin endpoints.
type Handler struct {
	DB          *mongo.Database
	Customers   *customerstore.Store
	DailyCounts *dailycountstore.Store
	Metrics     *metrics.Metrics
	Log         *zap.Logger
}

// NewHandler creates a new officeadmin Handler. m may be nil in tests.
func NewHandler(db *mongo.Database, customers *customerstore.Store, dailyCounts *dailycountstore.Store, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Customers:   customers,
		DailyCounts: dailyCounts,
		Metrics:     m,
		Log:         logger,
	}
}
