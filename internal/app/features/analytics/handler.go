// internal/app/features/analytics/handler.go
package analytics

import (
	showroomstore "github.com/showroomhq/showroomhub/internal/app/store/showrooms"
	"github.com/showroomhq/showroomhub/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the showroom analytics endpoints. The aggregators read
// each collection independently and merge in application memory; the
// merged view is not atomically consistent across collections, which is
// accepted for a reporting feature.
type Handler struct {
	DB        *mongo.Database
	Showrooms *showroomstore.Store
	Metrics   *metrics.Metrics
	Log       *zap.Logger
}

// NewHandler creates a new analytics Handler. m may be nil in tests.
func NewHandler(db *mongo.Database, showrooms *showroomstore.Store, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Showrooms: showrooms,
		Metrics:   m,
		Log:       logger,
	}
}
