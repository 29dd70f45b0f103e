// internal/app/features/customers/handler.go

// Package customers serves the visit-entry CRUD used by showroom
// terminals and the back-office dashboards. Creating a visit also
// triggers the feedback-invitation SMS.
package customers

import (
	customerstore "github.com/showroomhq/showroomhub/internal/app/store/customers"
	settingsstore "github.com/showroomhq/showroomhub/internal/app/store/settings"
	"github.com/showroomhq/showroomhub/internal/app/system/sms"
	"go.uber.org/zap"
)

// Handler owns the customer/visit endpoints.
type Handler struct {
	Customers *customerstore.Store
	Settings  *settingsstore.Store
	SMS       *sms.Dispatcher
	Log       *zap.Logger
}

// NewHandler creates a customers Handler. dispatcher may be nil when
// SMS is not wired (tests, local runs without a gateway).
func NewHandler(customers *customerstore.Store, settings *settingsstore.Store, dispatcher *sms.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		Customers: customers,
		Settings:  settings,
		SMS:       dispatcher,
		Log:       logger,
	}
}
