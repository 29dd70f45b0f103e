// internal/app/features/analytics/routes.go
package analytics

import (
	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the analytics endpoints. All three
// dashboards (admin, office admin, showroom) read the same rollups.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin", "officeadmin", "showroom"))

		pr.Get("/showroom-summary", h.ServeSummary)
		pr.Get("/showroom-report", h.ServeReport)
		pr.Get("/showroom-daily", h.ServeDaily)
	})

	return r
}
