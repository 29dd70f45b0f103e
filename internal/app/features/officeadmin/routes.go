// internal/app/features/officeadmin/routes.go
package officeadmin

import (
	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for office-admin reconciliation endpoints.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin", "officeadmin", "showroom"))

		pr.Get("/daily-count", h.ServeGetDailyCount)
		pr.Put("/daily-count", h.ServePutDailyCount)
		pr.Get("/today-stats", h.ServeTodayStats)
		pr.Get("/daily-stats", h.ServeDailyStats)
	})

	return r
}
