// internal/app/features/sales/routes.go
package sales

import (
	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the sales endpoints.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.With(sm.RequireRole("admin", "officeadmin", "showroom")).Get("/", h.ServeList)
		pr.With(sm.RequireRole("admin", "showroom")).Post("/", h.ServeCreate)
	})

	return r
}
