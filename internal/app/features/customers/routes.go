// internal/app/features/customers/routes.go
package customers

import (
	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the customer/visit endpoints.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.With(sm.RequireRole("admin", "officeadmin", "showroom")).Get("/", h.ServeList)
		pr.With(sm.RequireRole("admin", "showroom")).Post("/", h.ServeCreate)
		pr.With(sm.RequireRole("admin", "officeadmin", "showroom")).Put("/{id}", h.ServeUpdate)
		pr.With(sm.RequireRole("admin")).Delete("/{id}", h.ServeDelete)
	})

	return r
}
