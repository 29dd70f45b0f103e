// internal/app/features/feedback/routes.go
package feedback

import (
	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// PublicRoutes returns the unauthenticated submission endpoint.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeSubmit)
	return r
}

// Routes returns the authenticated triage endpoints.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.With(sm.RequireRole("admin", "officeadmin", "showroom")).Get("/", h.ServeList)
		pr.With(sm.RequireRole("admin", "officeadmin")).Put("/{id}/status", h.ServeSetStatus)
	})

	return r
}
