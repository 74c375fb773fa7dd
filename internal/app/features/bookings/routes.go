// internal/app/features/bookings/routes.go
package bookings

import (
	"github.com/go-chi/chi/v5"
	"github.com/hostelhub/hostelhub/internal/app/system/auth"
)

// Routes returns the bookings subrouter, mounted at /api/bookings.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Post("/{id}/commission", h.HandleCommission)
	return r
}
