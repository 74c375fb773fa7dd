// internal/app/features/hostels/routes.go
package hostels

import (
	"github.com/go-chi/chi/v5"
	"github.com/hostelhub/hostelhub/internal/app/system/auth"
)

// Routes returns the hostels subrouter, mounted at /api/hostels.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/search", h.ServeSearch)
	r.Get("/{id}", h.ServeOne)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	r.Get("/{id}/rooms", h.ServeRooms)
	r.Post("/{id}/rooms", h.HandleCreateRoom)
	return r
}
