// internal/app/features/occupants/routes.go
package occupants

import (
	"github.com/go-chi/chi/v5"
	"github.com/hostelhub/hostelhub/internal/app/system/auth"
)

// RoomRoutes is mounted at /api/rooms.
func RoomRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Post("/{id}/occupants", h.HandleAdd)
	return r
}

// Routes is mounted at /api/occupants.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Delete("/{id}", h.HandleRemove)
	return r
}
