// internal/app/features/agents/routes.go
package agents

import (
	"github.com/go-chi/chi/v5"
	"github.com/hostelhub/hostelhub/internal/app/system/auth"
)

// Routes returns the agents subrouter, mounted at /api/agents.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeOne)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	r.Get("/{id}/activity", h.ServeActivity)
	r.Post("/{id}/active", h.HandleSetActive)
	r.Post("/{id}/verified", h.HandleSetVerified)
	r.Post("/{id}/expand", h.HandleExpand)
	return r
}
