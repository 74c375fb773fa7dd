// internal/app/features/activity/routes.go
package activity

import (
	"github.com/go-chi/chi/v5"
	"github.com/hostelhub/hostelhub/internal/app/system/auth"
)

// Routes returns the router for the activity endpoints.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeRecent)
	// Weekly counts per event type
	r.Get("/summary", h.ServeSummary)
	r.Get("/events.csv", h.ServeEventsCSV)

	return r
}
