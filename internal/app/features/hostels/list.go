// internal/app/features/hostels/list.go
package hostels

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/store/queries/businesshostels"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
	"github.com/hostelhub/hostelhub/internal/app/system/search"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeList handles GET /api/hostels: every hostel of the business in
// compact form, ordered by name. A failed read answers an empty degraded
// list.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "hostels.list")
	defer cancel()

	items, err := businesshostels.List(ctx, h.DB, caller.BusinessID)
	if err != nil {
		if !shared.Degradable(err) {
			respond.Error(w, h.Log, err)
			return
		}
		h.Log.Warn("hostel list degraded",
			zap.String("business_id", caller.BusinessID.Hex()),
			zap.Error(err))
	}
	respond.JSON(w, http.StatusOK, shared.NewCollection(items, err))
}

type searchResult struct {
	Hostel businesshostels.Item `json:"hostel"`
	Score  int                  `json:"score"`
}

// ServeSearch handles GET /api/hostels/search?q=, ranking the business's
// hostels by how well name and location match the query.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	q := strings.TrimSpace(query.Get(r, "q"))
	if q == "" {
		respond.Error(w, h.Log, apperr.Invalid("q is required", nil))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "hostels.search")
	defer cancel()

	hostels, err := h.Hostels.ListByBusiness(ctx, caller.BusinessID)
	if err != nil {
		h.Log.Warn("hostel search degraded", zap.Error(err))
		respond.JSON(w, http.StatusOK, shared.NewCollection[searchResult](nil, apperr.ReadFailure("list hostels", err)))
		return
	}

	found := search.Hostels(q, hostels)
	out := make([]searchResult, len(found))
	for i, f := range found {
		out[i] = searchResult{Hostel: businesshostels.FromHostel(f.Hostel), Score: f.Score}
	}
	respond.JSON(w, http.StatusOK, shared.NewCollection(out, nil))
}
