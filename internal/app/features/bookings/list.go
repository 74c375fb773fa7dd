// internal/app/features/bookings/list.go
package bookings

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/listing"
	"github.com/hostelhub/hostelhub/internal/app/system/normalize"
	"github.com/hostelhub/hostelhub/internal/app/system/paging"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.uber.org/zap"
)

var defaultBookingSort = listing.SortState{Criteria: listing.BookingByDate, Direction: listing.Desc}

type bookingList struct {
	shared.List[bookingRow]
	Status string            `json:"status"`
	Sort   listing.SortState `json:"sort"`
}

func validStatus(s string) bool {
	switch s {
	case listing.AllStatuses, models.BookingPending, models.BookingConfirmed, models.BookingCancelled:
		return true
	default:
		return false
	}
}

// ServeList handles GET /api/bookings. status and page are remembered in
// the session; sort and dir apply to this request only.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	sortState := defaultBookingSort
	if criteria := query.Get(r, "sort"); criteria != "" {
		if _, ok := listing.BookingComparators[criteria]; !ok {
			respond.Error(w, h.Log, apperr.Invalid("unknown sort: "+criteria, nil))
			return
		}
		sortState = listing.SortState{Criteria: criteria, Direction: listing.ParseDirection(query.Get(r, "dir"), listing.Desc)}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "bookings.list")
	defer cancel()

	st, stErr := h.State.Load(ctx, caller.SessionID)
	if stErr != nil {
		h.Log.Warn("session state load failed", zap.Error(stErr))
		st.BookingStatus = listing.AllStatuses
	}
	if raw := query.Get(r, "status"); raw != "" {
		status := normalize.Status(raw)
		if !validStatus(status) {
			respond.Error(w, h.Log, apperr.Invalid("unknown status: "+raw, nil))
			return
		}
		if status != st.BookingStatus {
			st.BookingStatus = status
			st.BookingPage = 1
		}
	}
	if query.Get(r, "page") != "" {
		st.BookingPage = paging.ParsePage(r)
	}

	all, err := h.Bookings.ListByBusiness(ctx, caller.BusinessID)
	if err != nil {
		h.Log.Warn("booking list degraded",
			zap.String("business_id", caller.BusinessID.Hex()),
			zap.Error(err))
		err = apperr.ReadFailure("list bookings", err)
	}

	visible := listing.Sort(listing.FilterBookings(all, st.BookingStatus), sortState, listing.BookingComparators)
	rows := make([]bookingRow, len(visible))
	for i, b := range visible {
		rows[i] = toRow(b)
	}
	list := shared.NewList(rows, st.BookingPage, h.Settings.PerPage, err)
	st.BookingPage = list.CurrentPage
	if stErr == nil {
		if err := h.State.Save(ctx, caller.SessionID, st); err != nil {
			h.Log.Warn("session state save failed", zap.Error(err))
		}
	}

	respond.JSON(w, http.StatusOK, bookingList{List: list, Status: st.BookingStatus, Sort: sortState})
}
