// internal/app/features/hostels/rooms.go
package hostels

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/store/activity"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/listing"
	"github.com/hostelhub/hostelhub/internal/app/system/normalize"
	"github.com/hostelhub/hostelhub/internal/app/system/paging"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"github.com/hostelhub/hostelhub/internal/domain/occupancy"
	"go.uber.org/zap"
)

var defaultRoomSort = listing.SortState{Criteria: listing.RoomByNumber, Direction: listing.Asc}

type roomList struct {
	shared.List[occupancy.RoomOccupancy]
	Filter  listing.RoomFilter `json:"filter"`
	Sort    listing.SortState  `json:"sort"`
	Summary occupancy.Summary  `json:"summary"`
}

// ServeRooms handles GET /api/hostels/{id}/rooms.
//
// status (all, vacant, occupied, expiring) and page are remembered in the
// session; sort and dir apply to this request only. Summary always covers
// every room of the hostel, whatever the filter.
func (h *Handler) ServeRooms(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	hostelID, err := respond.ObjectIDParam(r, "id")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	sortState := defaultRoomSort
	if criteria := query.Get(r, "sort"); criteria != "" {
		if _, ok := listing.RoomComparators[criteria]; !ok {
			respond.Error(w, h.Log, apperr.Invalid("unknown sort: "+criteria, nil))
			return
		}
		sortState = listing.SortState{Criteria: criteria, Direction: listing.ParseDirection(query.Get(r, "dir"), listing.Asc)}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "hostels.rooms")
	defer cancel()

	st, stErr := h.State.Load(ctx, caller.SessionID)
	if stErr != nil {
		h.Log.Warn("session state load failed", zap.Error(stErr))
	}
	if raw := query.Get(r, "status"); raw != "" {
		if f := listing.ParseRoomFilter(raw); f != st.RoomFilter {
			st.RoomFilter = f
			st.RoomPage = 1
		}
	}
	if query.Get(r, "page") != "" {
		st.RoomPage = paging.ParsePage(r)
	}
	if st.RoomFilter == "" {
		st.RoomFilter = listing.RoomsAll
	}

	rooms, err := h.Occupancy.GetForBusiness(ctx, caller.BusinessID, hostelID, 0, h.Settings.Today())
	if err != nil {
		if !shared.Degradable(err) {
			respond.Error(w, h.Log, err)
			return
		}
		h.Log.Warn("room occupancy degraded",
			zap.String("hostel_id", hostelID.Hex()),
			zap.Error(err))
	}

	visible := listing.Sort(listing.FilterRooms(rooms, st.RoomFilter), sortState, listing.RoomComparators)
	list := shared.NewList(visible, st.RoomPage, h.Settings.PerPage, err)
	st.RoomPage = list.CurrentPage
	if stErr == nil {
		if err := h.State.Save(ctx, caller.SessionID, st); err != nil {
			h.Log.Warn("session state save failed", zap.Error(err))
		}
	}

	respond.JSON(w, http.StatusOK, roomList{
		List:    list,
		Filter:  st.RoomFilter,
		Sort:    sortState,
		Summary: occupancy.Summarize(rooms),
	})
}

type roomRequest struct {
	RoomNumber string `json:"roomNumber" validate:"required,notblank,max=20"`
	RoomType   string `json:"roomType" validate:"required,notblank,max=40"`
	Capacity   int    `json:"capacity" validate:"required,min=1,max=50"`
}

// HandleCreateRoom handles POST /api/hostels/{id}/rooms.
func (h *Handler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	hostelID, err := respond.ObjectIDParam(r, "id")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	var req roomRequest
	if err := respond.DecodeValid(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "hostels.createRoom")
	defer cancel()

	if _, err := h.Hostels.GetForBusiness(ctx, caller.BusinessID, hostelID); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	room, err := h.Rooms.Create(ctx, models.Room{
		HostelID:   hostelID,
		RoomNumber: normalize.Name(req.RoomNumber),
		RoomType:   normalize.Status(req.RoomType),
		Capacity:   req.Capacity,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	h.Activity.Record(ctx, caller.BusinessID, caller.UserID, activity.EventRoomCreated, &room.ID,
		"created room "+room.RoomNumber, map[string]any{"hostel_id": hostelID.Hex()})

	respond.JSON(w, http.StatusCreated, occupancy.Project(room, nil, h.Settings.Today(), h.Settings.ExpiryWindowDays))
}
