// internal/app/features/occupants/handler.go
package occupants

import (
	"net/http"

	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/store/activity"
	hostelstore "github.com/hostelhub/hostelhub/internal/app/store/hostels"
	occupantstore "github.com/hostelhub/hostelhub/internal/app/store/occupants"
	roomstore "github.com/hostelhub/hostelhub/internal/app/store/rooms"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/normalize"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"github.com/hostelhub/hostelhub/internal/domain/occupancy"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Hostels   *hostelstore.Store
	Rooms     *roomstore.Store
	Occupants *occupantstore.Store
	Activity  *activity.Store
	Settings  shared.Settings
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, settings shared.Settings, logger *zap.Logger) *Handler {
	return &Handler{
		Hostels:   hostelstore.New(db),
		Rooms:     roomstore.New(db),
		Occupants: occupantstore.New(db),
		Activity:  activity.New(db, logger),
		Settings:  settings,
		Log:       logger,
	}
}

type addRequest struct {
	Name          string `json:"name" validate:"required,notblank,max=120"`
	LeaseEnd      string `json:"leaseEnd" validate:"required,date"`
	PaymentStatus string `json:"paymentStatus" validate:"omitempty,oneof=paid pending overdue"`
	AgentAssisted bool   `json:"agentAssisted"`
	AgentName     string `json:"agentName" validate:"max=120"`
}

// HandleAdd handles POST /api/rooms/{id}/occupants. A room already at
// capacity answers 409.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	roomID, err := respond.ObjectIDParam(r, "id")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	var req addRequest
	if err := respond.DecodeValid(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "occupants.add")
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, roomID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	// rooms carry no business id; ownership goes through the hostel
	if _, err := h.Hostels.GetForBusiness(ctx, caller.BusinessID, room.HostelID); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			err = apperr.NotFound("room")
		}
		respond.Error(w, h.Log, err)
		return
	}

	o := models.Occupant{
		Name:          normalize.Name(req.Name),
		LeaseEnd:      req.LeaseEnd,
		PaymentStatus: req.PaymentStatus,
		AgentAssisted: req.AgentAssisted,
		AgentName:     normalize.Name(req.AgentName),
	}
	added, err := h.Occupants.Add(ctx, room, o)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	h.Log.Info("occupant added",
		zap.String("business_id", caller.BusinessID.Hex()),
		zap.String("room_id", room.ID.Hex()))
	h.Activity.Record(ctx, caller.BusinessID, caller.UserID, activity.EventOccupantAdded, &added.ID,
		"added "+added.Name+" to room "+room.RoomNumber, map[string]any{"room_id": room.ID.Hex()})

	view := occupancy.OccupantView{Occupant: added}
	today := h.Settings.Today()
	if days, ok := occupancy.DaysUntil(added.LeaseEnd, today); ok {
		view.DaysLeft = &days
		view.ExpiringSoon = occupancy.ExpiringSoon(added.LeaseEnd, today, h.windowDays())
	}
	respond.JSON(w, http.StatusCreated, view)
}

// HandleRemove handles DELETE /api/occupants/{id}.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	id, err := respond.ObjectIDParam(r, "id")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "occupants.remove")
	defer cancel()

	hostels, err := h.Hostels.ListByBusiness(ctx, caller.BusinessID)
	if err != nil {
		respond.Error(w, h.Log, apperr.ReadFailure("list hostels", err))
		return
	}
	if len(hostels) == 0 {
		respond.Error(w, h.Log, apperr.NotFound("occupant"))
		return
	}
	ids := make([]primitive.ObjectID, len(hostels))
	for i, hs := range hostels {
		ids[i] = hs.ID
	}
	if err := h.Occupants.Remove(ctx, ids, id); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	h.Activity.Record(ctx, caller.BusinessID, caller.UserID, activity.EventOccupantRemoved, &id, "removed occupant", nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) windowDays() int {
	if h.Settings.ExpiryWindowDays > 0 {
		return h.Settings.ExpiryWindowDays
	}
	return occupancy.DefaultExpiryWindowDays
}
