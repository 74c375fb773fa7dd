// internal/app/features/bookings/commands.go
package bookings

import (
	"net/http"

	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/store/activity"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/normalize"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	HostelID         string  `json:"hostelId" validate:"required,mongodb"`
	AgentID          string  `json:"agentId" validate:"omitempty,mongodb"`
	StudentName      string  `json:"studentName" validate:"required,notblank,max=120"`
	Amount           float64 `json:"amount" validate:"gte=0"`
	BookingDate      string  `json:"bookingDate" validate:"required,date"`
	Status           string  `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
	CommissionAmount float64 `json:"commissionAmount" validate:"gte=0"`
	CommissionStatus string  `json:"commissionStatus" validate:"omitempty,oneof=paid pending"`
}

// HandleCreate handles POST /api/bookings. The hostel must belong to the
// business and the agent, when given, must work with it; the hostel name
// is copied onto the booking.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	var req createRequest
	if err := respond.DecodeValid(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	// both ids passed the mongodb tag
	hostelID, _ := primitive.ObjectIDFromHex(req.HostelID)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "bookings.create")
	defer cancel()

	hostel, err := h.Hostels.GetForBusiness(ctx, caller.BusinessID, hostelID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	b := models.Booking{
		HostelID:         &hostel.ID,
		HostelName:       hostel.Name,
		StudentName:      normalize.Name(req.StudentName),
		Amount:           req.Amount,
		BookingDate:      req.BookingDate,
		Status:           req.Status,
		CommissionAmount: req.CommissionAmount,
		CommissionStatus: req.CommissionStatus,
	}
	if req.AgentID != "" {
		agentID, _ := primitive.ObjectIDFromHex(req.AgentID)
		if _, err := h.Agents.GetForBusiness(ctx, caller.BusinessID, agentID); err != nil {
			respond.Error(w, h.Log, err)
			return
		}
		b.AgentID = &agentID
	}

	created, err := h.Bookings.Create(ctx, caller.BusinessID, b)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	h.Log.Info("booking created",
		zap.String("business_id", caller.BusinessID.Hex()),
		zap.String("booking_id", created.ID.Hex()))
	h.Activity.Record(ctx, caller.BusinessID, caller.UserID, activity.EventBookingCreated, &created.ID,
		"booked "+created.StudentName+" into "+created.HostelName, nil)

	respond.JSON(w, http.StatusCreated, toRow(created))
}

type commissionRequest struct {
	Status string `json:"status" validate:"required,oneof=paid pending"`
}

// HandleCommission handles POST /api/bookings/{id}/commission with
// {"status":"paid"|"pending"}.
func (h *Handler) HandleCommission(w http.ResponseWriter, r *http.Request) {
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
	var req commissionRequest
	if err := respond.DecodeValid(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "bookings.commission")
	defer cancel()

	if err := h.Bookings.SetCommissionStatus(ctx, caller.BusinessID, id, req.Status); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	h.Activity.Record(ctx, caller.BusinessID, caller.UserID, activity.EventCommissionStatusSet, &id,
		"commission marked "+req.Status, map[string]any{"status": req.Status})

	b, err := h.Bookings.GetForBusiness(ctx, caller.BusinessID, id)
	if err != nil {
		respond.Error(w, h.Log, apperr.ReadFailure("reload booking", err))
		return
	}
	respond.JSON(w, http.StatusOK, toRow(b))
}
