// internal/app/features/hostels/commands.go
package hostels

import (
	"context"
	"net/http"

	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/store/activity"
	"github.com/hostelhub/hostelhub/internal/app/system/normalize"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.uber.org/zap"
)

type contactRequest struct {
	Phone string `json:"phone" validate:"omitempty,max=40"`
	Email string `json:"email" validate:"omitempty,email"`
}

// hostelRequest is the body of both create and update. Location accepts
// either the structured object or a flattened "city, state, country"
// string.
type hostelRequest struct {
	Name           string           `json:"name" validate:"required,notblank,max=160"`
	Description    string           `json:"description" validate:"max=5000"`
	Location       models.Location  `json:"location"`
	PricePerYear   float64          `json:"pricePerYear" validate:"gte=0"`
	RoomTypes      []string         `json:"roomTypes" validate:"max=20,dive,notblank"`
	AvailableRooms int              `json:"availableRooms" validate:"gte=0"`
	Amenities      []string         `json:"amenities" validate:"max=50,dive,notblank"`
	Contact        contactRequest   `json:"contact"`
	Rules          string           `json:"rules" validate:"max=5000"`
	ImageURLs      []string         `json:"imageUrls" validate:"max=20,dive,http_url"`
	Geo            *models.GeoPoint `json:"geo"`
}

func (req hostelRequest) hostel() models.Hostel {
	return models.Hostel{
		Name:           normalize.Name(req.Name),
		Description:    req.Description,
		Location:       req.Location,
		PricePerYear:   req.PricePerYear,
		RoomTypes:      req.RoomTypes,
		AvailableRooms: req.AvailableRooms,
		Amenities:      req.Amenities,
		Contact: models.Contact{
			Phone: normalize.Phone(req.Contact.Phone),
			Email: normalize.Email(req.Contact.Email),
		},
		Rules:     req.Rules,
		ImageURLs: req.ImageURLs,
		Geo:       req.Geo,
	}
}

// ServeOne handles GET /api/hostels/{id}.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "hostels.get")
	defer cancel()

	hostel, err := h.Hostels.GetForBusiness(ctx, caller.BusinessID, id)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, toView(hostel))
}

// HandleCreate handles POST /api/hostels.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	var req hostelRequest
	if err := respond.DecodeValid(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "hostels.create")
	defer cancel()

	created, err := h.Hostels.Create(ctx, caller.BusinessID, req.hostel())
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	h.Log.Info("hostel created",
		zap.String("business_id", caller.BusinessID.Hex()),
		zap.String("hostel_id", created.ID.Hex()))
	h.Activity.Record(ctx, caller.BusinessID, caller.UserID, activity.EventHostelCreated, &created.ID,
		"created hostel "+created.Name, nil)

	respond.JSON(w, http.StatusCreated, toView(created))
}

// HandleUpdate handles PUT /api/hostels/{id}. The body replaces every
// editable field.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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
	var req hostelRequest
	if err := respond.DecodeValid(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "hostels.update")
	defer cancel()

	before, err := h.Hostels.GetForBusiness(ctx, caller.BusinessID, id)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	updated, err := h.Hostels.Update(ctx, caller.BusinessID, id, req.hostel())
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	h.Activity.Record(ctx, caller.BusinessID, caller.UserID, activity.EventHostelUpdated, &id,
		"updated hostel "+updated.Name, nil)

	// images dropped by the edit are no longer referenced anywhere
	if dropped := removedURLs(before.ImageURLs, updated.ImageURLs); len(dropped) > 0 {
		h.deleteImages(ctx, dropped)
	}
	respond.JSON(w, http.StatusOK, toView(updated))
}

type deleteResponse struct {
	HostelID         string `json:"hostelId"`
	RoomsDeleted     int64  `json:"roomsDeleted"`
	OccupantsDeleted int64  `json:"occupantsDeleted"`
	ImagesDeleted    int    `json:"imagesDeleted"`
	BookingsRetained int64  `json:"bookingsRetained"`
}

// HandleDelete handles DELETE /api/hostels/{id}. Rooms, occupants and
// hosted images go with the hostel. Bookings stay: they carry the hostel
// name and remain part of agent commission history.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "hostels.delete")
	defer cancel()

	deleted, err := h.Hostels.Delete(ctx, caller.BusinessID, id)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	log := h.Log.With(
		zap.String("business_id", caller.BusinessID.Hex()),
		zap.String("hostel_id", id.Hex()))

	resp := deleteResponse{HostelID: id.Hex()}
	// the hostel is gone; cascade failures are logged, not reported
	if resp.OccupantsDeleted, err = h.Occupants.DeleteByHostel(ctx, id); err != nil {
		log.Error("delete hostel occupants failed", zap.Error(err))
	}
	if resp.RoomsDeleted, err = h.Rooms.DeleteByHostel(ctx, id); err != nil {
		log.Error("delete hostel rooms failed", zap.Error(err))
	}
	if resp.BookingsRetained, err = h.Bookings.CountByHostel(ctx, id); err != nil {
		log.Warn("count hostel bookings failed", zap.Error(err))
	}
	resp.ImagesDeleted = h.deleteImages(ctx, deleted.ImageURLs)

	log.Info("hostel deleted",
		zap.Int64("rooms", resp.RoomsDeleted),
		zap.Int64("occupants", resp.OccupantsDeleted),
		zap.Int("images", resp.ImagesDeleted))
	h.Activity.Record(ctx, caller.BusinessID, caller.UserID, activity.EventHostelDeleted, &id,
		"deleted hostel "+deleted.Name, map[string]any{
			"rooms":     resp.RoomsDeleted,
			"occupants": resp.OccupantsDeleted,
		})

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) deleteImages(ctx context.Context, urls []string) int {
	if len(urls) == 0 {
		return 0
	}
	// finish the cleanup even if the client goes away
	return h.Images.DeleteURLs(context.WithoutCancel(ctx), urls)
}

// removedURLs returns the entries of before that are missing from after.
func removedURLs(before, after []string) []string {
	keep := make(map[string]bool, len(after))
	for _, u := range after {
		keep[u] = true
	}
	var out []string
	for _, u := range before {
		if !keep[u] {
			out = append(out, u)
		}
	}
	return out
}
