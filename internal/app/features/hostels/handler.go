// internal/app/features/hostels/handler.go
package hostels

import (
	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/store/activity"
	bookingstore "github.com/hostelhub/hostelhub/internal/app/store/bookings"
	hostelstore "github.com/hostelhub/hostelhub/internal/app/store/hostels"
	occupantstore "github.com/hostelhub/hostelhub/internal/app/store/occupants"
	"github.com/hostelhub/hostelhub/internal/app/store/queries/roomoccupancy"
	roomstore "github.com/hostelhub/hostelhub/internal/app/store/rooms"
	"github.com/hostelhub/hostelhub/internal/app/system/images"
	"github.com/hostelhub/hostelhub/internal/app/system/money"
	"github.com/hostelhub/hostelhub/internal/app/system/sessionstate"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB        *mongo.Database
	Hostels   *hostelstore.Store
	Rooms     *roomstore.Store
	Occupants *occupantstore.Store
	Bookings  *bookingstore.Store
	Occupancy *roomoccupancy.Service
	Images    images.Deleter
	Activity  *activity.Store
	State     sessionstate.Store
	Settings  shared.Settings
	Log       *zap.Logger
}

// NewHandler wires the hostel stores. A nil deleter leaves images in
// place when hostels are deleted.
func NewHandler(db *mongo.Database, state sessionstate.Store, imgs images.Deleter, settings shared.Settings, logger *zap.Logger) *Handler {
	if imgs == nil {
		imgs = images.Noop{}
	}
	hostels := hostelstore.New(db)
	rooms := roomstore.New(db)
	occupants := occupantstore.New(db)
	return &Handler{
		DB:        db,
		Hostels:   hostels,
		Rooms:     rooms,
		Occupants: occupants,
		Bookings:  bookingstore.New(db),
		Occupancy: roomoccupancy.New(hostels, rooms, occupants, settings.ExpiryWindowDays),
		Images:    imgs,
		Activity:  activity.New(db, logger),
		State:     state,
		Settings:  settings,
		Log:       logger,
	}
}

// hostelView is a full hostel with its display strings.
type hostelView struct {
	models.Hostel
	PricePerYearDisplay string `json:"pricePerYearDisplay"`
	LocationText        string `json:"locationText"`
}

func toView(h models.Hostel) hostelView {
	return hostelView{
		Hostel:              h,
		PricePerYearDisplay: money.Format(h.PricePerYear),
		LocationText:        h.Location.String(),
	}
}
