// internal/app/features/bookings/handler.go
package bookings

import (
	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/store/activity"
	agentstore "github.com/hostelhub/hostelhub/internal/app/store/agents"
	bookingstore "github.com/hostelhub/hostelhub/internal/app/store/bookings"
	hostelstore "github.com/hostelhub/hostelhub/internal/app/store/hostels"
	"github.com/hostelhub/hostelhub/internal/app/system/money"
	"github.com/hostelhub/hostelhub/internal/app/system/sessionstate"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Bookings *bookingstore.Store
	Hostels  *hostelstore.Store
	Agents   *agentstore.Store
	Activity *activity.Store
	State    sessionstate.Store
	Settings shared.Settings
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, state sessionstate.Store, settings shared.Settings, logger *zap.Logger) *Handler {
	return &Handler{
		Bookings: bookingstore.New(db),
		Hostels:  hostelstore.New(db),
		Agents:   agentstore.New(db),
		Activity: activity.New(db, logger),
		State:    state,
		Settings: settings,
		Log:      logger,
	}
}

type bookingRow struct {
	models.Booking
	AmountDisplay     string `json:"amountDisplay"`
	CommissionDisplay string `json:"commissionDisplay"`
}

func toRow(b models.Booking) bookingRow {
	return bookingRow{
		Booking:           b,
		AmountDisplay:     money.Format(b.Amount),
		CommissionDisplay: money.Format(b.CommissionAmount),
	}
}
