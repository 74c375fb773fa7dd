// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	agentstore "github.com/hostelhub/hostelhub/internal/app/store/agents"
	bookingstore "github.com/hostelhub/hostelhub/internal/app/store/bookings"
	hostelstore "github.com/hostelhub/hostelhub/internal/app/store/hostels"
	occupantstore "github.com/hostelhub/hostelhub/internal/app/store/occupants"
	"github.com/hostelhub/hostelhub/internal/app/store/queries/agentcommissions"
	"github.com/hostelhub/hostelhub/internal/app/store/queries/roomoccupancy"
	roomstore "github.com/hostelhub/hostelhub/internal/app/store/rooms"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/money"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"github.com/hostelhub/hostelhub/internal/domain/commission"
	"github.com/hostelhub/hostelhub/internal/domain/occupancy"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Commissions *agentcommissions.Service
	Hostels     *hostelstore.Store
	Occupancy   *roomoccupancy.Service
	Settings    shared.Settings
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, settings shared.Settings, logger *zap.Logger) *Handler {
	svc := agentcommissions.New(agentstore.New(db), bookingstore.New(db), logger)
	if settings.AgentLimit > 0 {
		svc.DefaultLimit = settings.AgentLimit
	}
	hostels := hostelstore.New(db)
	return &Handler{
		Commissions: svc,
		Hostels:     hostels,
		Occupancy:   roomoccupancy.New(hostels, roomstore.New(db), occupantstore.New(db), settings.ExpiryWindowDays),
		Settings:    settings,
		Log:         logger,
	}
}

type commissionTotals struct {
	commission.Totals
	TotalCommissionDisplay   string `json:"totalCommissionDisplay"`
	PaidCommissionDisplay    string `json:"paidCommissionDisplay"`
	PendingCommissionDisplay string `json:"pendingCommissionDisplay"`
}

type overview struct {
	Commission commissionTotals  `json:"commission"`
	Hostels    int               `json:"hostels"`
	Occupancy  occupancy.Summary `json:"occupancy"`
	Degraded   bool              `json:"degraded"`
	Errors     []string          `json:"errors,omitempty"`
}

// ServeDashboard handles GET /api/dashboard. Commission totals cover the
// agents that could be read; occupancy covers every room of every hostel.
// Any section that could not be read fully marks the overview degraded.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "dashboard")
	defer cancel()

	var out overview
	degrade := func(section string, err error) {
		h.Log.Warn("dashboard section degraded",
			zap.String("section", section),
			zap.String("business_id", caller.BusinessID.Hex()),
			zap.Error(err))
		out.Degraded = true
		out.Errors = append(out.Errors, section+": "+apperr.Message(err))
	}

	summaries, err := h.Commissions.Get(ctx, caller.BusinessID, 0)
	if err != nil {
		if !shared.Degradable(err) {
			respond.Error(w, h.Log, err)
			return
		}
		degrade("commission", err)
	}
	totals := commission.Sum(summaries)
	out.Commission = commissionTotals{
		Totals:                   totals,
		TotalCommissionDisplay:   money.Format(totals.TotalCommission),
		PaidCommissionDisplay:    money.Format(totals.PaidCommission),
		PendingCommissionDisplay: money.Format(totals.PendingCommission),
	}

	hostels, err := h.Hostels.ListByBusiness(ctx, caller.BusinessID)
	if err != nil {
		degrade("hostels", apperr.ReadFailure("list hostels", err))
	}
	out.Hostels = len(hostels)

	today := h.Settings.Today()
	var rooms []occupancy.RoomOccupancy
	for _, hs := range hostels {
		occ, err := h.Occupancy.GetForBusiness(ctx, caller.BusinessID, hs.ID, 0, today)
		if err != nil {
			degrade("occupancy "+hs.Name, err)
			continue
		}
		rooms = append(rooms, occ...)
	}
	out.Occupancy = occupancy.Summarize(rooms)

	respond.JSON(w, http.StatusOK, out)
}
