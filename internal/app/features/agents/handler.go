// internal/app/features/agents/handler.go
package agents

import (
	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/store/activity"
	agentstore "github.com/hostelhub/hostelhub/internal/app/store/agents"
	bookingstore "github.com/hostelhub/hostelhub/internal/app/store/bookings"
	"github.com/hostelhub/hostelhub/internal/app/store/queries/agentcommissions"
	"github.com/hostelhub/hostelhub/internal/app/system/agentstatus"
	"github.com/hostelhub/hostelhub/internal/app/system/money"
	"github.com/hostelhub/hostelhub/internal/app/system/sessionstate"
	"github.com/hostelhub/hostelhub/internal/domain/commission"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the agent commission list and the agent commands.
type Handler struct {
	Commissions *agentcommissions.Service
	Agents      *agentstore.Store
	Toggler     *agentstatus.Toggler
	State       sessionstate.Store
	Activity    *activity.Store
	Settings    shared.Settings
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, state sessionstate.Store, settings shared.Settings, logger *zap.Logger) *Handler {
	agents := agentstore.New(db)
	acts := activity.New(db, logger)

	svc := agentcommissions.New(agents, bookingstore.New(db), logger)
	if settings.AgentLimit > 0 {
		svc.DefaultLimit = settings.AgentLimit
	}

	return &Handler{
		Commissions: svc,
		Agents:      agents,
		Toggler: &agentstatus.Toggler{
			Writer:   agents,
			Marker:   state,
			Lister:   svc,
			Recorder: acts,
			Log:      logger,
		},
		State:    state,
		Activity: acts,
		Settings: settings,
		Log:      logger,
	}
}

// agentRow is one agent in API responses: the commission summary plus
// display strings and the session's row state.
type agentRow struct {
	commission.AgentSummary
	TotalCommissionDisplay   string `json:"totalCommissionDisplay"`
	PaidCommissionDisplay    string `json:"paidCommissionDisplay"`
	PendingCommissionDisplay string `json:"pendingCommissionDisplay"`
	Expanded                 bool   `json:"expanded"`
	Processing               bool   `json:"processing"`
}

func toRow(s commission.AgentSummary, st sessionstate.State) agentRow {
	id := s.AgentID.Hex()
	return agentRow{
		AgentSummary:             s,
		TotalCommissionDisplay:   money.Format(s.TotalCommission),
		PaidCommissionDisplay:    money.Format(s.PaidCommission),
		PendingCommissionDisplay: money.Format(s.PendingCommission),
		Expanded:                 st.Expanded[id],
		Processing:               st.ProcessingAgentID == id,
	}
}
