// internal/app/features/agents/list.go
package agents

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/listing"
	"github.com/hostelhub/hostelhub/internal/app/system/paging"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
	"github.com/hostelhub/hostelhub/internal/app/system/sessionstate"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"github.com/hostelhub/hostelhub/internal/domain/commission"
	"go.uber.org/zap"
)

type agentList struct {
	shared.List[agentRow]
	Filter            listing.AgentFilter `json:"filter"`
	Sort              listing.SortState   `json:"sort"`
	ProcessingAgentID string              `json:"processingAgentId,omitempty"`
}

// ServeList handles GET /api/agents.
//
// Query parameters update the session's list state before it is applied:
// include_inactive and include_unverified set the filter, sort selects a
// column (flipping direction when it is already selected, unless dir is
// given), and page moves within the result. Changing the filter or sort
// returns to the first page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "agents.list")
	defer cancel()

	st := h.loadState(ctx, caller)
	if err := applyListParams(r, &st); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	summaries, err := h.Commissions.Get(ctx, caller.BusinessID, h.Settings.AgentLimit)
	if err != nil && !shared.Degradable(err) {
		respond.Error(w, h.Log, err)
		return
	}
	h.render(ctx, w, caller, st, summaries, err)
}

// render filters, sorts and pages summaries through st, saves the clamped
// page back to the session and writes the list.
func (h *Handler) render(ctx context.Context, w http.ResponseWriter, caller shared.Caller, st sessionstate.State, summaries []commission.AgentSummary, readErr error) {
	if readErr != nil {
		h.Log.Warn("agent list degraded",
			zap.String("business_id", caller.BusinessID.Hex()),
			zap.Error(readErr))
	}

	visible := listing.SortAgents(listing.FilterAgents(summaries, st.AgentFilter), st.AgentSort)
	rows := make([]agentRow, len(visible))
	for i, s := range visible {
		rows[i] = toRow(s, st)
	}

	list := shared.NewList(rows, st.AgentPage, h.Settings.PerPage, readErr)
	st.AgentPage = list.CurrentPage
	h.saveState(ctx, caller, st)

	respond.JSON(w, http.StatusOK, agentList{
		List:              list,
		Filter:            st.AgentFilter,
		Sort:              st.AgentSort,
		ProcessingAgentID: st.ProcessingAgentID,
	})
}

func applyListParams(r *http.Request, st *sessionstate.State) error {
	reset := false
	for _, p := range []struct {
		name string
		dst  *bool
	}{
		{"include_inactive", &st.AgentFilter.IncludeInactive},
		{"include_unverified", &st.AgentFilter.IncludeUnverified},
	} {
		raw := query.Get(r, p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return apperr.Invalid(p.name+" must be true or false", err)
		}
		if v != *p.dst {
			*p.dst = v
			reset = true
		}
	}

	if criteria := query.Get(r, "sort"); criteria != "" {
		if _, ok := listing.AgentComparators[criteria]; !ok {
			return apperr.Invalid("unknown sort: "+criteria, nil)
		}
		if dir := query.Get(r, "dir"); dir != "" {
			st.AgentSort = listing.SortState{Criteria: criteria, Direction: listing.ParseDirection(dir, listing.Desc)}
		} else {
			st.AgentSort = st.AgentSort.Select(criteria)
		}
		reset = true
	}

	switch {
	case query.Get(r, "page") != "":
		st.AgentPage = paging.ParsePage(r)
	case reset:
		st.AgentPage = 1
	}
	return nil
}

// loadState falls back to the default state when the session store is
// unreachable; list views never fail because of it.
func (h *Handler) loadState(ctx context.Context, caller shared.Caller) sessionstate.State {
	st, err := h.State.Load(ctx, caller.SessionID)
	if err != nil {
		h.Log.Warn("session state load failed", zap.Error(err))
		return sessionstate.Default()
	}
	return st
}

func (h *Handler) saveState(ctx context.Context, caller shared.Caller, st sessionstate.State) {
	if err := h.State.Save(ctx, caller.SessionID, st); err != nil {
		h.Log.Warn("session state save failed", zap.Error(err))
	}
}
