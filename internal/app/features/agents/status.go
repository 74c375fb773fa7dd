// internal/app/features/agents/status.go
package agents

import (
	"net/http"

	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/system/agentstatus"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
)

type activeRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type verifiedRequest struct {
	Verified *bool `json:"verified" validate:"required"`
}

// HandleSetActive handles POST /api/agents/{id}/active with {"active":bool}
// and answers with the refreshed agent list.
func (h *Handler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	var req activeRequest
	if err := respond.DecodeValid(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	h.setStatus(w, r, agentstatus.Active, *req.Active)
}

// HandleSetVerified handles POST /api/agents/{id}/verified with
// {"verified":bool} and answers with the refreshed agent list.
func (h *Handler) HandleSetVerified(w http.ResponseWriter, r *http.Request) {
	var req verifiedRequest
	if err := respond.DecodeValid(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	h.setStatus(w, r, agentstatus.Verified, *req.Verified)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, field agentstatus.Field, value bool) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	agentID, err := respond.ObjectIDParam(r, "id")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "agents.status")
	defer cancel()

	req := agentstatus.Request{
		SessionID:  caller.SessionID,
		BusinessID: caller.BusinessID,
		UserID:     caller.UserID,
		AgentID:    agentID,
		Limit:      h.Settings.AgentLimit,
	}
	set := h.Toggler.SetActive
	if field == agentstatus.Verified {
		set = h.Toggler.SetVerified
	}
	summaries, err := set(ctx, req, value)
	if err != nil && !refetchFailed(err) {
		respond.Error(w, h.Log, err)
		return
	}

	// the write went through; a failed re-read only degrades the list
	h.render(ctx, w, caller, h.loadState(ctx, caller), summaries, err)
}

// refetchFailed reports whether err came from re-reading the list after a
// successful write.
func refetchFailed(err error) bool {
	switch apperr.KindOf(err) {
	case apperr.KindReadFailure, apperr.KindPartialFailure:
		return true
	default:
		return false
	}
}

type expandResponse struct {
	AgentID  string `json:"agentId"`
	Expanded bool   `json:"expanded"`
}

// HandleExpand handles POST /api/agents/{id}/expand, flipping whether the
// agent's row shows its bookings.
func (h *Handler) HandleExpand(w http.ResponseWriter, r *http.Request) {
	caller, err := shared.CallerFrom(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	agentID, err := respond.ObjectIDParam(r, "id")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "agents.expand")
	defer cancel()

	st, err := h.State.Load(ctx, caller.SessionID)
	if err != nil {
		respond.Error(w, h.Log, apperr.ReadFailure("load session state", err))
		return
	}
	expanded := st.ToggleExpanded(agentID.Hex())
	if err := h.State.Save(ctx, caller.SessionID, st); err != nil {
		respond.Error(w, h.Log, apperr.PersistFailure("save session state", err))
		return
	}
	respond.JSON(w, http.StatusOK, expandResponse{AgentID: agentID.Hex(), Expanded: expanded})
}
