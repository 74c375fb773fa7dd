// internal/app/features/agents/commands.go
package agents

import (
	"net/http"

	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/store/activity"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/normalize"
	"github.com/hostelhub/hostelhub/internal/app/system/paging"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	Name         string `json:"name" validate:"required,notblank,max=120"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"omitempty,max=40"`
	ProfileImage string `json:"profileImage" validate:"omitempty,http_url"`
	// Active and Verified are left unset when omitted.
	Active   *bool `json:"active"`
	Verified *bool `json:"verified"`
}

type updateRequest struct {
	Name         string `json:"name" validate:"omitempty,notblank,max=120"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"omitempty,max=40"`
	ProfileImage string `json:"profileImage" validate:"omitempty,http_url"`
}

// HandleCreate handles POST /api/agents.
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

	a := models.Agent{
		DisplayName:  normalize.Name(req.Name),
		Email:        normalize.Email(req.Email),
		Phone:        normalize.Phone(req.Phone),
		ProfileImage: req.ProfileImage,
	}
	if req.Active != nil {
		a.Active = models.FlagOf(*req.Active)
	}
	if req.Verified != nil {
		a.Verified = models.FlagOf(*req.Verified)
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "agents.create")
	defer cancel()

	created, err := h.Agents.Create(ctx, caller.BusinessID, a)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	h.Log.Info("agent created",
		zap.String("business_id", caller.BusinessID.Hex()),
		zap.String("agent_id", created.ID.Hex()))
	h.Activity.Record(ctx, caller.BusinessID, caller.UserID, activity.EventAgentCreated, &created.ID,
		"created agent "+created.DisplayName, nil)

	summary, err := h.Commissions.GetOne(ctx, caller.BusinessID, created.ID)
	if err != nil {
		// the agent exists; answer with what was written
		respond.JSON(w, http.StatusCreated, created)
		return
	}
	respond.JSON(w, http.StatusCreated, toRow(summary, h.loadState(ctx, caller)))
}

// ServeOne handles GET /api/agents/{id}.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "agents.get")
	defer cancel()

	summary, err := h.Commissions.GetOne(ctx, caller.BusinessID, agentID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, toRow(summary, h.loadState(ctx, caller)))
}

// HandleUpdate handles PUT /api/agents/{id}. Omitted fields keep their
// current values.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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
	var req updateRequest
	if err := respond.DecodeValid(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "agents.update")
	defer cancel()

	err = h.Agents.Update(ctx, caller.BusinessID, agentID, models.Agent{
		DisplayName:  normalize.Name(req.Name),
		Email:        normalize.Email(req.Email),
		Phone:        normalize.Phone(req.Phone),
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	h.Activity.Record(ctx, caller.BusinessID, caller.UserID, activity.EventAgentUpdated, &agentID, "updated agent", nil)

	summary, err := h.Commissions.GetOne(ctx, caller.BusinessID, agentID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, toRow(summary, h.loadState(ctx, caller)))
}

// HandleDelete handles DELETE /api/agents/{id}. The agent is unlinked
// from the business, not removed; its bookings stay in place.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "agents.unlink")
	defer cancel()

	if err := h.Agents.Unlink(ctx, caller.BusinessID, agentID); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	h.Log.Info("agent unlinked",
		zap.String("business_id", caller.BusinessID.Hex()),
		zap.String("agent_id", agentID.Hex()))
	h.Activity.Record(ctx, caller.BusinessID, caller.UserID, activity.EventAgentUnlinked, &agentID, "unlinked agent", nil)

	st := h.loadState(ctx, caller)
	if st.Expanded[agentID.Hex()] {
		delete(st.Expanded, agentID.Hex())
		h.saveState(ctx, caller, st)
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeActivity handles GET /api/agents/{id}/activity: the audit trail of
// one agent, oldest first.
func (h *Handler) ServeActivity(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "agents.activity")
	defer cancel()

	if _, err := h.Agents.GetForBusiness(ctx, caller.BusinessID, agentID); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	events, err := h.Activity.GetBySubject(ctx, caller.BusinessID, agentID)
	if err != nil {
		h.Log.Warn("agent activity read failed", zap.Error(err))
		err = apperr.ReadFailure("list agent activity", err)
	}
	respond.JSON(w, http.StatusOK, shared.NewList(events, paging.ParsePage(r), h.Settings.PerPage, err))
}
