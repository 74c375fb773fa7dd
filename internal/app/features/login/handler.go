// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"

	"github.com/hostelhub/hostelhub/internal/app/store/activity"
	businessuserstore "github.com/hostelhub/hostelhub/internal/app/store/businessusers"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/auth"
	"github.com/hostelhub/hostelhub/internal/app/system/ratelimit"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users      *businessuserstore.Store
	Activity   *activity.Store
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	if limiter == nil {
		limiter = ratelimit.DefaultLogin()
	}
	return &Handler{
		Users:      businessuserstore.New(db),
		Activity:   activity.New(db, logger),
		SessionMgr: sessionMgr,
		Limiter:    limiter,
		Log:        logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	BusinessID string `json:"businessId"`
}

// HandleLogin handles POST /login with {"email","password"}.
//
// Unknown emails, wrong passwords and disabled users all answer the same
// 401 so the response does not reveal which accounts exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.DecodeValid(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if err := h.Limiter.Check(r, req.Email); err != nil {
		h.Log.Warn("login throttled", zap.String("ip", ratelimit.ClientIP(r)))
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	u, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if errors.Is(err, businessuserstore.ErrBadCredentials) {
		respond.Error(w, h.Log, apperr.New(apperr.KindUnauthenticated, businessuserstore.ErrBadCredentials.Error(), nil))
		return
	}
	if err != nil {
		respond.Error(w, h.Log, apperr.ReadFailure("authenticate", err))
		return
	}

	su := auth.SessionUser{
		ID:         u.ID.Hex(),
		Name:       u.FullName,
		Email:      u.Email,
		BusinessID: u.BusinessID.Hex(),
	}
	if _, err := h.SessionMgr.Login(w, r, su); err != nil {
		respond.Error(w, h.Log, apperr.PersistFailure("save session", err))
		return
	}
	h.Limiter.ResetEmail(ctx, req.Email)

	h.Log.Info("business user signed in",
		zap.String("user_id", su.ID),
		zap.String("business_id", su.BusinessID))
	h.Activity.Record(ctx, u.BusinessID, u.ID, activity.EventUserLogin, nil, "signed in", nil)

	respond.JSON(w, http.StatusOK, loginResponse{
		UserID:     su.ID,
		Name:       su.Name,
		Email:      su.Email,
		BusinessID: su.BusinessID,
	})
}
