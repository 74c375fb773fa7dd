// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/gorilla/securecookie"
	activityfeature "github.com/hostelhub/hostelhub/internal/app/features/activity"
	agentsfeature "github.com/hostelhub/hostelhub/internal/app/features/agents"
	bookingsfeature "github.com/hostelhub/hostelhub/internal/app/features/bookings"
	"github.com/hostelhub/hostelhub/internal/app/features/csrftoken"
	dashboardfeature "github.com/hostelhub/hostelhub/internal/app/features/dashboard"
	healthfeature "github.com/hostelhub/hostelhub/internal/app/features/health"
	hostelsfeature "github.com/hostelhub/hostelhub/internal/app/features/hostels"
	loginfeature "github.com/hostelhub/hostelhub/internal/app/features/login"
	logoutfeature "github.com/hostelhub/hostelhub/internal/app/features/logout"
	occupantsfeature "github.com/hostelhub/hostelhub/internal/app/features/occupants"
	"github.com/hostelhub/hostelhub/internal/app/features/shared"
	"github.com/hostelhub/hostelhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Every route except /health sits behind
// CSRF protection; the /api routers require a signed-in business owner.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	csrfKey := []byte(appCfg.CSRFKey)
	if len(csrfKey) == 0 {
		// tokens from a previous process stop validating after a restart
		csrfKey = securecookie.GenerateRandomKey(32)
		logger.Warn("csrf_key not set; using a per-process key")
	}
	protect := csrf.Protect(csrfKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.RequestHeader(csrftoken.HeaderName),
		csrf.ErrorHandler(http.HandlerFunc(csrftoken.Rejected)),
	)

	settings := shared.Settings{
		PerPage:          appCfg.PageSize,
		AgentLimit:       appCfg.AgentLimit,
		ExpiryWindowDays: appCfg.LeaseExpiryDays,
	}
	db := deps.HostelHubMongoDatabase

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.HostelHubMongoClient, deps.Redis, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Group(func(pr chi.Router) {
		if !secure {
			pr.Use(plaintext)
		}
		pr.Use(protect)
		// Loads SessionUser into context if logged in.
		pr.Use(sessionMgr.LoadSessionUser)

		pr.Get("/api/csrf", csrftoken.ServeToken)

		loginHandler := loginfeature.NewHandler(db, sessionMgr, deps.LoginLimiter, logger)
		pr.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
		pr.Mount("/logout", logoutfeature.Routes(logoutHandler))

		agentsHandler := agentsfeature.NewHandler(db, deps.State, settings, logger)
		pr.Mount("/api/agents", agentsfeature.Routes(agentsHandler, sessionMgr))

		hostelsHandler := hostelsfeature.NewHandler(db, deps.State, deps.Images, settings, logger)
		pr.Mount("/api/hostels", hostelsfeature.Routes(hostelsHandler, sessionMgr))

		occupantsHandler := occupantsfeature.NewHandler(db, settings, logger)
		pr.Mount("/api/rooms", occupantsfeature.RoomRoutes(occupantsHandler, sessionMgr))
		pr.Mount("/api/occupants", occupantsfeature.Routes(occupantsHandler, sessionMgr))

		bookingsHandler := bookingsfeature.NewHandler(db, deps.State, settings, logger)
		pr.Mount("/api/bookings", bookingsfeature.Routes(bookingsHandler, sessionMgr))

		activityHandler := activityfeature.NewHandler(db, logger)
		pr.Mount("/api/activity", activityfeature.Routes(activityHandler, sessionMgr))

		dashboardHandler := dashboardfeature.NewHandler(db, settings, logger)
		pr.Mount("/api/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))
	})

	return r, nil
}

// plaintext tells the CSRF middleware the request arrived over http, so
// it skips the https-only Referer check in local development.
func plaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
