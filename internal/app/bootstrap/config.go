// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/hostelhub/hostelhub/internal/app/store/queries/agentcommissions"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"github.com/hostelhub/hostelhub/internal/domain/occupancy"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for HostelHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: HOSTELHUB_MONGO_URI, HOSTELHUB_REDIS_ADDR, etc.
//   - Command-line flags: --mongo_uri, --redis_addr, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "hostelhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "hostelhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime (e.g., 24h, 30m)"},
	{Name: "csrf_key", Default: "", Desc: "32-byte CSRF key (required in prod)"},

	// Redis
	{Name: "redis_addr", Default: "", Desc: "Redis address (blank keeps UI state in memory)"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},
	{Name: "state_ttl", Default: "24h", Desc: "Lifetime of per-session list state"},
	{Name: "toggle_ttl", Default: "30s", Desc: "Longest a status toggle may stay in flight"},

	// Cloudinary
	{Name: "cloudinary_cloud", Default: "", Desc: "Cloudinary cloud name (blank disables image cleanup)"},
	{Name: "cloudinary_key", Default: "", Desc: "Cloudinary API key"},
	{Name: "cloudinary_secret", Default: "", Desc: "Cloudinary API secret"},

	// Presentation and listing
	{Name: "currency_symbol", Default: "₦", Desc: "Currency symbol for display amounts"},
	{Name: "agent_limit", Default: agentcommissions.DefaultLimit, Desc: "Agents summarized per request (max 100)"},
	{Name: "page_size", Default: 10, Desc: "Rows per page in paged lists"},
	{Name: "lease_expiry_days", Default: occupancy.DefaultExpiryWindowDays, Desc: "Days ahead a lease end counts as expiring soon"},
	{Name: "login_ip_limit", Default: 10, Desc: "Sign-in attempts per IP per minute"},
	{Name: "login_email_limit", Default: 5, Desc: "Sign-in attempts per email per window"},
	{Name: "login_email_window", Default: "5m", Desc: "Window for the per-email sign-in limit"},

	// Timeouts
	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document store calls"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for list reads and aggregations"},
	{Name: "timeout_long", Default: "30s", Desc: "Deadline for multi-collection commands"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges flags > env > files > defaults
// and reads WAFFLE_* for core and HOSTELHUB_* for app keys.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "HOSTELHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),
		CSRFKey:       appValues.String("csrf_key"),

		RedisAddr:     appValues.String("redis_addr"),
		RedisPassword: appValues.String("redis_password"),
		RedisDB:       appValues.Int("redis_db"),
		StateTTL:      appValues.Duration("state_ttl", 24*time.Hour),
		ToggleTTL:     appValues.Duration("toggle_ttl", 30*time.Second),

		CloudinaryCloud:  appValues.String("cloudinary_cloud"),
		CloudinaryKey:    appValues.String("cloudinary_key"),
		CloudinarySecret: appValues.String("cloudinary_secret"),

		CurrencySymbol:   appValues.String("currency_symbol"),
		AgentLimit:       appValues.Int("agent_limit"),
		PageSize:         appValues.Int("page_size"),
		LeaseExpiryDays:  appValues.Int("lease_expiry_days"),
		LoginIPLimit:     appValues.Int("login_ip_limit"),
		LoginEmailLimit:  appValues.Int("login_email_limit"),
		LoginEmailWindow: appValues.Duration("login_email_window", 5*time.Minute),

		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		TimeoutLong:   appValues.Duration("timeout_long", timeouts.DefaultLong),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is checked here to catch configuration errors before
// attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateApp(coreCfg.Env, appCfg)
}

func validateApp(env string, appCfg AppConfig) error {
	if appCfg.AgentLimit < 1 || appCfg.AgentLimit > agentcommissions.MaxLimit {
		return fmt.Errorf("agent_limit must be between 1 and %d, got %d", agentcommissions.MaxLimit, appCfg.AgentLimit)
	}
	if appCfg.PageSize < 1 || appCfg.PageSize > 200 {
		return fmt.Errorf("page_size must be between 1 and 200, got %d", appCfg.PageSize)
	}
	if appCfg.LeaseExpiryDays < 1 {
		return fmt.Errorf("lease_expiry_days must be positive, got %d", appCfg.LeaseExpiryDays)
	}
	if appCfg.LoginIPLimit < 1 || appCfg.LoginEmailLimit < 1 {
		return fmt.Errorf("login limits must be positive")
	}
	if appCfg.CSRFKey != "" && len(appCfg.CSRFKey) != 32 {
		return fmt.Errorf("csrf_key must be exactly 32 bytes, got %d", len(appCfg.CSRFKey))
	}
	if env == "prod" && appCfg.CSRFKey == "" {
		return fmt.Errorf("csrf_key is required in prod")
	}
	cloud := []string{appCfg.CloudinaryCloud, appCfg.CloudinaryKey, appCfg.CloudinarySecret}
	set := 0
	for _, v := range cloud {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(cloud) {
		return fmt.Errorf("cloudinary_cloud, cloudinary_key and cloudinary_secret must be set together")
	}
	return nil
}
