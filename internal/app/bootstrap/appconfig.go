// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (HOSTELHUB_*), configuration
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// covers ports, TLS, logging and CORS; everything specific to the booking
// service lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: hostelhub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime
	CSRFKey       string        // 32-byte CSRF key; generated per process when blank outside prod

	// Redis holds per-session UI state, toggle markers and login counters.
	// Blank RedisAddr keeps all of them in process memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StateTTL      time.Duration
	ToggleTTL     time.Duration

	// Cloudinary credentials for hostel image cleanup. Blank disables it.
	CloudinaryCloud  string
	CloudinaryKey    string
	CloudinarySecret string

	// Presentation and listing defaults
	CurrencySymbol   string
	AgentLimit       int
	PageSize         int
	LeaseExpiryDays  int
	LoginIPLimit     int
	LoginEmailLimit  int
	LoginEmailWindow time.Duration

	// Store call deadlines (see system/timeouts)
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
