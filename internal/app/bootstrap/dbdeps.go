// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/hostelhub/hostelhub/internal/app/system/images"
	"github.com/hostelhub/hostelhub/internal/app/system/ratelimit"
	"github.com/hostelhub/hostelhub/internal/app/system/sessionstate"
	"github.com/hostelhub/hostelhub/internal/app/system/workers"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	HostelHubMongoClient   *mongo.Client
	HostelHubMongoDatabase *mongo.Database

	// Redis is nil when no redis_addr is configured.
	Redis redis.UniversalClient

	State        sessionstate.Store
	LoginLimiter *ratelimit.LoginLimiter
	Images       images.Deleter

	// Sweeper is set only for the in-memory state store.
	Sweeper *workers.Sweeper
}
