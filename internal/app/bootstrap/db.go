// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/hostelhub/hostelhub/internal/app/system/images"
	"github.com/hostelhub/hostelhub/internal/app/system/indexes"
	"github.com/hostelhub/hostelhub/internal/app/system/ratelimit"
	"github.com/hostelhub/hostelhub/internal/app/system/sessionstate"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"github.com/hostelhub/hostelhub/internal/app/system/validators"
	"github.com/hostelhub/hostelhub/internal/app/system/workers"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectDB connects MongoDB, and Redis when configured, and builds the
// back-ends that depend on them.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	deps := DBDeps{
		HostelHubMongoClient:   client,
		HostelHubMongoDatabase: client.Database(appCfg.MongoDatabase),
	}

	if appCfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     appCfg.RedisAddr,
			Password: appCfg.RedisPassword,
			DB:       appCfg.RedisDB,
		})
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			_ = client.Disconnect(context.Background())
			return DBDeps{}, fmt.Errorf("redis ping: %w", err)
		}
		logger.Info("connected to Redis", zap.String("addr", appCfg.RedisAddr))
		deps.Redis = rdb
	}

	deps.State, deps.Sweeper = buildState(appCfg, deps.Redis, logger)
	deps.LoginLimiter = buildLoginLimiter(appCfg, deps.Redis)

	deps.Images = images.Noop{}
	if appCfg.CloudinaryCloud != "" {
		cld, err := images.NewCloudinary(appCfg.CloudinaryCloud, appCfg.CloudinaryKey, appCfg.CloudinarySecret, logger)
		if err != nil {
			return DBDeps{}, fmt.Errorf("cloudinary: %w", err)
		}
		deps.Images = cld
	} else {
		logger.Warn("cloudinary not configured; hostel images will not be cleaned up")
	}

	return deps, nil
}

func buildState(appCfg AppConfig, rdb redis.UniversalClient, logger *zap.Logger) (sessionstate.Store, *workers.Sweeper) {
	if rdb != nil {
		return sessionstate.NewRedisStore(rdb, "hostelhub:state:", appCfg.StateTTL, appCfg.ToggleTTL), nil
	}
	mem := sessionstate.NewMemoryStore(appCfg.StateTTL, appCfg.ToggleTTL)
	return mem, workers.NewSweeper("session-state", mem, logger, time.Minute)
}

func buildLoginLimiter(appCfg AppConfig, rdb redis.UniversalClient) *ratelimit.LoginLimiter {
	if rdb != nil {
		return ratelimit.NewLoginLimiter(
			ratelimit.NewRedis(rdb, "hostelhub:login:", appCfg.LoginIPLimit, time.Minute),
			ratelimit.NewRedis(rdb, "hostelhub:login:", appCfg.LoginEmailLimit, appCfg.LoginEmailWindow),
		)
	}
	return ratelimit.NewLoginLimiter(
		ratelimit.New(appCfg.LoginIPLimit, time.Minute),
		ratelimit.New(appCfg.LoginEmailLimit, appCfg.LoginEmailWindow),
	)
}

// EnsureSchema creates indexes and collection validators. Both are
// idempotent and run on every start.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.HostelHubMongoDatabase
	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		logger.Error("ensure validators failed", zap.Error(err))
		return err
	}
	return nil
}
