// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/hostelhub/hostelhub/internal/app/system/money"
	"github.com/hostelhub/hostelhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})
	money.Configure(appCfg.CurrencySymbol)
	if deps.Sweeper != nil {
		deps.Sweeper.Start()
	}
	logger.Info("startup complete",
		zap.String("currency", money.Symbol()),
		zap.Bool("redis", deps.Redis != nil))
	return nil
}
