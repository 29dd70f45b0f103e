// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/showroomhq/showroomhub/internal/app/store/oauthstate"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after DB connections and schema
// setup are complete, but before the HTTP handler is built. The TTL
// index on oauth_states eventually reaps abandoned flows; sweeping once
// here keeps a long-idle deployment from serving stale state errors on
// its first sign-in.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	removed, err := oauthstate.New(deps.MongoDatabase).CleanupExpired(ctx)
	if err != nil {
		logger.Warn("cleanup expired oauth states", zap.Error(err))
		return nil
	}
	if removed > 0 {
		logger.Info("removed expired oauth states", zap.Int64("count", removed))
	}
	return nil
}
