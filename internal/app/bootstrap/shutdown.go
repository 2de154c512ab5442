// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// reaper is started in BuildHandler when enabled and stopped here.
var reaper *workers.SessionReaper

// Shutdown cleanly tears down the background worker and DB connections.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if reaper != nil {
		reaper.Stop()
	}
	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
