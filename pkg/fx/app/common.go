package app

import (
	"go.uber.org/fx"

	"github.com/storacha/rangestream/pkg/config/app"
	"github.com/storacha/rangestream/pkg/fx/echo"
	"github.com/storacha/rangestream/pkg/fx/store"
	"github.com/storacha/rangestream/pkg/fx/telemetry"
	"github.com/storacha/rangestream/pkg/health"
)

func CommonModules(cfg app.AppConfig) fx.Option {
	var modules = []fx.Option{
		// Supply top level config, and it's sub-configs
		// this allows dependencies to be taken on, for example, app.ServerConfig or app.StorageConfig
		// instead of needing to depend on the top level app.AppConfig
		fx.Supply(cfg),
		fx.Supply(cfg.Server),
		fx.Supply(cfg.Storage),
		fx.Supply(cfg.Stream),
		fx.Supply(cfg.Telemetry),

		echo.Module,      // Provides Echo server with route registration
		telemetry.Module, // Provides meter and stream metrics
		health.Module,    // Provides health probes with http routes.
		store.StorageModule(cfg.Storage),
	}

	return fx.Module("common", modules...)
}
