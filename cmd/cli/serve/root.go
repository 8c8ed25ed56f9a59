package serve

import (
	"context"
	"fmt"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/storacha/rangestream/cmd/cli/flags"
	"github.com/storacha/rangestream/cmd/cliutil"
	"github.com/storacha/rangestream/pkg/admin"
	"github.com/storacha/rangestream/pkg/config"
	"github.com/storacha/rangestream/pkg/fx/app"
)

var log = logging.Logger("cmd/serve")

var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the media server",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func init() {
	cobra.CheckErr(flags.SetupServerFlags(Cmd.Flags()))
	cobra.CheckErr(flags.SetupStreamFlags(Cmd.Flags()))
	cobra.CheckErr(flags.SetupTelemetryFlags(Cmd.Flags()))
}

func serve(cmd *cobra.Command, _ []string) error {
	userCfg, err := config.Load[config.ServeConfig]()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	appCfg, err := userCfg.ToAppConfig()
	if err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	srv := fx.New(
		// if a panic occurs during operation, recover from it and exit (somewhat) gracefully.
		fx.RecoverFromPanics(),

		// provide fx with our logger for its events logged at debug level.
		// any fx errors will still be logged at the error level.
		fx.WithLogger(func() fxevent.Logger {
			el := &fxevent.ZapLogger{Logger: log.Desugar()}
			el.UseLogLevel(zapcore.DebugLevel)
			return el
		}),

		fx.StopTimeout(cliutil.ServerShutdownTimeout),

		// http server, storage, telemetry and health probes
		app.CommonModules(appCfg),

		// streamer, media library and routes
		app.StreamModule,

		// runtime log level control used by the log command
		admin.Module,

		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					cliutil.PrintHero(cmd.OutOrStdout(), fmt.Sprintf("http://%s:%d", appCfg.Server.Host, appCfg.Server.Port))
					cliutil.PrintServeConfig(cmd.OutOrStdout(), appCfg)
					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.Infof("Shutting down...this may take up to %s", cliutil.ServerShutdownTimeout)
					return nil
				},
			})
		}),
	)

	// an error here means a missing dependency in the module graph
	if err := srv.Err(); err != nil {
		return fmt.Errorf("building server: %w", err)
	}

	// blocks until an interrupt signal is received
	srv.Run()

	return nil
}
