package cli

import (
	"context"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/storacha/rangestream/cmd/cli/catalog"
	configcmd "github.com/storacha/rangestream/cmd/cli/config"
	"github.com/storacha/rangestream/cmd/cli/flags"
	"github.com/storacha/rangestream/cmd/cli/serve"
	"github.com/storacha/rangestream/cmd/cli/status"
	"github.com/storacha/rangestream/pkg/config"
)

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}

var log = logging.Logger("cmd")

const shortDescription = `
rangestream serves media files to players that seek with HTTP Range requests
`

const longDescription = `
rangestream keeps a catalog of media files and streams them over HTTP,
answering Range requests with 206 Partial Content so audio and video players
can seek. Media bytes live on local disk or in an S3 compatible bucket.
`

var (
	cfgFile  string
	logLevel string
	rootCmd  = &cobra.Command{
		Use:   "rangestream",
		Short: shortDescription,
		Long:  longDescription,
	}
)

func init() {
	cobra.OnInitialize(initLogging, initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "logging level")

	cobra.CheckErr(flags.SetupRepoFlags(rootCmd.PersistentFlags()))

	// register all commands and their subcommands
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(catalog.Cmd)
	rootCmd.AddCommand(configcmd.Cmd)
	rootCmd.AddCommand(status.Cmd)
	rootCmd.AddCommand(NewLogCmd())
}

func initConfig() {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("RANGESTREAM")
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		cobra.CheckErr(viper.ReadInConfig())
	}
}

func initLogging() {
	if logLevel != "" {
		ll, err := logging.LevelFromString(logLevel)
		cobra.CheckErr(err)
		logging.SetAllLoggers(ll)
		return
	}
	logging.SetLogLevel("cmd", "info")
	logging.SetLogLevel("cmd/serve", "info")
	logging.SetLogLevel("cmd/catalog", "info")
	logging.SetLogLevel("server", "info")
	logging.SetLogLevel("fx/echo", "info")
	logging.SetLogLevel("media", "info")
	logging.SetLogLevel("rangestream", "warn")
	logging.SetLogLevel("health", "warn")
	logging.SetLogLevel("telemetry", "info")
	logging.SetLogLevel("config", "warn")
	logging.SetLogLevel("objectstore/localfs", "warn")
	logging.SetLogLevel("objectstore/minio", "warn")
}
