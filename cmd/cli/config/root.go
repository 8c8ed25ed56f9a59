package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/storacha/rangestream/cmd/cliutil"
	"github.com/storacha/rangestream/pkg/config"
)

var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective serve configuration as TOML",
	Long: `Print the configuration serve would run with after merging defaults, the
config file, RANGESTREAM_ environment variables and flags. With --write the
result is saved as ` + cliutil.ConfigFileName + ` in the current directory, ready to be
passed back with --config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load[config.ServeConfig]()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		out, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}

		write, _ := cmd.Flags().GetBool("write")
		if !write {
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}
		if err := os.WriteFile(cliutil.ConfigFileName, out, 0644); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", cliutil.ConfigFileName)
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("write", false, "Write the configuration to "+cliutil.ConfigFileName)
	Cmd.AddCommand(showCmd)
}
