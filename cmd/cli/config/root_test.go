package config

import (
	"bytes"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/storacha/rangestream/pkg/config"
)

func TestShowRoundTrips(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults()
	viper.Set("repo.data_dir", "/var/lib/rangestream")
	viper.Set(string(config.StreamRangeMode), "header-only")

	var out bytes.Buffer
	showCmd.SetOut(&out)
	showCmd.SetArgs(nil)
	require.NoError(t, showCmd.RunE(showCmd, nil))

	var cfg config.ServeConfig
	require.NoError(t, toml.Unmarshal(out.Bytes(), &cfg))
	require.Equal(t, "/var/lib/rangestream", cfg.Repo.DataDir)
	require.Equal(t, "header-only", cfg.Stream.RangeMode)
	require.Equal(t, uint(3000), cfg.Server.Port)
	require.Equal(t, "audio/mp3", cfg.Stream.DefaultMimeType)
}

func TestShowRejectsInvalidConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults()
	viper.Set(string(config.StreamRangeMode), "sideways")

	require.Error(t, showCmd.RunE(showCmd, nil))
}
