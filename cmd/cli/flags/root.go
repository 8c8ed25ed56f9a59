package flags

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/pflag"

	"github.com/storacha/rangestream/cmd/cliutil"
	"github.com/storacha/rangestream/pkg/config"
	"github.com/storacha/rangestream/pkg/rangestream"
)

func SetupRepoFlags(fs *pflag.FlagSet) error {
	fs.String(
		"data-dir",
		filepath.Join(lo.Must(os.UserHomeDir()), cliutil.DefaultDataDirName),
		"Directory holding the catalog and media files, empty keeps everything in memory",
	)

	bindings := []FlagBinding{
		{FlagName: "data-dir", ViperKey: "repo.data_dir"},
	}
	return AddAndBindFlags(fs, bindings)
}

func SetupServerFlags(fs *pflag.FlagSet) error {
	fs.String(
		"host",
		"localhost",
		"Host to listen on",
	)
	fs.Uint(
		"port",
		3000,
		"Port to listen on",
	)

	bindings := []FlagBinding{
		{FlagName: "host", ViperKey: string(config.ServerHost)},
		{FlagName: "port", ViperKey: string(config.ServerPort)},
	}
	return AddAndBindFlags(fs, bindings)
}

func SetupStreamFlags(fs *pflag.FlagSet) error {
	fs.String(
		"range-mode",
		string(rangestream.RangeModeSeek),
		"How Range requests select the body: seek sends the requested window, header-only announces it but streams from byte 0",
	)
	fs.Int(
		"chunk-size",
		rangestream.DefaultChunkSize,
		"Bytes read and written per chunk",
	)
	fs.Int(
		"max-bytes-per-second",
		0,
		"Per stream bandwidth cap in bytes per second, 0 disables it",
	)
	fs.String(
		"default-mime-type",
		rangestream.DefaultMimeType,
		"Content-Type for media without a recorded type",
	)

	bindings := []FlagBinding{
		{FlagName: "range-mode", ViperKey: string(config.StreamRangeMode)},
		{FlagName: "chunk-size", ViperKey: string(config.StreamChunkSize)},
		{FlagName: "max-bytes-per-second", ViperKey: string(config.StreamMaxBytesPerSecond)},
		{FlagName: "default-mime-type", ViperKey: string(config.StreamDefaultMimeType)},
	}
	return AddAndBindFlags(fs, bindings)
}

func SetupTelemetryFlags(fs *pflag.FlagSet) error {
	fs.String(
		"metrics-endpoint",
		"",
		"OTLP/HTTP endpoint metrics are pushed to, empty disables export",
	)
	fs.Bool(
		"metrics-insecure",
		false,
		"Push metrics over plain HTTP",
	)

	bindings := []FlagBinding{
		{FlagName: "metrics-endpoint", ViperKey: "telemetry.metrics_endpoint"},
		{FlagName: "metrics-insecure", ViperKey: "telemetry.insecure"},
	}
	return AddAndBindFlags(fs, bindings)
}
