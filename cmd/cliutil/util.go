package cliutil

import (
	"fmt"
	"io"

	"github.com/labstack/gommon/color"
	"github.com/spf13/cobra"

	"github.com/storacha/rangestream/pkg/build"
	"github.com/storacha/rangestream/pkg/config/app"
)

func PrintHero(w io.Writer, addr string) {
	fmt.Fprintf(w, `
%s rangestream %s
%s %s
🚀 Ready!
`,
		color.Green("▶"), build.Version,
		color.Red("●"), addr)
}

// PrintServeConfig prints the settings that decide how media is served.
func PrintServeConfig(w io.Writer, cfg app.AppConfig) {
	fmt.Fprintf(w, "Listening:   %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	switch {
	case cfg.Storage.Minio != nil:
		fmt.Fprintf(w, "Media:       s3://%s/%s\n", cfg.Storage.Minio.Endpoint, cfg.Storage.Minio.Bucket)
	case cfg.Storage.DataDir == "":
		fmt.Fprintln(w, "Media:       in memory")
	default:
		fmt.Fprintf(w, "Media:       %s\n", cfg.Storage.Media.Dir)
	}
	fmt.Fprintf(w, "Range mode:  %s\n", cfg.Stream.RangeMode)
	fmt.Fprintf(w, "Chunk size:  %d\n", cfg.Stream.ChunkSize)
	if cfg.Stream.MaxBytesPerSecond > 0 {
		fmt.Fprintf(w, "Rate limit:  %d B/s\n", cfg.Stream.MaxBytesPerSecond)
	}
}

// MustGetAPI returns the address of the running server's HTTP API from the
// command's --api flag.
func MustGetAPI(cmd *cobra.Command) string {
	addr, err := cmd.Flags().GetString("api")
	cobra.CheckErr(err)
	return addr
}
