package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	logging "github.com/ipfs/go-log/v2"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/storacha/rangestream/cmd/cliutil/format"
	"github.com/storacha/rangestream/pkg/config"
	"github.com/storacha/rangestream/pkg/fx/store"
	"github.com/storacha/rangestream/pkg/service/media"
	catalogstore "github.com/storacha/rangestream/pkg/store/catalog"
)

var log = logging.Logger("cmd/catalog")

var Cmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the media served by the server",
	Long: `Add, list and remove media in the data directory. The server does not
need to be running, but leveldb allows a single process at a time, so stop it
first when the catalog is kept on disk.`,
}

var (
	addCmd = &cobra.Command{
		Use:   "add <file>",
		Short: "Copy a file into the media store and register it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			mimeType, _ := cmd.Flags().GetString("mime-type")
			return withLibrary(cmd.Context(), func(ctx context.Context, lib *media.Library) error {
				var progress io.Writer
				if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
					progress = cmd.ErrOrStderr()
				}
				entry, err := addFile(ctx, lib, args[0], id, mimeType, progress)
				if err != nil {
					return err
				}
				cmd.Printf("added %s (%d bytes)\n", entry.ID, entry.Size)
				return nil
			})
		},
	}

	lsCmd = &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List registered media",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			of, err := format.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			return withLibrary(cmd.Context(), func(ctx context.Context, lib *media.Library) error {
				return list(ctx, lib, format.NewFormatter(of, cmd.OutOrStdout()))
			})
		},
	}

	rmCmd = &cobra.Command{
		Use:   "rm <id>...",
		Short: "Remove media from the catalog and delete its bytes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLibrary(cmd.Context(), func(ctx context.Context, lib *media.Library) error {
				for _, id := range args {
					if err := lib.Remove(ctx, id); err != nil {
						return fmt.Errorf("removing %s: %w", id, err)
					}
					cmd.Printf("removed %s\n", id)
				}
				return nil
			})
		},
	}
)

func init() {
	addCmd.Flags().String("id", "", "Id to serve the file under, defaults to the file name")
	addCmd.Flags().String("mime-type", "", "Content-Type to serve the file with, detected from the content when empty")
	addCmd.Flags().BoolP("quiet", "q", false, "Do not show copy progress")
	lsCmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(lsCmd)
	Cmd.AddCommand(rmCmd)
}

// addFile registers the file at path. Copy progress is drawn on progress
// when it is not nil.
func addFile(ctx context.Context, lib *media.Library, path, id, mimeType string, progress io.Writer) (catalogstore.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalogstore.Entry{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return catalogstore.Entry{}, err
	}
	if !info.Mode().IsRegular() {
		return catalogstore.Entry{}, fmt.Errorf("%s is not a regular file", path)
	}

	if id == "" {
		id = filepath.Base(path)
	}
	if mimeType == "" {
		mimeType, err = detectMimeType(f, path)
		if err != nil {
			return catalogstore.Entry{}, err
		}
	}
	if progress == nil {
		return lib.Add(ctx, id, info.Size(), mimeType, f)
	}

	bar := progressbar.NewOptions64(
		info.Size(),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("Copying "+id),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprint(progress, "\n")
		}),
	)
	entry, err := lib.Add(ctx, id, info.Size(), mimeType, io.TeeReader(f, bar))
	if err != nil {
		return catalogstore.Entry{}, err
	}
	_ = bar.Finish()
	return entry, nil
}

// detectMimeType sniffs the content of f and falls back to the extension.
// An empty result leaves the choice to the server's default type.
func detectMimeType(f *os.File, path string) (string, error) {
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detecting type of %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if !mt.Is("application/octet-stream") {
		return mt.String(), nil
	}
	return mime.TypeByExtension(filepath.Ext(path)), nil
}

func list(ctx context.Context, lib *media.Library, f format.Formatter) error {
	entries, err := lib.List(ctx)
	if err != nil {
		return err
	}
	return f.Format(entries)
}

// withLibrary opens the configured stores for the duration of fn.
func withLibrary(ctx context.Context, fn func(context.Context, *media.Library) error) (err error) {
	userCfg, err := config.Load[config.CatalogConfig]()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	storageCfg, err := userCfg.ToAppConfig()
	if err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if storageCfg.DataDir == "" {
		return errors.New("a data dir is required, in memory catalogs do not outlive the command")
	}

	var lib *media.Library
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(storageCfg),
		store.StorageModule(storageCfg),
		fx.Provide(media.NewLibrary),
		fx.Populate(&lib),
	)
	if err := fxApp.Err(); err != nil {
		return fmt.Errorf("opening stores: %w", err)
	}
	if err := fxApp.Start(ctx); err != nil {
		return fmt.Errorf("opening stores: %w", err)
	}
	defer func() {
		if serr := fxApp.Stop(context.WithoutCancel(ctx)); serr != nil {
			log.Errorw("closing stores", "error", serr)
			err = errors.Join(err, serr)
		}
	}()

	return fn(ctx, lib)
}
