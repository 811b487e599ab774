package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce collapses the burst of events editors emit on save.
const watchDebounce = 100 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var pf paramFlags
	cmd := &cobra.Command{
		Use:   "watch params.toml",
		Short: "Regenerate whenever a parameter file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			w := cmd.OutOrStdout()
			path := args[0]

			regenerate := func() {
				p, err := pf.load(path)
				if err != nil {
					printError(w, "%v", err)
					return
				}
				if err := generateOne(ctx, w, designName(path, p), p); err != nil {
					logger.Error("generation failed", "file", path, "err", err)
				}
			}

			regenerate()
			logger.Info("watching", "file", path)
			return watchFile(ctx, path, watchDebounce, regenerate)
		},
	}
	pf.register(cmd)
	return cmd
}

// watchFile calls onChange once per debounced burst of writes to path
// until ctx is done. The parent directory is watched so editors that
// replace the file on save are still seen.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	logger := loggerFromContext(ctx)
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.After(debounce)
			}

		case <-pending:
			pending = nil
			onChange()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}
