package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/config"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWatchDebounce = 250 * time.Millisecond
	clearScreen          = "\x1b[H\x1b[2J"
)

const watchOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

func newWatchCmd(app *App) *cobra.Command {
	filter := &filterFlags{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-print the dashboard whenever the record file changes",
		Long: `Print the dashboard for the record file and print it again every time
the file is saved. Requires --file or --source file. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.Source != config.SourceFile {
				return fmt.Errorf("watch needs a record file (use --file)")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			render := func(ctx context.Context) error {
				resp, err := fetchDashboard(cmd, app, filter)
				if err != nil {
					return err
				}
				if app.interactive() {
					fmt.Fprint(out, clearScreen)
				}
				fmt.Fprint(out, formatDashboardView(resp))
				return nil
			}
			report := func(err error) {
				app.logger().Warn("render failed", zap.String("file", app.Config.RecordsFile), zap.Error(err))
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			return watchFile(ctx, app.Config.RecordsFile, debounce, render, report)
		},
	}

	filter.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", defaultWatchDebounce, "Quiet period after a change before re-rendering")
	return cmd
}

// watchFile calls render once, then again after every burst of changes to
// path has been quiet for debounce. Render errors go to report and the
// watch continues. It returns when ctx is done or the watcher fails.
func watchFile(ctx context.Context, path string, debounce time.Duration, render func(context.Context) error, report func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()
	// Watch the directory: editors that save by rename drop a file watch.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	changed := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != abs || ev.Op&watchOps == 0 {
					continue
				}
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
	})

	g.Go(func() error {
		if err := render(gctx); err != nil {
			report(err)
		}
		timer := time.NewTimer(debounce)
		timer.Stop()
		defer timer.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-changed:
				timer.Reset(debounce)
			case <-timer.C:
				if err := render(gctx); err != nil {
					report(err)
				}
			}
		}
	})

	return g.Wait()
}
