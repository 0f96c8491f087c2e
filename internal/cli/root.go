package cli

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/app"
	"github.com/alexanderramin/rfpwatch/internal/config"
	"github.com/alexanderramin/rfpwatch/internal/logging"
	"github.com/alexanderramin/rfpwatch/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the resolved configuration and the services CLI commands use.
// Services that need the catalog database are opened on first use.
type App struct {
	Config config.Config

	// OpenStore opens the catalog database. Defaults to OpenSQLiteStore.
	OpenStore func(cfg config.Config, observer service.UseCaseObserver) (*Store, error)

	// Dashboard overrides the source-selected dashboard service when set.
	Dashboard app.DashboardUseCase

	Logger        *zap.Logger
	Now           func() time.Time
	IsInteractive func() bool

	observer service.UseCaseObserver

	// storeMu guards store: TUI loads open it from background Cmds.
	storeMu sync.Mutex
	store   *Store
}

// Close releases the catalog database if it was opened.
func (a *App) Close() error {
	a.storeMu.Lock()
	defer a.storeMu.Unlock()
	if a.store == nil || a.store.Close == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	source     string
	file       string
}

// NewRootCmd creates the top-level "rfpwatch" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var g globalFlags
	filter := &filterFlags{}

	root := &cobra.Command{
		Use:   "rfpwatch",
		Short: "Procurement RFP dashboard",
		Long: `rfpwatch summarizes RFP records into a dashboard: pipeline counts,
risk and category distributions, budget by site, vendor participation,
due and overdue lists and alerts.

With no subcommand it opens the interactive dashboard on a terminal and
prints the static dashboard otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd, g)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(cmd.Context(), app, filter.criteria())
			}
			return runDashboard(cmd, app, filter, formatDashboardView)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "YAML config file (default $"+config.EnvConfig+")")
	pf.StringVar(&g.source, "source", "", "Record source: sample, file or catalog")
	pf.StringVar(&g.file, "file", "", "Record file (JSON or YAML); implies --source file")
	_ = root.RegisterFlagCompletionFunc("source", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, len(config.Sources))
		for _, s := range config.Sources {
			out = append(out, string(s))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	filter.register(root)

	root.AddCommand(
		newDashboardCmd(app),
		newRecordsCmd(app),
		newAlertsCmd(app),
		newExportCmd(app),
		newReportCmd(app),
		newCatalogCmd(app),
		newWatchCmd(app),
	)

	return root
}

// setup applies --config, --source and --file on top of the loaded
// configuration and builds the logger.
func (a *App) setup(cmd *cobra.Command, g globalFlags) error {
	if g.configPath != "" {
		cfg, err := config.LoadConfig(g.configPath)
		if err != nil {
			return err
		}
		a.Config = cfg
	}
	if g.file != "" {
		a.Config.RecordsFile = g.file
		a.Config.Source = config.SourceFile
	}
	if cmd.Flags().Changed("source") {
		a.Config.Source = config.Source(g.source)
	}
	if err := a.Config.Validate(); err != nil {
		if errors.Is(err, config.ErrInvalidConfig) && !a.Config.Source.Valid() {
			return invalidSourceError(a.Config.Source)
		}
		return err
	}

	if a.Logger == nil {
		logger, err := logging.New(a.Config.LogLevel)
		if err != nil {
			return err
		}
		a.Logger = logger
	}
	if a.Config.LogUseCases {
		a.observer = service.NewZapUseCaseObserver(a.Logger)
	}
	a.Logger.Debug("configured",
		zap.String("source", string(a.Config.Source)),
		zap.String("records_file", a.Config.RecordsFile),
		zap.String("db_path", a.Config.DBPath),
	)
	return nil
}

func invalidSourceError(s config.Source) error {
	return &app.DashboardError{
		Code:    app.DashboardErrInvalidSource,
		Message: fmt.Sprintf("unknown source %q (want sample, file or catalog)", s),
	}
}
