package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/cli"
	"github.com/alexanderramin/rfpwatch/internal/config"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Defaults, $RFPWATCH_CONFIG and RFPWATCH_* variables. --config is
	// applied on top by the root command.
	cfg, err := config.LoadConfig("")
	if err != nil {
		return err
	}

	app := &cli.App{
		Config:    cfg,
		OpenStore: cli.OpenSQLiteStore,
		Now:       time.Now,
	}
	defer app.Close()
	defer func() {
		if app.Logger != nil {
			_ = app.Logger.Sync()
		}
	}()

	// The TUI needs a terminal on both ends; pipes get the static dashboard.
	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
