package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/rfpwatch/internal/cli/formatter"
	"github.com/alexanderramin/rfpwatch/internal/contract"
	"github.com/alexanderramin/rfpwatch/internal/repository"
	"github.com/alexanderramin/rfpwatch/internal/service"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the local record catalog",
		Long: `The catalog is a SQLite copy of a record file. Dashboards read it with
--source catalog. Every load replaces the previous records.`,
	}
	cmd.AddCommand(
		newCatalogLoadCmd(app),
		newCatalogInfoCmd(app),
		newCatalogShowCmd(app),
	)
	return cmd
}

func newCatalogLoadCmd(app *App) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Replace the catalog with the records in FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.loadCatalogUseCase()
			if err != nil {
				return err
			}
			res, err := svc.LoadCatalog(cmd.Context(), contract.LoadCatalogRequest{Path: args[0], Strict: strict})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalogLoad(res))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject unknown statuses, risks and malformed dates")
	return cmd
}

func newCatalogInfoCmd(app *App) *cobra.Command {
	var history int
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the catalog size and recent loads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.catalogInfoUseCase()
			if err != nil {
				return err
			}
			info, err := svc.CatalogInfo(cmd.Context(), history)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalogInfo(info, app.now()))
			return nil
		},
	}
	cmd.Flags().IntVar(&history, "history", 5, "Number of past loads to list")
	return cmd
}

func newCatalogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one catalog record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore()
			if err != nil {
				return err
			}
			rec, err := store.Records.GetByID(cmd.Context(), args[0])
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("record %q is not in the catalog", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecordDetail(service.NewRecordView(*rec, app.now()), app.Config.DueWindowDays))
			return nil
		},
	}
}
