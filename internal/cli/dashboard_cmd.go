package cli

import (
	"fmt"

	"github.com/alexanderramin/rfpwatch/internal/cli/formatter"
	"github.com/alexanderramin/rfpwatch/internal/contract"
	"github.com/spf13/cobra"
)

// runDashboard computes the dashboard for the filter flags and writes the
// rendered result to the command's output.
func runDashboard(cmd *cobra.Command, app *App, filter *filterFlags, render func(*contract.DashboardResponse) string) error {
	resp, err := fetchDashboard(cmd, app, filter)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), render(resp))
	return nil
}

func fetchDashboard(cmd *cobra.Command, app *App, filter *filterFlags) (*contract.DashboardResponse, error) {
	svc, err := app.dashboardUseCase()
	if err != nil {
		return nil, err
	}
	return svc.GetDashboard(cmd.Context(), filter.request(app))
}

func formatDashboardView(resp *contract.DashboardResponse) string {
	return formatter.FormatDashboard(resp)
}

func formatAlertsView(resp *contract.DashboardResponse) string {
	return formatter.Header("ALERTS") + "\n" + formatter.FormatAlerts(resp.Aggregates.Alerts)
}

func newDashboardCmd(app *App) *cobra.Command {
	filter := &filterFlags{}
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Print the dashboard",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, app, filter, formatDashboardView)
		},
	}
	filter.register(cmd)
	return cmd
}

func newRecordsCmd(app *App) *cobra.Command {
	filter := &filterFlags{}
	var id string
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List the records that pass the filter",
		Long: `List the records that pass the filter with their status, risk, due
date and missing approvals. With --id, show one record in detail.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return runDashboard(cmd, app, filter, formatter.FormatRecords)
			}
			resp, err := fetchDashboard(cmd, app, filter)
			if err != nil {
				return err
			}
			for _, v := range resp.Records {
				if v.Record.ID == id {
					fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecordDetail(v, resp.DueWindowDays))
					return nil
				}
			}
			return fmt.Errorf("record %q not found in %s", id, resp.Source)
		},
	}
	filter.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "Show a single record")
	return cmd
}

func newAlertsCmd(app *App) *cobra.Command {
	filter := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Print the dashboard alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, app, filter, formatAlertsView)
		},
	}
	filter.register(cmd)
	return cmd
}
