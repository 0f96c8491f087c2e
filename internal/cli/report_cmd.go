package cli

import (
	"fmt"

	"github.com/alexanderramin/rfpwatch/internal/cli/formatter"
	"github.com/spf13/cobra"
)

const reportWidth = 100

func newReportCmd(app *App) *cobra.Command {
	filter := &filterFlags{}
	var raw bool
	var style string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the dashboard as a Markdown report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := fetchDashboard(cmd, app, filter)
			if err != nil {
				return err
			}
			md := formatter.BuildReport(resp)
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}

			if style == "" && !app.interactive() {
				style = "notty"
			}
			out, err := formatter.RenderMarkdown(md, style, reportWidth)
			if err != nil {
				return fmt.Errorf("rendering report: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	filter.register(cmd)
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the Markdown source")
	cmd.Flags().StringVar(&style, "style", "", "Glamour style: dark, light, notty or a JSON style path (default auto)")
	return cmd
}
