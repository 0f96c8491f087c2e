package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/contract"
	"github.com/alexanderramin/rfpwatch/internal/domain"
	"github.com/alexanderramin/rfpwatch/internal/importer"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exportDocument is the machine-readable dashboard written by export.
type exportDocument struct {
	GeneratedAt  time.Time                      `json:"generatedAt" yaml:"generatedAt"`
	Source       string                         `json:"source" yaml:"source"`
	Filter       aggregator.FilterCriteria      `json:"filter" yaml:"filter"`
	TotalRecords int                            `json:"totalRecords" yaml:"totalRecords"`
	Aggregates   aggregator.DashboardAggregates `json:"aggregates" yaml:"aggregates"`
	Warnings     []string                       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newExportDocument(resp *contract.DashboardResponse) exportDocument {
	return exportDocument{
		GeneratedAt:  resp.GeneratedAt,
		Source:       resp.Source,
		Filter:       resp.Filter,
		TotalRecords: resp.TotalRecords,
		Aggregates:   resp.Aggregates,
		Warnings:     resp.Warnings,
	}
}

func newExportCmd(app *App) *cobra.Command {
	filter := &filterFlags{}
	format := formatValue(importer.FormatJSON)
	var records bool
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dashboard aggregates as JSON or YAML",
		Long: `Write the dashboard aggregates as JSON or YAML. With --records, write
the filtered records instead, as a record file that --file can read back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := fetchDashboard(cmd, app, filter)
			if err != nil {
				return err
			}

			var doc any = newExportDocument(resp)
			if records {
				recs := make([]domain.Record, 0, len(resp.Records))
				for _, v := range resp.Records {
					recs = append(recs, v.Record)
				}
				doc = importer.FromRecords(resp.Source, recs)
			}

			if output == "" {
				return encode(cmd.OutOrStdout(), importer.Format(format), doc)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := encodeAndClose(f, importer.Format(format), doc); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			return nil
		},
	}

	filter.register(cmd)
	cmd.Flags().Var(&format, "format", "Output format: json or yaml")
	cmd.Flags().BoolVar(&records, "records", false, "Export the filtered records as a record file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(importer.FormatJSON), string(importer.FormatYAML)}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// encodeAndClose encodes v to wc and closes it. A failed close means the
// written data may be incomplete, so its error is returned too.
func encodeAndClose(wc io.WriteCloser, format importer.Format, v any) error {
	if err := encode(wc, format, v); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}

func encode(w io.Writer, format importer.Format, v any) error {
	switch format {
	case importer.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
