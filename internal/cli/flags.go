package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/contract"
	"github.com/alexanderramin/rfpwatch/internal/domain"
	"github.com/alexanderramin/rfpwatch/internal/importer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// statusValue is a pflag.Value for --status. Matching is case-insensitive
// against the default workflow so "q&a" becomes "Q&A"; other values pass
// through and are checked against the configured stages by the service.
type statusValue string

var _ pflag.Value = (*statusValue)(nil)

func (s *statusValue) String() string { return string(*s) }
func (s *statusValue) Type() string   { return "status" }

func (s *statusValue) Set(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("status must not be empty")
	}
	if strings.EqualFold(v, aggregator.All) {
		*s = aggregator.All
		return nil
	}
	for _, st := range domain.DefaultStages {
		if strings.EqualFold(v, string(st)) {
			*s = statusValue(st)
			return nil
		}
	}
	*s = statusValue(v)
	return nil
}

// dateValue is a pflag.Value accepting YYYY-MM-DD or RFC 3339.
type dateValue struct {
	t   time.Time
	set bool
}

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) String() string {
	if !d.set {
		return ""
	}
	return d.t.Format(domain.DateLayout)
}

func (d *dateValue) Type() string { return "date" }

func (d *dateValue) Set(v string) error {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(domain.DateLayout, v); err == nil {
		d.t, d.set = t, true
		return nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD or RFC 3339)", v)
	}
	d.t, d.set = t, true
	return nil
}

// formatValue is a pflag.Value restricted to json and yaml.
type formatValue importer.Format

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }
func (f *formatValue) Type() string   { return "format" }

func (f *formatValue) Set(v string) error {
	switch importer.Format(strings.ToLower(strings.TrimSpace(v))) {
	case importer.FormatJSON:
		*f = formatValue(importer.FormatJSON)
	case importer.FormatYAML, "yml":
		*f = formatValue(importer.FormatYAML)
	default:
		return fmt.Errorf("%w: %q (want json or yaml)", importer.ErrUnsupportedFormat, v)
	}
	return nil
}

// filterFlags are the dashboard filter and reference date flags.
type filterFlags struct {
	query  string
	site   string
	status statusValue
	now    dateValue
}

func (f *filterFlags) register(cmd *cobra.Command) {
	f.site = aggregator.All
	f.status = aggregator.All

	fs := cmd.Flags()
	fs.StringVarP(&f.query, "query", "q", "", "Case-insensitive text match on id, title, category and owner")
	fs.StringVar(&f.site, "site", aggregator.All, "Site to show, or All")
	fs.Var(&f.status, "status", "Workflow stage to show, or All")
	fs.Var(&f.now, "now", "Reference date for due calculations (default today)")

	_ = cmd.RegisterFlagCompletionFunc("status", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return aggregator.StatusOptions(domain.DefaultStageSet()), cobra.ShellCompDirectiveNoFileComp
	})
}

func (f *filterFlags) criteria() aggregator.FilterCriteria {
	return aggregator.FilterCriteria{TextQuery: f.query, Site: f.site, Status: string(f.status)}
}

// request builds a dashboard request; --now wins over the app clock.
func (f *filterFlags) request(a *App) contract.DashboardRequest {
	req := contract.NewDashboardRequest()
	req.Filter = f.criteria()
	now := a.now()
	if f.now.set {
		now = f.now.t
	}
	req.Now = &now
	return req
}
