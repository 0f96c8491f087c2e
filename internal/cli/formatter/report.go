package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/contract"
	"github.com/alexanderramin/rfpwatch/internal/domain"
	"github.com/charmbracelet/glamour"
)

// BuildReport writes the dashboard as a markdown document.
func BuildReport(resp *contract.DashboardResponse) string {
	agg := &resp.Aggregates
	var b strings.Builder

	fmt.Fprintf(&b, "# RFP dashboard report\n\n")
	fmt.Fprintf(&b, "Source **%s**, %d of %d records, as of %s.\n",
		resp.Source, agg.Total, resp.TotalRecords, resp.GeneratedAt.Format(domain.DateLayout))
	if f := FormatFilter(resp.Filter); f != "" {
		fmt.Fprintf(&b, "Filter: `%s`.\n", f)
	}

	b.WriteString("\n## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Total RFPs | %d |\n", agg.Total)
	fmt.Fprintf(&b, "| Active | %d |\n", agg.ActiveCount)
	fmt.Fprintf(&b, "| Due within %d days | %d |\n", resp.DueWindowDays, len(agg.DueThisWeek))
	fmt.Fprintf(&b, "| Overdue | %d |\n", len(agg.Overdue))
	fmt.Fprintf(&b, "| Missing approvals | %d |\n", len(agg.MissingApprovals))
	fmt.Fprintf(&b, "| Total budget | %s |\n", FormatBudget(agg.TotalBudget()))

	b.WriteString("\n## Alerts\n\n")
	for _, a := range agg.Alerts {
		fmt.Fprintf(&b, "- %s %s\n", alertMarker(a.Type), a.Text)
	}

	b.WriteString("\n## Pipeline\n\n")
	b.WriteString("| Stage | RFPs |\n|---|---:|\n")
	for _, sc := range agg.PipelineCounts {
		fmt.Fprintf(&b, "| %s | %d |\n", sc.Stage, sc.Count)
	}

	b.WriteString("\n## Risk\n\n")
	for _, bc := range agg.RiskDistribution {
		fmt.Fprintf(&b, "- %s: %d\n", bc.Bucket, bc.Count)
	}

	if len(agg.BudgetBySite) > 0 {
		b.WriteString("\n## Budget by site\n\n")
		b.WriteString("| Site | Budget |\n|---|---:|\n")
		for _, sb := range agg.BudgetBySite {
			fmt.Fprintf(&b, "| %s | %s |\n", sb.Site, FormatBudget(sb.Total))
		}
	}

	if len(agg.DueSoon) > 0 {
		views := viewsByID(resp.Records)
		b.WriteString("\n## Due soon\n\n")
		b.WriteString("| RFP | Title | Due | When |\n|---|---|---|---|\n")
		for _, r := range agg.DueSoon {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.ID, escapePipes(r.Title), r.DueDate, DaysLabel(views[r.ID].DaysUntil))
		}
	}

	if len(agg.MissingApprovals) > 0 {
		b.WriteString("\n## Missing approvals\n\n")
		for _, r := range agg.MissingApprovals {
			fmt.Fprintf(&b, "- **%s** %s: %s\n", r.ID, escapePipes(r.Title), strings.Join(r.Approvals.Missing(), ", "))
		}
	}

	if len(resp.Warnings) > 0 {
		b.WriteString("\n## Data issues\n\n")
		for _, w := range resp.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}

func alertMarker(t aggregator.AlertType) string {
	switch t {
	case aggregator.AlertDanger:
		return "**[overdue]**"
	case aggregator.AlertWarn:
		return "**[attention]**"
	default:
		return "[ok]"
	}
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderMarkdown renders markdown for the terminal. An empty style selects
// glamour's auto style; "notty" gives plain output.
func RenderMarkdown(md string, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
