package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/contract"
	"github.com/alexanderramin/rfpwatch/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth      = 20
	vendorBarSize = 10
)

var kpiCardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorDim).
	Padding(0, 1)

// FormatDashboard renders every aggregate of a dashboard response as a
// static, boxed terminal page.
func FormatDashboard(resp *contract.DashboardResponse) string {
	var b strings.Builder

	b.WriteString(FormatContextLine(resp) + "\n\n")
	b.WriteString(FormatKPIs(resp) + "\n\n")

	agg := &resp.Aggregates
	b.WriteString(Header("Pipeline") + "\n")
	b.WriteString(FormatStageBars(agg.PipelineCounts, agg.Total) + "\n")

	b.WriteString(Header("Risk") + "\n")
	for _, bc := range agg.RiskDistribution {
		label := fmt.Sprintf("%-18s", bc.Bucket)
		b.WriteString(label + RenderShareBar(bc.Count, agg.Total, barWidth, bucketStyle(bc.Bucket)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(Header("Categories") + "\n")
	b.WriteString(FormatCategories(agg.CategoryCounts) + "\n")

	b.WriteString(Header("Budget by site") + "\n")
	b.WriteString(FormatBudgetBySite(agg.BudgetBySite) + "\n")

	b.WriteString(Header("Vendor participation") + "\n")
	b.WriteString(FormatVendorParticipation(agg.VendorParticipation) + "\n")

	b.WriteString(Header("Alerts") + "\n")
	b.WriteString(FormatAlerts(agg.Alerts) + "\n")

	b.WriteString(Header("Due soon") + "\n")
	b.WriteString(FormatDueSoon(resp))

	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
		}
	}

	return RenderBox("RFP Dashboard", strings.TrimRight(b.String(), "\n"))
}

// FormatContextLine summarizes source, filter and reference date.
func FormatContextLine(resp *contract.DashboardResponse) string {
	parts := []string{
		"source " + Bold(resp.Source),
		fmt.Sprintf("%d of %d records", resp.Aggregates.Total, resp.TotalRecords),
		"as of " + resp.GeneratedAt.Format(domain.DateLayout),
	}
	if f := FormatFilter(resp.Filter); f != "" {
		parts = append(parts, "filter "+f)
	}
	return Dim(strings.Join(parts, " · "))
}

// FormatFilter describes the active predicates; empty for the identity filter.
func FormatFilter(f aggregator.FilterCriteria) string {
	if f.IsIdentity() {
		return ""
	}
	var parts []string
	if q := strings.TrimSpace(f.TextQuery); q != "" {
		parts = append(parts, fmt.Sprintf("query=%q", q))
	}
	if f.Site != "" && f.Site != aggregator.All {
		parts = append(parts, "site="+f.Site)
	}
	if f.Status != "" && f.Status != aggregator.All {
		parts = append(parts, "status="+f.Status)
	}
	return strings.Join(parts, " ")
}

// FormatKPIs renders the headline numbers as a row of cards.
func FormatKPIs(resp *contract.DashboardResponse) string {
	agg := &resp.Aggregates
	cards := []string{
		kpiCard("Total RFPs", fmt.Sprint(agg.Total), StyleFg),
		kpiCard("Active", fmt.Sprint(agg.ActiveCount), StyleBlue),
		kpiCard(fmt.Sprintf("Due in %dd", resp.DueWindowDays), fmt.Sprint(len(agg.DueThisWeek)), countStyle(len(agg.DueThisWeek), StyleYellow)),
		kpiCard("Overdue", fmt.Sprint(len(agg.Overdue)), countStyle(len(agg.Overdue), StyleRed)),
		kpiCard("Missing approvals", fmt.Sprint(len(agg.MissingApprovals)), countStyle(len(agg.MissingApprovals), StyleYellow)),
		kpiCard("Budget", FormatBudget(agg.TotalBudget()), StylePurple),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func kpiCard(label, value string, valueStyle lipgloss.Style) string {
	return kpiCardStyle.Render(Dim(label) + "\n" + valueStyle.Bold(true).Render(value))
}

func countStyle(n int, hot lipgloss.Style) lipgloss.Style {
	if n == 0 {
		return StyleGreen
	}
	return hot
}

// FormatStageBars renders one share bar per stage in workflow order.
func FormatStageBars(counts []aggregator.StageCount, total int) string {
	var b strings.Builder
	width := 0
	for _, sc := range counts {
		width = max(width, lipgloss.Width(string(sc.Stage)))
	}
	for _, sc := range counts {
		tone, _ := domain.StatusTone(sc.Stage)
		label := string(sc.Stage) + strings.Repeat(" ", width-lipgloss.Width(string(sc.Stage))+2)
		b.WriteString(label + RenderShareBar(sc.Count, total, barWidth, ToneStyle(tone)) + "\n")
	}
	return b.String()
}

func bucketStyle(b domain.RiskBucket) lipgloss.Style {
	switch b {
	case domain.BucketOverdue:
		return StyleRed
	case domain.BucketAtRisk:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// FormatCategories renders category counts in first-seen order.
func FormatCategories(counts []aggregator.CategoryCount) string {
	if len(counts) == 0 {
		return Dim("  No records.") + "\n"
	}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Category, fmt.Sprint(c.Count)})
	}
	return Table{Headers: []string{"CATEGORY", "RFPS"}, Rows: rows, RightAlign: []int{1}}.Render()
}

// FormatBudgetBySite renders the per-site budget totals, largest first.
func FormatBudgetBySite(sites []aggregator.SiteBudget) string {
	if len(sites) == 0 {
		return Dim("  No budgets set.") + "\n"
	}
	rows := make([][]string, 0, len(sites))
	for _, sb := range sites {
		rows = append(rows, []string{sb.Site, FormatBudget(sb.Total)})
	}
	return Table{Headers: []string{"SITE", "BUDGET"}, Rows: rows, RightAlign: []int{1}}.Render()
}

// FormatVendorParticipation renders invited vs submitted per recent record.
func FormatVendorParticipation(rows []aggregator.VendorParticipation) string {
	if len(rows) == 0 {
		return Dim("  No records.") + "\n"
	}
	out := make([][]string, 0, len(rows))
	for _, v := range rows {
		rate := 0.0
		if v.Invited > 0 {
			rate = float64(v.Submitted) / float64(v.Invited)
		}
		out = append(out, []string{
			v.RecordID,
			fmt.Sprint(v.Invited),
			fmt.Sprint(v.Submitted),
			fmt.Sprint(v.NotSubmitted),
			RenderProgress(rate, vendorBarSize),
		})
	}
	return Table{
		Headers:    []string{"RFP", "INVITED", "SUBMITTED", "PENDING", "RESPONSE"},
		Rows:       out,
		RightAlign: []int{1, 2, 3},
	}.Render()
}

// FormatAlerts renders alerts in severity order as computed.
func FormatAlerts(alerts []aggregator.Alert) string {
	var b strings.Builder
	for _, a := range alerts {
		style := AlertStyle(a.Type)
		b.WriteString("  " + style.Render(AlertIcon(a.Type)+" "+a.Text) + "\n")
	}
	return b.String()
}

// FormatDueSoon renders the nearest due dates with a days-until annotation.
func FormatDueSoon(resp *contract.DashboardResponse) string {
	due := resp.Aggregates.DueSoon
	if len(due) == 0 {
		return Dim("  Nothing due.") + "\n"
	}
	views := viewsByID(resp.Records)
	rows := make([][]string, 0, len(due))
	for _, r := range due {
		var days *int
		if v, ok := views[r.ID]; ok {
			days = v.DaysUntil
		}
		rows = append(rows, []string{
			Bold(r.ID),
			Truncate(r.Title, 32),
			r.Site,
			r.DueDate,
			DaysLabelStyled(days, resp.DueWindowDays),
		})
	}
	return RenderTable([]string{"RFP", "TITLE", "SITE", "DUE", "WHEN"}, rows)
}

func viewsByID(views []contract.RecordView) map[string]contract.RecordView {
	out := make(map[string]contract.RecordView, len(views))
	for _, v := range views {
		out[v.Record.ID] = v
	}
	return out
}
