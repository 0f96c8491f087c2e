package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rfpwatch/internal/contract"
)

const titleWidth = 36

// FormatRecords renders the filtered records as a table in input order.
func FormatRecords(resp *contract.DashboardResponse) string {
	if len(resp.Records) == 0 {
		return FormatContextLine(resp) + "\n\n" + Dim("No records match the filter.") + "\n"
	}

	rows := make([][]string, 0, len(resp.Records))
	for _, v := range resp.Records {
		r := v.Record
		rows = append(rows, []string{
			Bold(r.ID),
			Truncate(r.Title, titleWidth),
			r.Site,
			StatusBadge(r.Status),
			r.DueDate,
			DaysLabelStyled(v.DaysUntil, resp.DueWindowDays),
			FormatBudgetPtr(r.BudgetAED),
			RiskBadge(r.Risk),
			ApprovalsSummary(v.Missing),
		})
	}

	table := Table{
		Headers:    []string{"RFP", "TITLE", "SITE", "STATUS", "DUE", "WHEN", "BUDGET", "RISK", "APPROVALS"},
		Rows:       rows,
		RightAlign: []int{6},
	}
	return FormatContextLine(resp) + "\n\n" + table.Render()
}

// FormatRecordDetail renders every field of one record.
func FormatRecordDetail(v contract.RecordView, window int) string {
	r := v.Record
	var b strings.Builder

	b.WriteString(StyleHeader.Render(r.ID) + "  " + Bold(r.Title) + "\n\n")

	field := func(label, value string) {
		b.WriteString(Dim(fmt.Sprintf("%-14s", label)) + value + "\n")
	}
	field("Status", StatusBadge(r.Status))
	field("Risk", RiskBadge(r.Risk)+" "+Dim(string(v.Bucket)))
	field("Category", r.Category)
	field("Site", r.Site)
	field("Owner", r.Owner)
	field("Due", r.DueDate+"  "+DaysLabelStyled(v.DaysUntil, window))
	field("Budget", FormatBudgetPtr(r.BudgetAED))
	field("Vendors", fmt.Sprintf("%d invited, %d submitted, %d pending", r.VendorsInvited, r.Submissions, r.NotSubmitted()))
	field("Last activity", r.LastActivity)
	field("Approvals", fmt.Sprintf("finance %s  legal %s  head %s",
		check(r.Approvals.Finance), check(r.Approvals.Legal), check(r.Approvals.Head)))

	return b.String()
}

func check(ok bool) string {
	if ok {
		return StyleGreen.Render("✔")
	}
	return StyleRed.Render("✖")
}
