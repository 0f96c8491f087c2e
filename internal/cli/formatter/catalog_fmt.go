package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/contract"
	"github.com/dustin/go-humanize"
)

// FormatCatalogLoad summarizes a finished catalog load.
func FormatCatalogLoad(res *contract.LoadCatalogResult) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render("✔ Catalog loaded") + "\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", Dim("load    "), res.Load.ID))
	b.WriteString(fmt.Sprintf("  %s %s\n", Dim("source  "), res.Load.Source))
	b.WriteString(fmt.Sprintf("  %s %s\n", Dim("records "), humanize.Comma(int64(res.Load.RecordCount))))
	if res.Replaced > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim("replaced"), humanize.Comma(int64(res.Replaced))))
	}
	return b.String()
}

// FormatCatalogInfo renders the catalog size and load history.
func FormatCatalogInfo(info *contract.CatalogInfo, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Catalog") + "\n")
	if info.Latest == nil {
		b.WriteString(Dim("  Empty. Run 'rfpwatch catalog load FILE' to build it.") + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %s %s\n", Dim("records"), humanize.Comma(int64(info.RecordCount))))
	b.WriteString(fmt.Sprintf("  %s %s (%s)\n", Dim("latest "), info.Latest.Source, HumanTime(info.Latest.LoadedAt, now)))

	if len(info.History) == 0 {
		return b.String()
	}
	rows := make([][]string, 0, len(info.History))
	for _, l := range info.History {
		rows = append(rows, []string{
			TruncID(l.ID),
			l.Source,
			fmt.Sprint(l.RecordCount),
			l.LoadedAt.Format(time.RFC3339),
		})
	}
	b.WriteString("\n")
	b.WriteString(Table{
		Headers:    []string{"LOAD", "SOURCE", "RECORDS", "LOADED"},
		Rows:       rows,
		RightAlign: []int{2},
	}.Render())
	return b.String()
}
