package reporting

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/testworks-io/resultproc/result"
)

// WriteSummary renders a per-suite breakdown of the processed tree as a
// console table, with a totals footer for the whole run.
func WriteSummary(out io.Writer, res *result.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("Result Processing Summary (%s)", res.Suite.Name))

	t.AppendHeader(table.Row{"Suite", "Tests", "Passed", "Failed", "Skipped", "Duration", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Suite", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
		{Name: "Duration", Align: text.AlignRight},
	})

	appendSuiteRows(t, res.Suite, 0)

	stats := res.Statistics()
	t.AppendFooter(table.Row{
		"TOTAL",
		stats.Total,
		stats.Passed,
		stats.Failed,
		stats.Skipped,
		result.SecondsFromMillis(res.Suite.ElapsedMillis()) + "s",
		statusString(stats),
	})
	t.Render()
}

func appendSuiteRows(t table.Writer, suite *result.Suite, depth int) {
	stats := suite.Statistics()
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	t.AppendRow(table.Row{
		indent + suite.Name,
		stats.Total,
		stats.Passed,
		stats.Failed,
		stats.Skipped,
		result.SecondsFromMillis(suite.ElapsedMillis()) + "s",
		statusString(stats),
	})
	for _, child := range suite.Suites() {
		appendSuiteRows(t, child, depth+1)
	}
}

func statusString(stats result.Statistics) string {
	if stats.Failed > 0 {
		return "fail"
	}
	if stats.Total == 0 {
		return "empty"
	}
	return "pass"
}
