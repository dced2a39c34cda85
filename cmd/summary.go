package cmd

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"wp-starter/internal/generator"
	"wp-starter/internal/pipeline"
	"wp-starter/internal/shell"
)

// renderSummary draws one row per step of a finished run.
func renderSummary(report *generator.Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	tw.SetTitle(fmt.Sprintf("WordPress %s, Bootstrap %s, Font Awesome %s",
		report.Versions.WordPress, report.Versions.Bootstrap, report.Versions.FontAwesome))
	tw.AppendHeader(table.Row{"#", "Step", "Policy", "Status", "Time"})

	for _, r := range report.Results {
		tw.AppendRow(table.Row{r.Index + 1, r.Name, r.Policy.String(), status(r), r.Elapsed.Round(time.Millisecond).String()})
	}
	tw.AppendFooter(table.Row{"", "run " + report.RunID, "", report.State.Phase.String(), ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func status(r pipeline.Result) string {
	if r.Err == nil {
		return "ok"
	}
	s := "failed"
	if code := shell.ExitCode(r.Err); code >= 0 {
		s = fmt.Sprintf("failed (exit %d)", code)
	}
	if r.Policy == pipeline.Continue {
		s += ", continued"
	}
	return s
}
