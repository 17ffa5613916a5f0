package render

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
)

// ReportRenderer renders the outcome of a deploy run
type ReportRenderer struct {
	out io.Writer
}

// NewReportRenderer creates a new report renderer
func NewReportRenderer(out io.Writer) *ReportRenderer {
	return &ReportRenderer{out: out}
}

// Render prints one table per phase followed by a summary line
func (r *ReportRenderer) Render(report *models.Report) error {
	fmt.Fprintf(r.out, "%s chain %d, namespace %s, signer %s\n\n",
		sectionHeaderStyle.Sprint("Deployment"),
		report.ChainID,
		report.Namespace,
		addressStyle.Sprint(report.Signer.Hex()),
	)

	var current models.Phase
	var t table.Writer
	flush := func() {
		if t != nil {
			t.Render()
			fmt.Fprintln(r.out)
		}
	}
	for _, step := range report.Steps {
		if step.Phase != current {
			flush()
			current = step.Phase
			sectionHeaderStyle.Fprintln(r.out, title(current.String()))
			t = newTable(r.out)
			t.AppendHeader(table.Row{"Unit", "Field", "Action", "Address", "Detail"})
		}
		t.AppendRow(table.Row{
			step.Unit,
			step.Field,
			actionText(step.Action),
			addressText(step.Address),
			faintStyle.Sprint(step.Detail),
		})
	}
	flush()

	summary := fmt.Sprintf("%d steps, %d mutating, in %s", len(report.Steps), report.Mutations(), report.Duration.Round(time.Millisecond))
	fmt.Fprintln(r.out, FormatSuccess(summary))
	return nil
}

func actionText(a models.Action) string {
	switch {
	case a.Mutating():
		return okStyle.Sprint(string(a))
	case a == models.ActionSkipped:
		return warnStyle.Sprint(string(a))
	default:
		return faintStyle.Sprint(string(a))
	}
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Format.Header = text.FormatDefault
	return t
}
