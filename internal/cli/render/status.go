package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// StatusRenderer renders a registry status check
type StatusRenderer struct {
	out io.Writer
}

// NewStatusRenderer creates a new status renderer
func NewStatusRenderer(out io.Writer) *StatusRenderer {
	return &StatusRenderer{out: out}
}

// Render prints code status per entry and the units still to be deployed
func (r *StatusRenderer) Render(result *usecase.StatusResult) error {
	sectionHeaderStyle.Fprintf(r.out, "Status (%s)\n", result.Scope)

	if len(result.Entries) > 0 {
		t := newTable(r.out)
		t.AppendHeader(table.Row{"Name", "Address", "Code"})
		for _, e := range result.Entries {
			code := okStyle.Sprintf("✓ %d bytes", e.CodeSize)
			if !e.HasCode {
				code = errStyle.Sprint("✗ no code")
			}
			t.AppendRow(table.Row{nameStyle.Sprint(e.Name), addressText(e.Address), code})
		}
		t.Render()
		fmt.Fprintln(r.out)
	}

	if len(result.Missing) > 0 {
		sectionHeaderStyle.Fprintf(r.out, "Not yet deployed (%d)\n", len(result.Missing))
		for _, name := range result.Missing {
			fmt.Fprintf(r.out, "  %s\n", faintStyle.Sprint(name))
		}
		fmt.Fprintln(r.out)
	}

	switch stale := result.Stale(); {
	case len(stale) > 0:
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d recorded addresses have no code; the registry does not match this chain", len(stale))))
	case result.Converged():
		fmt.Fprintln(r.out, FormatSuccess("Every plan unit is recorded and deployed"))
	default:
		fmt.Fprintln(r.out, FormatWarning("Deployment incomplete; run deploy to converge"))
	}
	return nil
}
