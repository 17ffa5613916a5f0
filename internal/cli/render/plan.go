package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// PlanRenderer renders the deployment plan
type PlanRenderer struct {
	out io.Writer
}

// NewPlanRenderer creates a new plan renderer
func NewPlanRenderer(out io.Writer) *PlanRenderer {
	return &PlanRenderer{out: out}
}

// Render prints the units of each phase with their recorded addresses
func (r *PlanRenderer) Render(view *usecase.PlanView) error {
	plan := view.Plan

	sectionHeaderStyle.Fprintln(r.out, title(models.PhaseControllers.String()))
	t := r.unitTable()
	for _, u := range []models.Unit{plan.Controllers.AddressManager, plan.Controllers.ProxyAdmin} {
		t.AppendRow(table.Row{nameStyle.Sprint(u.Name), u.ArtifactName(), deployMode(u), r.recorded(view, u.Name)})
	}
	t.Render()
	fmt.Fprintln(r.out)

	sectionHeaderStyle.Fprintln(r.out, title(models.PhaseProxies.String()))
	t = newTable(r.out)
	t.AppendHeader(table.Row{"Proxy", "Kind", "Implementation", "Initializer", "Owned", "Address"})
	for _, px := range plan.Proxies {
		t.AppendRow(table.Row{
			nameStyle.Sprint(px.Name),
			px.Kind.String(),
			px.Implementation,
			px.Initializer,
			lo.Ternary(lo.Contains(plan.Owned, px.Name), "yes", ""),
			r.recorded(view, px.Name),
		})
	}
	t.Render()
	fmt.Fprintln(r.out)

	sectionHeaderStyle.Fprintln(r.out, title(models.PhaseImplementations.String()))
	t = r.unitTable()
	for _, u := range plan.Implementations {
		t.AppendRow(table.Row{nameStyle.Sprint(u.Name), u.ArtifactName(), deployMode(u), r.recorded(view, u.Name)})
	}
	t.Render()

	if len(plan.Extensions) > 0 {
		fmt.Fprintln(r.out)
		sectionHeaderStyle.Fprintln(r.out, title(models.PhaseExtensions.String()))
		t = newTable(r.out)
		t.AppendHeader(table.Row{"Registry", "Game Type", "Implementation", "Init Bond", "Address"})
		for _, ext := range plan.Extensions {
			t.AppendRow(table.Row{
				ext.Registry,
				ext.GameType,
				nameStyle.Sprint(ext.Implementation.Name),
				ext.InitBond,
				r.recorded(view, ext.Implementation.Name),
			})
		}
		t.Render()
	}
	return nil
}

// RenderYAML prints the plan as YAML
func (r *PlanRenderer) RenderYAML(view *usecase.PlanView) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(view.Plan)
}

func (r *PlanRenderer) unitTable() table.Writer {
	t := newTable(r.out)
	t.AppendHeader(table.Row{"Unit", "Artifact", "Deploy", "Address"})
	return t
}

func (r *PlanRenderer) recorded(view *usecase.PlanView, name string) string {
	addr, ok := view.Recorded[name]
	if !ok {
		return faintStyle.Sprint("-")
	}
	return addressText(addr)
}

func deployMode(u models.Unit) string {
	if u.IsDeterministic() {
		return "create2"
	}
	return "create"
}
