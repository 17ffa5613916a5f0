package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/l2deploy/internal/cli/render"
)

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the deployment plan",
		Long: `Show the units of the deployment plan. With a network selected, the
addresses already recorded for them are shown too.`,
		Example: `  l2deploy plan
  l2deploy plan --plan plan.yaml -n sepolia
  l2deploy plan --format yaml > plan.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			view, err := app.ShowPlan.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				format = "json"
			}
			renderer := render.NewPlanRenderer(cmd.OutOrStdout())
			switch format {
			case "table":
				return renderer.Render(view)
			case "yaml":
				return renderer.RenderYAML(view)
			case "json":
				return render.JSON(cmd.OutOrStdout(), view)
			default:
				return fmt.Errorf("unknown format %q (valid: table, yaml, json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, yaml, json)")

	return cmd
}
