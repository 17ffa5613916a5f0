package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/l2deploy/internal/app"
	"github.com/trebuchet-org/l2deploy/internal/cli/render"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Converge the network on the deployment plan",
		Long: `Run every reconciliation phase against the selected network.

Units already recorded and deployed are left alone, so an interrupted run is
resumed by running deploy again. Production contexts ask for confirmation
unless --yes or --non-interactive is given.`,
		Example: `  # Deploy to a local devnet
  l2deploy deploy -n anvil

  # Deploy with an explicit deploy config and plan
  l2deploy deploy -n sepolia --deploy-config deploy-config/sepolia.toml --plan plan.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			deployer, err := app.InitDeployer(cmd.Context(), a)
			if err != nil {
				return err
			}

			report, err := deployer.RunDeployment.Run(cmd.Context(), usecase.RunDeploymentParams{Yes: yes})
			if errors.Is(err, usecase.ErrDeclined) {
				fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning("Deployment cancelled"))
				return nil
			}

			if report != nil {
				if a.Config.JSON {
					if jsonErr := render.JSON(cmd.OutOrStdout(), report); jsonErr != nil {
						return jsonErr
					}
				} else if len(report.Steps) > 0 || err == nil {
					if renderErr := render.NewReportRenderer(cmd.OutOrStdout()).Render(report); renderErr != nil {
						return renderErr
					}
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the production confirmation")

	return cmd
}
