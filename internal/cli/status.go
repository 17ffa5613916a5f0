package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/l2deploy/internal/cli/render"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check recorded addresses against the chain and the plan",
		Long: `Check that every recorded address still carries code and list the plan
units a deploy would still create. Needs no private key and never writes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CheckStatus.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.JSON(cmd.OutOrStdout(), result)
			}
			return render.NewStatusRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
