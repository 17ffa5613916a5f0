package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/l2deploy/internal/cli/render"
)

// NewAddressesCmd creates the addresses command
func NewAddressesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "addresses",
		Aliases: []string{"ls"},
		Short:   "List recorded addresses",
		Long:    "List every address the registry records for the selected network and namespace.",
		Example: `  l2deploy addresses -n sepolia
  l2deploy addresses -n sepolia --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListAddresses.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.JSON(cmd.OutOrStdout(), result)
			}
			return render.NewAddressesRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.AddCommand(newAddressGetCmd())

	return cmd
}

func newAddressGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print one recorded address",
		Long: `Print the address recorded under name. Inexact names are matched fuzzily;
when several entries match you are asked to pick one.`,
		Example: `  l2deploy addresses get OptimismPortalProxy -n sepolia
  l2deploy addresses get portalproxy -n sepolia`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			entry, err := app.ListAddresses.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.JSON(cmd.OutOrStdout(), entry)
			}
			return render.NewAddressesRenderer(cmd.OutOrStdout()).RenderEntry(entry)
		},
	}
}
