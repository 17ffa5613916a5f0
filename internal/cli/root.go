package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/l2deploy/internal/app"
	"github.com/trebuchet-org/l2deploy/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// skipsApp lists commands that run without a project
var skipsApp = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "l2deploy",
		Short: "Idempotent deployer for OP Stack L1 contracts",
		Long: `l2deploy converges a chain on a deployment plan: controllers, proxies,
implementations, initialization and ownership, plus dispute game registration
outside production. Every run verifies what it writes and is safe to repeat.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsApp[cmd.Name()] {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot)
			config.BindFlags(v, cmd)

			// Bound the connection attempt as well as the command itself
			ctx := cmd.Context()
			if timeout := v.GetDuration("timeout"); timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			appInstance, err := app.InitApp(ctx, v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(ctx, appKey, appInstance))
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringP("namespace", "s", "", "Registry namespace (defaults to 'default')")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from foundry.toml [rpc_endpoints]")
	rootCmd.PersistentFlags().String("deploy-config", "", "Deploy config file (defaults to deploy-config/<network>.toml)")
	rootCmd.PersistentFlags().String("plan", "", "Deployment plan, .toml or .yaml (defaults to the built-in OP Stack plan)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Overall command timeout (defaults to 30m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "registry",
		Title: "Registry Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	planCmd := NewPlanCmd()
	planCmd.GroupID = "main"
	rootCmd.AddCommand(planCmd)

	addressesCmd := NewAddressesCmd()
	addressesCmd.GroupID = "registry"
	rootCmd.AddCommand(addressesCmd)

	statusCmd := NewStatusCmd()
	statusCmd.GroupID = "registry"
	rootCmd.AddCommand(statusCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
