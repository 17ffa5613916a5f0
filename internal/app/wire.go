//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/l2deploy/internal/adapters"
	"github.com/trebuchet-org/l2deploy/internal/adapters/registry"
	"github.com/trebuchet-org/l2deploy/internal/config"
	"github.com/trebuchet-org/l2deploy/internal/logging"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(ctx context.Context, v *viper.Viper) (*App, error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.ReadSet,
		adapters.InteractiveSet,

		// Use cases
		usecase.NewListAddresses,
		usecase.NewCheckStatus,
		usecase.NewShowPlan,

		NewApp,
	)
	return nil, nil
}

// InitDeployer wires the signing use cases on top of an App
func InitDeployer(ctx context.Context, a *App) (*Deployer, error) {
	wire.Build(
		wire.FieldsOf(new(*App), "Config", "Log", "Registry", "Plan", "Progress", "Confirmer"),
		wire.Bind(new(usecase.AddressRegistry), new(*registry.FileRegistry)),

		adapters.LedgerSet,

		usecase.NewVerifier,
		usecase.NewParameterResolver,
		usecase.NewUnitDeployer,
		usecase.NewRegisterExtension,
		usecase.NewReconcileDeployment,
		usecase.NewRunDeployment,

		NewDeployer,
	)
	return nil, nil
}
