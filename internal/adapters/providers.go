package adapters

import (
	"context"
	"log/slog"

	"github.com/google/wire"
	"github.com/trebuchet-org/l2deploy/internal/adapters/abi"
	"github.com/trebuchet-org/l2deploy/internal/adapters/artifacts"
	"github.com/trebuchet-org/l2deploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/l2deploy/internal/adapters/interactive"
	"github.com/trebuchet-org/l2deploy/internal/adapters/ledger"
	"github.com/trebuchet-org/l2deploy/internal/adapters/prestate"
	"github.com/trebuchet-org/l2deploy/internal/adapters/progress"
	"github.com/trebuchet-org/l2deploy/internal/adapters/proxy"
	"github.com/trebuchet-org/l2deploy/internal/adapters/registry"
	internalconfig "github.com/trebuchet-org/l2deploy/internal/config"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// ProvideScope connects to the selected network, records its chain ID on
// the runtime config and returns the registry scope. Without a network the
// scope has chain 0 and registry reads fail with usecase.ErrNoNetwork.
func ProvideScope(ctx context.Context, cfg *config.RuntimeConfig, checker *blockchain.CheckerAdapter) (models.Scope, error) {
	scope := models.Scope{Namespace: cfg.Namespace}
	if cfg.Network == nil {
		return scope, nil
	}

	chainID, err := checker.Connect(ctx, cfg.Network)
	if err != nil {
		return models.Scope{}, err
	}
	cfg.Network.ChainID = chainID
	scope.ChainID = chainID
	return scope, nil
}

// ProvideRegistry opens the address registry of scope
func ProvideRegistry(cfg *config.RuntimeConfig, scope models.Scope, log *slog.Logger) (*registry.FileRegistry, error) {
	return registry.NewFileRegistry(cfg.DataDir, scope, log)
}

// ProvideProgress picks the spinner for interactive terminals
func ProvideProgress(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.JSON {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerProgressReporter()
}

// ProvideKeyring loads the configured private keys
func ProvideKeyring(cfg *config.RuntimeConfig) (*ledger.Keyring, error) {
	return ledger.NewKeyring(cfg.PrivateKeys)
}

// ProvideLedger dials the selected network with the configured keys
func ProvideLedger(ctx context.Context, cfg *config.RuntimeConfig, keys *ledger.Keyring, log *slog.Logger) (*ledger.Client, error) {
	return ledger.Dial(ctx, cfg.Network, keys, log)
}

// ReadSet provides everything read-only commands need. None of it holds keys.
var ReadSet = wire.NewSet(
	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.CodeChecker), new(*blockchain.CheckerAdapter)),

	ProvideScope,
	ProvideRegistry,
	wire.Bind(new(usecase.AddressRegistry), new(*registry.FileRegistry)),

	internalconfig.NewPlanLoader,
	wire.Bind(new(usecase.PlanSource), new(*internalconfig.PlanLoader)),

	ProvideProgress,
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.AddressSelector), new(*interactive.SelectorAdapter)),

	interactive.NewConfirmAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.ConfirmAdapter)),
)

// LedgerSet provides the signing ledger client and the adapters that
// deploy through it
var LedgerSet = wire.NewSet(
	ProvideKeyring,
	ProvideLedger,
	wire.Bind(new(usecase.LedgerClient), new(*ledger.Client)),

	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactSource), new(*artifacts.Repository)),

	abi.NewEncoder,
	wire.Bind(new(usecase.ArgEncoder), new(*abi.Encoder)),

	proxy.NewController,
	wire.Bind(new(usecase.ProxyController), new(*proxy.Controller)),

	prestate.NewProvider,
	wire.Bind(new(usecase.PrestateProvider), new(*prestate.Provider)),
)
