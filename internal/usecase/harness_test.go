package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	abiadapter "github.com/trebuchet-org/l2deploy/internal/adapters/abi"
	"github.com/trebuchet-org/l2deploy/internal/adapters/proxy"
	"github.com/trebuchet-org/l2deploy/internal/adapters/registry"
	"github.com/trebuchet-org/l2deploy/internal/domain/bindings"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/test/chainfake"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

var (
	finalOwner = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	prestate   = common.HexToHash("0x03b7eaa4e3cbce90381921a4b48008f4769871d64f93d113fcadca08ecee503b")
)

// mockPrestate is a PrestateProvider with a func field
type mockPrestate struct {
	PrestateFunc func(ctx context.Context) (common.Hash, error)
	calls        int
}

func (m *mockPrestate) Prestate(ctx context.Context) (common.Hash, error) {
	m.calls++
	if m.PrestateFunc != nil {
		return m.PrestateFunc(ctx)
	}
	return prestate, nil
}

// harness wires the reconciler the way the app does, over the in-memory chain
type harness struct {
	t          *testing.T
	chain      *chainfake.Chain
	dir        string
	registry   *registry.FileRegistry
	prestate   *mockPrestate
	units      *usecase.UnitDeployer
	reconciler *usecase.ReconcileDeployment
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return reopen(t, chainfake.New(finalOwner), t.TempDir())
}

// reopen builds a fresh reconciler over chain with the registry file in dir,
// as a second process would
func reopen(t *testing.T, chain *chainfake.Chain, dir string) *harness {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	reg, err := registry.NewFileRegistry(dir, models.Scope{ChainID: chainfake.ChainID, Namespace: "default"}, log)
	require.NoError(t, err)

	verifier := usecase.NewVerifier(log)
	encoder := abiadapter.NewEncoder()
	params := usecase.NewParameterResolver(reg)
	units := usecase.NewUnitDeployer(reg, chain, chain, encoder, params, verifier, log)
	prestateProvider := &mockPrestate{}
	registrar := usecase.NewRegisterExtension(reg, chain, units, verifier, prestateProvider, log)
	controller := proxy.NewController(chain, verifier, log)

	return &harness{
		t:          t,
		chain:      chain,
		dir:        dir,
		registry:   reg,
		prestate:   prestateProvider,
		units:      units,
		reconciler: usecase.NewReconcileDeployment(reg, chain, controller, units, encoder, verifier, registrar, usecase.NopProgress{}, log),
	}
}

func (h *harness) reopen() *harness {
	return reopen(h.t, h.chain, h.dir)
}

func (h *harness) session(plan *models.Plan, cfg *config.DeployConfig) *usecase.Session {
	h.t.Helper()
	s, err := h.reconciler.NewSession(context.Background(), plan, cfg)
	require.NoError(h.t, err)
	return s
}

func (h *harness) run(plan *models.Plan, cfg *config.DeployConfig) (*models.Report, error) {
	h.t.Helper()
	return h.reconciler.Run(context.Background(), h.session(plan, cfg))
}

func (h *harness) addr(name string) common.Address {
	h.t.Helper()
	a, err := h.registry.Get(context.Background(), name)
	require.NoError(h.t, err)
	return a
}

func (h *harness) owner(target common.Address) common.Address {
	h.t.Helper()
	ownable := bindings.NewOwnable()
	out, err := h.chain.View(context.Background(), target, ownable.PackOwner())
	require.NoError(h.t, err)
	owner, err := ownable.UnpackOwner(out)
	require.NoError(h.t, err)
	return owner
}

func (h *harness) gameImpl(factory common.Address, gameType uint32) common.Address {
	h.t.Helper()
	dgf := bindings.NewDisputeGameFactory()
	out, err := h.chain.View(context.Background(), factory, dgf.PackGameImpls(gameType))
	require.NoError(h.t, err)
	impl, err := dgf.UnpackGameImpls(out)
	require.NoError(h.t, err)
	return impl
}

// view calls a getter of the named fake contract on target
func (h *harness) view(contract string, target common.Address, method string, args ...any) []any {
	h.t.Helper()
	c, err := h.chain.GetContract(context.Background(), contract)
	require.NoError(h.t, err)
	parsed, err := c.ABI()
	require.NoError(h.t, err)
	data, err := parsed.Pack(method, args...)
	require.NoError(h.t, err)
	out, err := h.chain.View(context.Background(), target, data)
	require.NoError(h.t, err)
	values, err := parsed.Unpack(method, out)
	require.NoError(h.t, err)
	return values
}

func deployConfig() *config.DeployConfig {
	return &config.DeployConfig{
		FinalOwner:  finalOwner.Hex(),
		Environment: config.EnvironmentDevnet,
		ImplSalt:    "l2deploy-test",
		Prestate:    config.PrestateConfig{Value: prestate.Hex()},
	}
}

func notDeterministic() *bool {
	f := false
	return &f
}

func controllers(proxyAdmin string) models.ControllerUnits {
	return models.ControllerUnits{
		AddressManager: models.Unit{Name: "AddressManager", Deterministic: notDeterministic()},
		ProxyAdmin: models.Unit{
			Name:            proxyAdmin,
			Artifact:        "ProxyAdmin",
			ConstructorArgs: []any{"${signer}"},
			Fresh:           []models.Check{{Call: "owner", Expect: "${signer}"}},
		},
	}
}

// opStackPlan is a small OP-Stack style plan covering all three proxy kinds,
// ownership handover and one fault game extension
func opStackPlan() *models.Plan {
	return &models.Plan{
		Controllers: controllers("ProxyAdmin"),
		Implementations: []models.Unit{
			{Name: "SystemConfig"},
			{Name: "OptimismPortal"},
			{Name: "L1CrossDomainMessenger"},
			{Name: "L1StandardBridge"},
			{Name: "DisputeGameFactory"},
		},
		Proxies: []models.ProxySpec{
			{
				Name:           "SystemConfigProxy",
				Implementation: "SystemConfig",
				Initializer:    "initialize",
				Args:           []any{"${signer}", 30_000_000},
				Checks:         []models.Check{{Call: "gasLimit", Expect: 30_000_000}},
			},
			{
				Name:           "OptimismPortalProxy",
				Implementation: "OptimismPortal",
				Initializer:    "initialize",
				Args:           []any{"${addr:SystemConfigProxy}"},
				Checks:         []models.Check{{Call: "systemConfig", Expect: "${addr:SystemConfigProxy}"}},
			},
			{
				Name:           "L1CrossDomainMessengerProxy",
				Kind:           models.ProxyKindResolved,
				ResolvedName:   "OVM_L1CrossDomainMessenger",
				Implementation: "L1CrossDomainMessenger",
				Initializer:    "initialize",
				Args:           []any{"${addr:OptimismPortalProxy}"},
				Checks:         []models.Check{{Call: "portal", Expect: "${addr:OptimismPortalProxy}"}},
			},
			{
				Name:           "L1StandardBridgeProxy",
				Kind:           models.ProxyKindChugSplash,
				Implementation: "L1StandardBridge",
				Initializer:    "initialize",
				Args:           []any{"${addr:L1CrossDomainMessengerProxy}"},
				Checks:         []models.Check{{Call: "messenger", Expect: "${addr:L1CrossDomainMessengerProxy}"}},
			},
			{
				Name:           "DisputeGameFactoryProxy",
				Implementation: "DisputeGameFactory",
				Initializer:    "initialize",
				Args:           []any{"${signer}"},
			},
		},
		Owned: []string{"SystemConfigProxy", "DisputeGameFactoryProxy", "ProxyAdmin"},
		Extensions: []models.ExtensionSpec{{
			Registry: "DisputeGameFactoryProxy",
			GameType: 0,
			Implementation: models.Unit{
				Name:            "FaultDisputeGame",
				ConstructorArgs: []any{"${game_type}", "${prestate}", 73},
			},
			InitBond: "80_000_000_000_000_000",
			Checks: []models.Check{
				{Call: "absolutePrestate", Expect: "${prestate}"},
				{Call: "gameType", Expect: "${game_type}"},
			},
		}},
	}
}
