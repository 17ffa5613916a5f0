package proxy

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/bindings"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/test/chainfake"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

type fixture struct {
	chain *chainfake.Chain
	ctrl  models.Controllers
	c     *Controller
	impl  common.Address
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	chain := chainfake.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	am, err := chain.DeployContract(chainfake.Deployer, "AddressManager")
	require.NoError(t, err)
	pa, err := chain.DeployContract(chainfake.Deployer, "ProxyAdmin", chainfake.Deployer)
	require.NoError(t, err)
	impl, err := chain.DeployContract(chainfake.Deployer, "L1CrossDomainMessenger")
	require.NoError(t, err)

	require.NoError(t, usecase.Transact(ctx, chain, chainfake.Deployer, pa, bindings.NewProxyAdmin().PackSetAddressManager(am)))
	require.NoError(t, usecase.Transact(ctx, chain, chainfake.Deployer, am, bindings.NewAddressManager().PackTransferOwnership(pa)))

	return &fixture{
		chain: chain,
		ctrl:  models.Controllers{ProxyAdmin: pa, AddressManager: am},
		c:     NewController(chain, usecase.NewVerifier(log), log),
		impl:  impl,
	}
}

func (f *fixture) deploy(t *testing.T, spec models.ProxySpec) models.ProxyBinding {
	t.Helper()
	unit := f.c.ForwarderUnit(spec, f.ctrl)
	args := make([]any, len(unit.ConstructorArgs))
	for i, a := range unit.ConstructorArgs {
		if a == "${signer}" {
			a = chainfake.Deployer
		}
		args[i] = a
	}
	addr, err := f.chain.DeployContract(chainfake.Deployer, unit.Artifact, args...)
	require.NoError(t, err)
	return spec.Binding(addr)
}

func (f *fixture) initializeData(t *testing.T) []byte {
	t.Helper()
	contract, err := f.chain.GetContract(context.Background(), "L1CrossDomainMessenger")
	require.NoError(t, err)
	parsed, err := contract.ABI()
	require.NoError(t, err)
	data, err := parsed.Pack("initialize", common.HexToAddress("0x00000000000000000000000000000000000000aa"))
	require.NoError(t, err)
	return data
}

func (f *fixture) portal(t *testing.T, proxy common.Address) common.Address {
	t.Helper()
	contract, err := f.chain.GetContract(context.Background(), "L1CrossDomainMessenger")
	require.NoError(t, err)
	parsed, err := contract.ABI()
	require.NoError(t, err)
	data, err := parsed.Pack("portal")
	require.NoError(t, err)
	out, err := f.chain.View(context.Background(), proxy, data)
	require.NoError(t, err)
	return common.BytesToAddress(out)
}

func TestController_ForwarderUnit(t *testing.T) {
	c := NewController(chainfake.New(), usecase.NewVerifier(slog.New(slog.NewTextHandler(io.Discard, nil))), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctrl := models.Controllers{
		ProxyAdmin:     common.HexToAddress("0x00000000000000000000000000000000000000a1"),
		AddressManager: common.HexToAddress("0x00000000000000000000000000000000000000a2"),
	}

	tests := []struct {
		spec     models.ProxySpec
		artifact string
		args     []any
	}{
		{models.ProxySpec{Name: "SystemConfigProxy"}, "Proxy", []any{ctrl.ProxyAdmin}},
		{models.ProxySpec{Name: "L1StandardBridgeProxy", Kind: models.ProxyKindChugSplash}, "L1ChugSplashProxy", []any{"${signer}"}},
		{models.ProxySpec{Name: "L1CrossDomainMessengerProxy", Kind: models.ProxyKindResolved, ResolvedName: "OVM_L1CrossDomainMessenger"}, "ResolvedDelegateProxy", []any{ctrl.AddressManager, "OVM_L1CrossDomainMessenger"}},
	}
	for _, tt := range tests {
		t.Run(tt.spec.Kind.String(), func(t *testing.T) {
			unit := c.ForwarderUnit(tt.spec, ctrl)
			assert.Equal(t, tt.spec.Name, unit.Name)
			assert.Equal(t, tt.artifact, unit.Artifact)
			assert.Equal(t, tt.args, unit.ConstructorArgs)
			assert.False(t, unit.IsDeterministic())
		})
	}
}

func TestController_ERC1967(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	proxy := f.deploy(t, models.ProxySpec{Name: "Proxy1"})

	admin, err := f.c.Admin(ctx, f.ctrl, proxy)
	require.NoError(t, err)
	assert.Equal(t, f.ctrl.ProxyAdmin, admin)

	before := f.chain.Mutations()
	changed, err := f.c.EnsureAdmin(ctx, f.ctrl, proxy, f.ctrl.ProxyAdmin)
	require.NoError(t, err)
	assert.False(t, changed)
	changed, err = f.c.EnsureKind(ctx, f.ctrl, proxy)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, f.chain.Mutations())

	require.NoError(t, f.c.UpgradeAndInitialize(ctx, f.ctrl, proxy, f.impl, f.initializeData(t)))

	current, err := f.c.Implementation(ctx, f.ctrl, proxy.Address)
	require.NoError(t, err)
	assert.Equal(t, f.impl, current)
	assert.Equal(t, common.HexToAddress("0xaa"), f.portal(t, proxy.Address))
	assert.Equal(t, "upgradeAndCall", f.chain.Methods()[len(f.chain.Methods())-1])
}

func TestController_ChugSplash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	proxy := f.deploy(t, models.ProxySpec{Name: "L1StandardBridgeProxy", Kind: models.ProxyKindChugSplash})

	admin, err := f.c.Admin(ctx, f.ctrl, proxy)
	require.NoError(t, err)
	assert.Equal(t, chainfake.Deployer, admin)

	changed, err := f.c.EnsureAdmin(ctx, f.ctrl, proxy, f.ctrl.ProxyAdmin)
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = f.c.EnsureAdmin(ctx, f.ctrl, proxy, f.ctrl.ProxyAdmin)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = f.c.EnsureKind(ctx, f.ctrl, proxy)
	require.NoError(t, err)
	assert.True(t, changed)
	kind, err := f.c.Kind(ctx, f.ctrl, proxy.Address)
	require.NoError(t, err)
	assert.Equal(t, models.ProxyKindChugSplash, kind)

	require.NoError(t, f.c.UpgradeAndInitialize(ctx, f.ctrl, proxy, f.impl, f.initializeData(t)))
	methods := f.chain.Methods()
	assert.Equal(t, []string{"upgrade", "initialize"}, methods[len(methods)-2:])
	assert.Equal(t, common.HexToAddress("0xaa"), f.portal(t, proxy.Address))
}

func TestController_InitializeAfterBareUpgrade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	proxy := f.deploy(t, models.ProxySpec{Name: "L1StandardBridgeProxy", Kind: models.ProxyKindChugSplash})
	_, err := f.c.EnsureAdmin(ctx, f.ctrl, proxy, f.ctrl.ProxyAdmin)
	require.NoError(t, err)
	_, err = f.c.EnsureKind(ctx, f.ctrl, proxy)
	require.NoError(t, err)

	f.chain.Interrupt(proxy.Address)
	err = f.c.UpgradeAndInitialize(ctx, f.ctrl, proxy, f.impl, f.initializeData(t))
	require.ErrorContains(t, err, "interrupted")
	impl, err := f.c.Implementation(ctx, f.ctrl, proxy.Address)
	require.NoError(t, err)
	assert.Equal(t, f.impl, impl)
	assert.Equal(t, common.Address{}, f.portal(t, proxy.Address))

	require.NoError(t, f.c.Initialize(ctx, proxy, f.initializeData(t)))
	assert.Equal(t, common.HexToAddress("0xaa"), f.portal(t, proxy.Address))

	erc1967 := f.deploy(t, models.ProxySpec{Name: "Proxy1"})
	assert.ErrorContains(t, f.c.Initialize(ctx, erc1967, f.initializeData(t)), "upgradeAndCall")
}

func TestController_Resolved(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	proxy := f.deploy(t, models.ProxySpec{
		Name:         "L1CrossDomainMessengerProxy",
		Kind:         models.ProxyKindResolved,
		ResolvedName: "OVM_L1CrossDomainMessenger",
	})

	admin, err := f.c.Admin(ctx, f.ctrl, proxy)
	require.NoError(t, err)
	assert.Equal(t, f.ctrl.ProxyAdmin, admin, "resolved proxies are administered by the address manager owner")

	changed, err := f.c.EnsureKind(ctx, f.ctrl, proxy)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Subset(t, f.chain.Methods(), []string{"setProxyType", "setImplementationName"})

	before := f.chain.Mutations()
	changed, err = f.c.EnsureKind(ctx, f.ctrl, proxy)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, f.chain.Mutations())

	require.NoError(t, f.c.UpgradeAndInitialize(ctx, f.ctrl, proxy, f.impl, f.initializeData(t)))
	current, err := f.c.Implementation(ctx, f.ctrl, proxy.Address)
	require.NoError(t, err)
	assert.Equal(t, f.impl, current)
	assert.Equal(t, common.HexToAddress("0xaa"), f.portal(t, proxy.Address))
}

func TestController_ResolvedForeignManager(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	foreign, err := f.chain.DeployContract(chainfake.Deployer, "AddressManager")
	require.NoError(t, err)
	addr, err := f.chain.DeployContract(chainfake.Deployer, "ResolvedDelegateProxy", foreign, "OVM_L1CrossDomainMessenger")
	require.NoError(t, err)
	proxy := models.ProxyBinding{Name: "Messenger", Address: addr, Kind: models.ProxyKindResolved, ResolvedName: "OVM_L1CrossDomainMessenger"}

	_, err = f.c.Admin(ctx, f.ctrl, proxy)
	var violation *domain.InvariantViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "addressManager", violation.Failures[0].Field)
}

func TestController_EnsureKindRecordedMismatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	proxy := f.deploy(t, models.ProxySpec{Name: "Bridge", Kind: models.ProxyKindChugSplash})
	_, err := f.c.EnsureKind(ctx, f.ctrl, proxy)
	require.NoError(t, err)

	before := f.chain.Mutations()
	proxy.Kind = models.ProxyKindResolved
	proxy.ResolvedName = "Bridge"
	_, err = f.c.EnsureKind(ctx, f.ctrl, proxy)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.Equal(t, before, f.chain.Mutations(), "a kind mismatch must not write")
}

func TestController_WriteWithoutEffect(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	proxy := f.deploy(t, models.ProxySpec{Name: "Bridge", Kind: models.ProxyKindChugSplash})
	f.chain.Swallow("setProxyType")

	_, err := f.c.EnsureKind(ctx, f.ctrl, proxy)
	var violation *domain.InvariantViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "Bridge", violation.Unit)
	assert.Equal(t, "proxyType", violation.Failures[0].Field)
	assert.Equal(t, "chugsplash", violation.Failures[0].Expected)
}

func TestController_AdminNotSignable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	stranger := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	addr, err := f.chain.DeployContract(chainfake.Deployer, "Proxy", stranger)
	require.NoError(t, err)

	_, err = f.c.EnsureAdmin(ctx, f.ctrl, models.ProxyBinding{Name: "Orphan", Address: addr}, f.ctrl.ProxyAdmin)
	assert.ErrorIs(t, err, domain.ErrNoSigner)
}
