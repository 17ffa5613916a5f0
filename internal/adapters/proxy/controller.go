package proxy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/bindings"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

var (
	// AdminSlot is the EIP-1967 admin slot. L1ChugSplashProxy keeps its owner there too.
	AdminSlot = common.HexToHash("0xb53127684a568b3173ae13b9f8a6016e243e63b6e8ee1178d6a717850b5d6103")

	// resolvedManagerSlot is the storage index of ResolvedDelegateProxy.addressManager
	resolvedManagerSlot = common.BigToHash(common.Big1)
)

// Artifact names of the forwarding units
const (
	ERC1967Artifact    = "Proxy"
	ChugSplashArtifact = "L1ChugSplashProxy"
	ResolvedArtifact   = "ResolvedDelegateProxy"
)

// Controller drives the three forwarding unit kinds through the proxy admin
type Controller struct {
	ledger   usecase.LedgerClient
	verifier *usecase.Verifier
	log      *slog.Logger

	proxyAdmin     *bindings.ProxyAdmin
	addressManager *bindings.AddressManager
	erc1967        *bindings.Proxy
	chugsplash     *bindings.L1ChugSplashProxy
}

// NewController creates a new Controller
func NewController(ledger usecase.LedgerClient, verifier *usecase.Verifier, log *slog.Logger) *Controller {
	return &Controller{
		ledger:         ledger,
		verifier:       verifier,
		log:            log.With("component", "proxy"),
		proxyAdmin:     bindings.NewProxyAdmin(),
		addressManager: bindings.NewAddressManager(),
		erc1967:        bindings.NewProxy(),
		chugsplash:     bindings.NewL1ChugSplashProxy(),
	}
}

// ForwarderUnit returns the unit deploying spec's forwarding contract.
// ERC-1967 proxies are born administered by the proxy admin, ChugSplash
// proxies by the signer until EnsureAdmin hands them over, and resolved
// proxies through the address manager.
func (c *Controller) ForwarderUnit(spec models.ProxySpec, ctrl models.Controllers) models.Unit {
	unit := models.Unit{Name: spec.Name, Deterministic: new(bool)}
	switch spec.Kind {
	case models.ProxyKindChugSplash:
		unit.Artifact = ChugSplashArtifact
		unit.ConstructorArgs = []any{"${signer}"}
	case models.ProxyKindResolved:
		unit.Artifact = ResolvedArtifact
		unit.ConstructorArgs = []any{ctrl.AddressManager, spec.ResolvedName}
	default:
		unit.Artifact = ERC1967Artifact
		unit.ConstructorArgs = []any{ctrl.ProxyAdmin}
	}
	return unit
}

// Kind reads the kind the proxy admin has on record for proxy
func (c *Controller) Kind(ctx context.Context, ctrl models.Controllers, proxy common.Address) (models.ProxyKind, error) {
	out, err := c.ledger.View(ctx, ctrl.ProxyAdmin, c.proxyAdmin.PackProxyType(proxy))
	if err != nil {
		return 0, err
	}
	kind, err := c.proxyAdmin.UnpackProxyType(out)
	if err != nil {
		return 0, fmt.Errorf("failed to decode proxyType: %w", err)
	}
	return models.ProxyKind(kind), nil
}

// Implementation reads the implementation the proxy admin sees behind proxy
func (c *Controller) Implementation(ctx context.Context, ctrl models.Controllers, proxy common.Address) (common.Address, error) {
	out, err := c.ledger.View(ctx, ctrl.ProxyAdmin, c.proxyAdmin.PackGetProxyImplementation(proxy))
	if err != nil {
		return common.Address{}, err
	}
	return c.proxyAdmin.UnpackGetProxyImplementation(out)
}

// Admin reads the current administrator of proxy. For the resolved kind
// this is the owner of the address manager the proxy resolves through,
// which must be the plan's address manager.
func (c *Controller) Admin(ctx context.Context, ctrl models.Controllers, proxy models.ProxyBinding) (common.Address, error) {
	if proxy.Kind != models.ProxyKindResolved {
		word, err := c.ledger.StorageAt(ctx, proxy.Address, AdminSlot)
		if err != nil {
			return common.Address{}, err
		}
		return common.BytesToAddress(word.Bytes()), nil
	}

	manager, err := c.resolvedManager(ctx, proxy.Address)
	if err != nil {
		return common.Address{}, err
	}
	if manager != ctrl.AddressManager {
		return common.Address{}, domain.NewInvariantViolation(proxy.Name, domain.Mismatch{
			Field:    "addressManager",
			Expected: ctrl.AddressManager.Hex(),
			Observed: manager.Hex(),
		})
	}
	return c.owner(ctx, manager)
}

func (c *Controller) resolvedManager(ctx context.Context, proxy common.Address) (common.Address, error) {
	slot := crypto.Keccak256Hash(common.LeftPadBytes(proxy.Bytes(), 32), resolvedManagerSlot.Bytes())
	word, err := c.ledger.StorageAt(ctx, proxy, slot)
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(word.Bytes()), nil
}

func (c *Controller) owner(ctx context.Context, target common.Address) (common.Address, error) {
	out, err := c.ledger.View(ctx, target, c.addressManager.PackOwner())
	if err != nil {
		return common.Address{}, err
	}
	return c.addressManager.UnpackOwner(out)
}

// EnsureKind makes the proxy admin's record of proxy match its kind. A
// proxy the admin has never typed reads as ERC-1967; any other recorded
// kind that differs from the binding is fatal.
func (c *Controller) EnsureKind(ctx context.Context, ctrl models.Controllers, proxy models.ProxyBinding) (bool, error) {
	current, err := c.Kind(ctx, ctrl, proxy.Address)
	if err != nil {
		return false, fmt.Errorf("failed to read kind of %s: %w", proxy.Name, err)
	}
	if current != proxy.Kind && current != models.ProxyKindERC1967 {
		return false, domain.NewInvariantViolation(proxy.Name, domain.Mismatch{
			Field:    "proxyType",
			Expected: proxy.Kind.String(),
			Observed: current.String(),
		})
	}

	kindStep := usecase.Step{
		Unit:  proxy.Name,
		Field: "proxyType",
		Read: func(ctx context.Context) (models.Value, error) {
			kind, err := c.Kind(ctx, ctrl, proxy.Address)
			if err != nil {
				return models.Value{}, err
			}
			return kindValue(kind), nil
		},
		Desired: kindValue(proxy.Kind),
		Write: func(ctx context.Context) error {
			return c.fromAdminOwner(ctx, ctrl, c.proxyAdmin.PackSetProxyType(proxy.Address, uint8(proxy.Kind)))
		},
	}
	changed, err := kindStep.Apply(ctx, c.verifier)
	if err != nil || proxy.Kind != models.ProxyKindResolved {
		return changed, err
	}

	nameStep := usecase.Step{
		Unit:  proxy.Name,
		Field: "implementationName",
		Read: func(ctx context.Context) (models.Value, error) {
			out, err := c.ledger.View(ctx, ctrl.ProxyAdmin, c.proxyAdmin.PackImplementationName(proxy.Address))
			if err != nil {
				return models.Value{}, err
			}
			name, err := c.proxyAdmin.UnpackImplementationName(out)
			if err != nil {
				return models.Value{}, err
			}
			return models.StringValue(name), nil
		},
		Desired: models.StringValue(proxy.ResolvedName),
		Write: func(ctx context.Context) error {
			return c.fromAdminOwner(ctx, ctrl, c.proxyAdmin.PackSetImplementationName(proxy.Address, proxy.ResolvedName))
		},
	}
	nameChanged, err := nameStep.Apply(ctx, c.verifier)
	return changed || nameChanged, err
}

// EnsureAdmin hands proxy over to admin, sending from whoever administers it now
func (c *Controller) EnsureAdmin(ctx context.Context, ctrl models.Controllers, proxy models.ProxyBinding, admin common.Address) (bool, error) {
	step := usecase.Step{
		Unit:  proxy.Name,
		Field: "admin",
		Read: func(ctx context.Context) (models.Value, error) {
			current, err := c.Admin(ctx, ctrl, proxy)
			if err != nil {
				return models.Value{}, err
			}
			return models.AddressValue(current), nil
		},
		Desired: models.AddressValue(admin),
		Write: func(ctx context.Context) error {
			current, err := c.Admin(ctx, ctrl, proxy)
			if err != nil {
				return err
			}
			return c.changeAdmin(ctx, ctrl, proxy, current, admin)
		},
	}
	return step.Apply(ctx, c.verifier)
}

func (c *Controller) changeAdmin(ctx context.Context, ctrl models.Controllers, proxy models.ProxyBinding, current, admin common.Address) error {
	if proxy.Kind == models.ProxyKindResolved {
		c.log.Info("transferring address manager", "proxy", proxy.Name, "from", current.Hex(), "to", admin.Hex())
		return usecase.Transact(ctx, c.ledger, current, ctrl.AddressManager, c.addressManager.PackTransferOwnership(admin))
	}

	if current == ctrl.ProxyAdmin {
		return c.fromAdminOwner(ctx, ctrl, c.proxyAdmin.PackChangeProxyAdmin(proxy.Address, admin))
	}

	var data []byte
	if proxy.Kind == models.ProxyKindChugSplash {
		data = c.chugsplash.PackSetOwner(admin)
	} else {
		data = c.erc1967.PackChangeAdmin(admin)
	}
	c.log.Info("changing proxy admin", "proxy", proxy.Name, "from", current.Hex(), "to", admin.Hex())
	return usecase.Transact(ctx, c.ledger, current, proxy.Address, data)
}

// UpgradeAndInitialize points proxy at impl and runs data against it. ERC-1967
// proxies do both in one upgradeAndCall; legacy kinds are upgraded first and
// then called directly by the signer. Empty data means a plain upgrade.
func (c *Controller) UpgradeAndInitialize(ctx context.Context, ctrl models.Controllers, proxy models.ProxyBinding, impl common.Address, data []byte) error {
	c.log.Info("upgrading", "proxy", proxy.Name, "kind", proxy.Kind.String(), "implementation", impl.Hex())

	if proxy.Kind == models.ProxyKindERC1967 && len(data) > 0 {
		return c.fromAdminOwner(ctx, ctrl, c.proxyAdmin.PackUpgradeAndCall(proxy.Address, impl, data))
	}
	if err := c.fromAdminOwner(ctx, ctrl, c.proxyAdmin.PackUpgrade(proxy.Address, impl)); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return c.Initialize(ctx, proxy, data)
}

// Initialize sends data into a legacy proxy from the signer. It is the second
// half of a legacy upgrade and is resent when that half never landed.
func (c *Controller) Initialize(ctx context.Context, proxy models.ProxyBinding, data []byte) error {
	if !proxy.Kind.Legacy() {
		return fmt.Errorf("proxy %s: %s proxies are initialized through upgradeAndCall", proxy.Name, proxy.Kind)
	}
	c.log.Info("initializing", "proxy", proxy.Name, "kind", proxy.Kind.String())
	return usecase.Transact(ctx, c.ledger, c.ledger.Signer(), proxy.Address, data)
}

// fromAdminOwner sends data to the proxy admin from its owner
func (c *Controller) fromAdminOwner(ctx context.Context, ctrl models.Controllers, data []byte) error {
	out, err := c.ledger.View(ctx, ctrl.ProxyAdmin, c.proxyAdmin.PackOwner())
	if err != nil {
		return fmt.Errorf("failed to read proxy admin owner: %w", err)
	}
	owner, err := c.proxyAdmin.UnpackOwner(out)
	if err != nil {
		return fmt.Errorf("failed to decode proxy admin owner: %w", err)
	}
	return usecase.Transact(ctx, c.ledger, owner, ctrl.ProxyAdmin, data)
}

func kindValue(k models.ProxyKind) models.Value {
	v := models.UintValue(uint64(k))
	v.Text = k.String()
	return v
}

var _ usecase.ProxyController = (*Controller)(nil)
