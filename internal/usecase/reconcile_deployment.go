package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/bindings"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
)

// ReconcileDeployment converges the ledger on a plan. Phases run strictly
// in order; the first failure aborts the run and re-running is always safe.
type ReconcileDeployment struct {
	registry  AddressRegistry
	ledger    LedgerClient
	proxies   ProxyController
	units     *UnitDeployer
	encoder   ArgEncoder
	verifier  *Verifier
	registrar *RegisterExtension
	progress  ProgressSink
	log       *slog.Logger

	proxyAdmin *bindings.ProxyAdmin
	ownable    *bindings.Ownable
}

// NewReconcileDeployment creates a new ReconcileDeployment
func NewReconcileDeployment(
	registry AddressRegistry,
	ledger LedgerClient,
	proxies ProxyController,
	units *UnitDeployer,
	encoder ArgEncoder,
	verifier *Verifier,
	registrar *RegisterExtension,
	progress ProgressSink,
	log *slog.Logger,
) *ReconcileDeployment {
	return &ReconcileDeployment{
		registry:   registry,
		ledger:     ledger,
		proxies:    proxies,
		units:      units,
		encoder:    encoder,
		verifier:   verifier,
		registrar:  registrar,
		progress:   progress,
		log:        log.With("component", "reconciler"),
		proxyAdmin: bindings.NewProxyAdmin(),
		ownable:    bindings.NewOwnable(),
	}
}

// Session carries one run's plan, resolved parameters and report
type Session struct {
	Plan   *models.Plan
	Config *config.DeployConfig
	Env    ParamEnv
	Report *models.Report
}

func (s *Session) record(phase models.Phase, unit, field string, action models.Action, addr common.Address, detail string) {
	s.Report.Add(models.StepResult{Phase: phase, Unit: unit, Field: field, Action: action, Address: addr, Detail: detail})
}

// NewSession validates the inputs of a run and resolves its parameters
func (r *ReconcileDeployment) NewSession(ctx context.Context, plan *models.Plan, cfg *config.DeployConfig) (*Session, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPlan, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deploy config: %w", err)
	}
	finalOwner, err := cfg.FinalOwnerAddress()
	if err != nil {
		return nil, err
	}

	var startBlock uint64
	if cfg.StartBlock != nil {
		startBlock = *cfg.StartBlock
	} else if startBlock, err = r.ledger.BlockNumber(ctx); err != nil {
		return nil, fmt.Errorf("failed to read start block: %w", err)
	}

	chainID, err := r.ledger.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	return &Session{
		Plan:   plan,
		Config: cfg,
		Env: ParamEnv{
			FinalOwner: finalOwner,
			Signer:     r.ledger.Signer(),
			StartBlock: startBlock,
			ImplSalt:   cfg.ImplSaltHash(),
			Params:     cfg.Params,
		},
		Report: &models.Report{
			ChainID:   chainID,
			Namespace: r.registry.Scope().Namespace,
			Signer:    r.ledger.Signer(),
			StartedAt: time.Now(),
		},
	}, nil
}

// Run executes every phase in order
func (r *ReconcileDeployment) Run(ctx context.Context, s *Session) (*models.Report, error) {
	phases := []struct {
		phase models.Phase
		run   func(context.Context, *Session) error
	}{
		{models.PhaseControllers, r.ProvisionControllers},
		{models.PhaseProxies, r.ProvisionProxies},
		{models.PhaseImplementations, r.ProvisionImplementations},
		{models.PhaseInitialize, r.Initialize},
		{models.PhaseAuthority, r.FinalizeAuthority},
		{models.PhaseExtensions, r.RegisterExtensions},
	}

	defer func() { s.Report.Duration = time.Since(s.Report.StartedAt) }()
	for i, p := range phases {
		r.progress.OnProgress(ctx, ProgressEvent{
			Stage:   p.phase.String(),
			Current: i + 1,
			Total:   len(phases),
			Message: fmt.Sprintf("Reconciling %s", p.phase),
			Spinner: true,
		})
		if err := p.run(ctx, s); err != nil {
			r.progress.Error(fmt.Sprintf("%s failed", p.phase))
			return s.Report, fmt.Errorf("phase %s: %w", p.phase, err)
		}
	}
	r.progress.Info(fmt.Sprintf("Done: %d mutating steps", s.Report.Mutations()))
	return s.Report, nil
}

// ProvisionControllers ensures the address manager and proxy admin, points
// the proxy admin at the address manager and hands the address manager to
// the proxy admin.
func (r *ReconcileDeployment) ProvisionControllers(ctx context.Context, s *Session) error {
	plan := s.Plan
	am, err := r.units.Ensure(ctx, plan.Controllers.AddressManager, s.Env)
	if err != nil {
		return err
	}
	s.record(models.PhaseControllers, plan.Controllers.AddressManager.Name, "", am.Action, am.Address, "")

	pa, err := r.units.Ensure(ctx, plan.Controllers.ProxyAdmin, s.Env)
	if err != nil {
		return err
	}
	s.record(models.PhaseControllers, plan.Controllers.ProxyAdmin.Name, "", pa.Action, pa.Address, "")

	paName := plan.Controllers.ProxyAdmin.Name
	link := Step{
		Unit:  paName,
		Field: "addressManager",
		Read: func(ctx context.Context) (models.Value, error) {
			out, err := r.ledger.View(ctx, pa.Address, r.proxyAdmin.PackAddressManager())
			if err != nil {
				return models.Value{}, err
			}
			addr, err := r.proxyAdmin.UnpackAddressManager(out)
			if err != nil {
				return models.Value{}, err
			}
			return models.AddressValue(addr), nil
		},
		Desired: models.AddressValue(am.Address),
		Write: func(ctx context.Context) error {
			owner, err := r.ownerOf(ctx, pa.Address)
			if err != nil {
				return err
			}
			return Transact(ctx, r.ledger, owner, pa.Address, r.proxyAdmin.PackSetAddressManager(am.Address))
		},
	}
	if err := r.apply(ctx, s, models.PhaseControllers, link, pa.Address); err != nil {
		return err
	}

	return r.apply(ctx, s, models.PhaseControllers, r.ownerStep(plan.Controllers.AddressManager.Name, am.Address, pa.Address), am.Address)
}

// ProvisionProxies deploys each forwarding unit that is not yet recorded and
// hands it to the proxy admin
func (r *ReconcileDeployment) ProvisionProxies(ctx context.Context, s *Session) error {
	ctrl, err := r.controllers(ctx, s.Plan)
	if err != nil {
		return err
	}

	for _, spec := range s.Plan.Proxies {
		forwarder, err := r.units.Ensure(ctx, r.proxies.ForwarderUnit(spec, ctrl), s.Env)
		if err != nil {
			return err
		}
		s.record(models.PhaseProxies, spec.Name, "", forwarder.Action, forwarder.Address, spec.Kind.String())

		changed, err := r.proxies.EnsureAdmin(ctx, ctrl, spec.Binding(forwarder.Address), ctrl.ProxyAdmin)
		if err != nil {
			return fmt.Errorf("proxy %s: %w", spec.Name, err)
		}
		if changed {
			s.record(models.PhaseProxies, spec.Name, "admin", models.ActionUpdated, ctrl.ProxyAdmin, "")
		}
	}
	return nil
}

// ProvisionImplementations runs the unit step template for every implementation
func (r *ReconcileDeployment) ProvisionImplementations(ctx context.Context, s *Session) error {
	for _, unit := range s.Plan.Implementations {
		deployed, err := r.units.Ensure(ctx, unit, s.Env)
		if err != nil {
			return err
		}
		s.record(models.PhaseImplementations, unit.Name, "", deployed.Action, deployed.Address, "")
	}
	return nil
}

// Initialize types each proxy, upgrades it to its implementation when the
// pointer differs and verifies the pointer and every check
func (r *ReconcileDeployment) Initialize(ctx context.Context, s *Session) error {
	ctrl, err := r.controllers(ctx, s.Plan)
	if err != nil {
		return err
	}

	for _, spec := range s.Plan.Proxies {
		if err := r.initialize(ctx, s, ctrl, spec); err != nil {
			return fmt.Errorf("proxy %s: %w", spec.Name, err)
		}
	}
	return nil
}

func (r *ReconcileDeployment) initialize(ctx context.Context, s *Session, ctrl models.Controllers, spec models.ProxySpec) error {
	proxyAddr, err := r.registry.Get(ctx, spec.Name)
	if err != nil {
		return err
	}
	implAddr, err := r.registry.Get(ctx, spec.Implementation)
	if err != nil {
		return err
	}
	binding := spec.Binding(proxyAddr)

	changed, err := r.proxies.EnsureKind(ctx, ctrl, binding)
	if err != nil {
		return err
	}
	if changed {
		s.record(models.PhaseInitialize, spec.Name, "kind", models.ActionUpdated, proxyAddr, spec.Kind.String())
	}

	admin, err := r.proxies.Admin(ctx, ctrl, binding)
	if err != nil {
		return err
	}
	if admin != ctrl.ProxyAdmin {
		return domain.NewInvariantViolation(spec.Name, domain.Mismatch{
			Field:    "admin",
			Expected: ctrl.ProxyAdmin.Hex(),
			Observed: admin.Hex(),
		})
	}

	implUnit := r.implementation(s.Plan, spec.Implementation)
	contract, err := r.units.artifacts.GetContract(ctx, implUnit.ArtifactName())
	if err != nil {
		return err
	}

	var data []byte
	if spec.Initializer != "" {
		parsed, err := contract.ABI()
		if err != nil {
			return err
		}
		args, err := r.units.params.Resolve(ctx, s.Env, spec.Args)
		if err != nil {
			return err
		}
		if data, err = r.encoder.Call(parsed, spec.Initializer, args); err != nil {
			return err
		}
	}
	checks, err := r.units.Checks(ctx, spec.Name, contract, proxyAddr, spec.Checks, s.Env)
	if err != nil {
		return err
	}

	current, err := r.proxies.Implementation(ctx, ctrl, proxyAddr)
	if err != nil {
		return err
	}
	switch {
	case current != implAddr:
		if err := r.proxies.UpgradeAndInitialize(ctx, ctrl, binding, implAddr, data); err != nil {
			return err
		}
		s.record(models.PhaseInitialize, spec.Name, "implementation", models.ActionUpdated, implAddr, spec.Implementation)
	case spec.Kind.Legacy() && len(data) > 0 && len(r.verifier.Mismatches(ctx, checks...)) > 0:
		// a legacy upgrade landed without its initializer
		r.log.Warn("implementation set but checks fail, resending initializer", "proxy", spec.Name, "initializer", spec.Initializer)
		s.record(models.PhaseInitialize, spec.Name, "implementation", models.ActionUnchanged, implAddr, spec.Implementation)
		if err := r.proxies.Initialize(ctx, binding, data); err != nil {
			return err
		}
		s.record(models.PhaseInitialize, spec.Name, "initializer", models.ActionUpdated, proxyAddr, spec.Initializer)
	default:
		s.record(models.PhaseInitialize, spec.Name, "implementation", models.ActionUnchanged, implAddr, spec.Implementation)
	}

	conds := []Postcondition{{
		Field: "implementation",
		Observe: func(ctx context.Context) (models.Value, error) {
			impl, err := r.proxies.Implementation(ctx, ctrl, proxyAddr)
			if err != nil {
				return models.Value{}, err
			}
			return models.AddressValue(impl), nil
		},
		Want: models.AddressValue(implAddr),
	}}
	return r.verifier.Verify(ctx, spec.Name, append(conds, checks...)...)
}

// FinalizeAuthority transfers every owned entity to the final owner
func (r *ReconcileDeployment) FinalizeAuthority(ctx context.Context, s *Session) error {
	for _, name := range s.Plan.Owned {
		addr, err := r.registry.Get(ctx, name)
		if err != nil {
			return err
		}
		if err := r.apply(ctx, s, models.PhaseAuthority, r.ownerStep(name, addr, s.Env.FinalOwner), addr); err != nil {
			return err
		}
	}
	return nil
}

// RegisterExtensions binds the plan's extensions. Production contexts never
// register extensions.
func (r *ReconcileDeployment) RegisterExtensions(ctx context.Context, s *Session) error {
	if s.Config.Environment.IsProduction() {
		r.log.Info("skipping extensions in production")
		s.record(models.PhaseExtensions, "", "", models.ActionSkipped, common.Address{}, "production")
		return nil
	}
	if len(s.Plan.Extensions) == 0 {
		return nil
	}
	return r.registrar.Execute(ctx, s)
}

// apply runs step and records its outcome
func (r *ReconcileDeployment) apply(ctx context.Context, s *Session, phase models.Phase, step Step, addr common.Address) error {
	changed, err := step.Apply(ctx, r.verifier)
	if err != nil {
		return err
	}
	action := models.ActionUnchanged
	if changed {
		action = models.ActionUpdated
	}
	s.record(phase, step.Unit, step.Field, action, addr, step.Desired.String())
	return nil
}

// ownerStep reconciles owner() of target, sending from the current owner
func (r *ReconcileDeployment) ownerStep(unit string, target, owner common.Address) Step {
	return Step{
		Unit:  unit,
		Field: "owner",
		Read: func(ctx context.Context) (models.Value, error) {
			current, err := r.ownerOf(ctx, target)
			if err != nil {
				return models.Value{}, err
			}
			return models.AddressValue(current), nil
		},
		Desired: models.AddressValue(owner),
		Write: func(ctx context.Context) error {
			current, err := r.ownerOf(ctx, target)
			if err != nil {
				return err
			}
			return Transact(ctx, r.ledger, current, target, r.ownable.PackTransferOwnership(owner))
		},
	}
}

func (r *ReconcileDeployment) ownerOf(ctx context.Context, target common.Address) (common.Address, error) {
	out, err := r.ledger.View(ctx, target, r.ownable.PackOwner())
	if err != nil {
		return common.Address{}, err
	}
	return r.ownable.UnpackOwner(out)
}

// controllers reads the controller addresses recorded by the first phase
func (r *ReconcileDeployment) controllers(ctx context.Context, plan *models.Plan) (models.Controllers, error) {
	pa, err := r.registry.Get(ctx, plan.Controllers.ProxyAdmin.Name)
	if err != nil {
		return models.Controllers{}, err
	}
	am, err := r.registry.Get(ctx, plan.Controllers.AddressManager.Name)
	if err != nil {
		return models.Controllers{}, err
	}
	return models.Controllers{ProxyAdmin: pa, AddressManager: am}, nil
}

func (r *ReconcileDeployment) implementation(plan *models.Plan, name string) models.Unit {
	for _, u := range plan.Implementations {
		if u.Name == name {
			return u
		}
	}
	return models.Unit{Name: name}
}
