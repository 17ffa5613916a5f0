package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/bindings"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
)

// RegisterExtension binds implementations to type tags of a factory. A tag
// that is already bound is never written again.
type RegisterExtension struct {
	registry AddressRegistry
	ledger   LedgerClient
	units    *UnitDeployer
	verifier *Verifier
	prestate PrestateProvider
	log      *slog.Logger

	factory *bindings.DisputeGameFactory
}

// NewRegisterExtension creates a new RegisterExtension
func NewRegisterExtension(
	registry AddressRegistry,
	ledger LedgerClient,
	units *UnitDeployer,
	verifier *Verifier,
	prestate PrestateProvider,
	log *slog.Logger,
) *RegisterExtension {
	return &RegisterExtension{
		registry: registry,
		ledger:   ledger,
		units:    units,
		verifier: verifier,
		prestate: prestate,
		log:      log.With("component", "extensions"),
		factory:  bindings.NewDisputeGameFactory(),
	}
}

var errSkipExtensions = errors.New("extensions skipped")

// Execute registers every extension of the session's plan
func (r *RegisterExtension) Execute(ctx context.Context, s *Session) error {
	var prestate *common.Hash
	fingerprint := func(ctx context.Context) (common.Hash, error) {
		if prestate != nil {
			return *prestate, nil
		}
		h, err := r.fingerprint(ctx, s)
		if err != nil {
			return common.Hash{}, err
		}
		prestate = &h
		return h, nil
	}

	for _, ext := range s.Plan.Extensions {
		err := r.register(ctx, s, ext, fingerprint)
		if errors.Is(err, errSkipExtensions) {
			s.record(models.PhaseExtensions, ext.Implementation.Name, "", models.ActionSkipped, common.Address{}, "prestate unavailable")
			return nil
		}
		if err != nil {
			return fmt.Errorf("extension %s/%d: %w", ext.Registry, ext.GameType, err)
		}
	}
	return nil
}

func (r *RegisterExtension) register(ctx context.Context, s *Session, ext models.ExtensionSpec, fingerprint func(context.Context) (common.Hash, error)) error {
	factoryAddr, err := r.registry.Get(ctx, ext.Registry)
	if err != nil {
		return err
	}

	bound, err := r.gameImpl(ctx, factoryAddr, ext.GameType)
	if err != nil {
		return err
	}
	if bound != (common.Address{}) {
		r.log.Warn("game type already bound, leaving it untouched", "registry", ext.Registry, "gameType", ext.GameType, "implementation", bound.Hex())
		s.record(models.PhaseExtensions, ext.Implementation.Name, "gameImpls", models.ActionSkipped, bound, fmt.Sprintf("game type %d already bound", ext.GameType))
		return nil
	}

	prestate, err := fingerprint(ctx)
	if err != nil {
		return err
	}
	env := s.Env.WithExtension(prestate, ext.GameType)

	impl, err := r.units.Ensure(ctx, ext.Implementation, env)
	if err != nil {
		return err
	}
	s.record(models.PhaseExtensions, ext.Implementation.Name, "", impl.Action, impl.Address, "")

	owner, err := r.factoryOwner(ctx, factoryAddr)
	if err != nil {
		return err
	}
	if err := Transact(ctx, r.ledger, owner, factoryAddr, r.factory.PackSetImplementation(ext.GameType, impl.Address)); err != nil {
		return fmt.Errorf("failed to bind game type %d: %w", ext.GameType, err)
	}
	r.log.Info("registered extension", "registry", ext.Registry, "gameType", ext.GameType, "implementation", impl.Address.Hex(), "prestate", prestate.Hex())

	conds := []Postcondition{{
		Field: fmt.Sprintf("gameImpls(%d)", ext.GameType),
		Observe: func(ctx context.Context) (models.Value, error) {
			addr, err := r.gameImpl(ctx, factoryAddr, ext.GameType)
			if err != nil {
				return models.Value{}, err
			}
			return models.AddressValue(addr), nil
		},
		Want: models.AddressValue(impl.Address),
	}}
	checks, err := r.units.Checks(ctx, ext.Implementation.Name, impl.Contract, impl.Address, ext.Checks, env)
	if err != nil {
		return err
	}
	if err := r.verifier.Verify(ctx, ext.Registry, append(conds, checks...)...); err != nil {
		return err
	}
	s.record(models.PhaseExtensions, ext.Registry, fmt.Sprintf("gameImpls(%d)", ext.GameType), models.ActionRegistered, impl.Address, prestate.Hex())

	if ext.InitBond == "" {
		return nil
	}
	return r.ensureInitBond(ctx, s, ext, factoryAddr)
}

func (r *RegisterExtension) ensureInitBond(ctx context.Context, s *Session, ext models.ExtensionSpec, factoryAddr common.Address) error {
	bond, ok := new(big.Int).SetString(strings.ReplaceAll(ext.InitBond, "_", ""), 0)
	if !ok || bond.Sign() < 0 {
		return fmt.Errorf("init_bond %q is not a non-negative integer", ext.InitBond)
	}

	step := Step{
		Unit:  ext.Registry,
		Field: fmt.Sprintf("initBonds(%d)", ext.GameType),
		Read: func(ctx context.Context) (models.Value, error) {
			out, err := r.ledger.View(ctx, factoryAddr, r.factory.PackInitBonds(ext.GameType))
			if err != nil {
				return models.Value{}, err
			}
			current, err := r.factory.UnpackInitBonds(out)
			if err != nil {
				return models.Value{}, err
			}
			return models.BigValue(current), nil
		},
		Desired: models.BigValue(bond),
		Write: func(ctx context.Context) error {
			owner, err := r.factoryOwner(ctx, factoryAddr)
			if err != nil {
				return err
			}
			return Transact(ctx, r.ledger, owner, factoryAddr, r.factory.PackSetInitBond(ext.GameType, bond))
		},
	}
	changed, err := step.Apply(ctx, r.verifier)
	if err != nil {
		return err
	}
	action := models.ActionUnchanged
	if changed {
		action = models.ActionUpdated
	}
	s.record(models.PhaseExtensions, ext.Registry, step.Field, action, factoryAddr, bond.String())
	return nil
}

// fingerprint resolves the absolute prestate. Restricted contexts always
// ask the provider and treat any failure as fatal; elsewhere a configured
// value wins and provider failures may skip the phase.
func (r *RegisterExtension) fingerprint(ctx context.Context, s *Session) (common.Hash, error) {
	cfg := s.Config
	if !cfg.Restricted {
		configured, err := cfg.PrestateValue()
		if err != nil {
			return common.Hash{}, err
		}
		if configured != nil {
			return *configured, nil
		}
	}

	prestate, err := r.prestate.Prestate(ctx)
	if err == nil && prestate == (common.Hash{}) {
		err = &domain.ExternalProviderError{Source: "prestate", Err: errors.New("zero prestate")}
	}
	if err == nil {
		return prestate, nil
	}

	if !cfg.Restricted && cfg.SkipExtensionsOnProviderError {
		r.log.Warn("prestate unavailable, skipping extensions", "error", err)
		return common.Hash{}, errSkipExtensions
	}
	return common.Hash{}, err
}

func (r *RegisterExtension) gameImpl(ctx context.Context, factory common.Address, gameType uint32) (common.Address, error) {
	out, err := r.ledger.View(ctx, factory, r.factory.PackGameImpls(gameType))
	if err != nil {
		return common.Address{}, err
	}
	return r.factory.UnpackGameImpls(out)
}

func (r *RegisterExtension) factoryOwner(ctx context.Context, factory common.Address) (common.Address, error) {
	out, err := r.ledger.View(ctx, factory, r.factory.PackOwner())
	if err != nil {
		return common.Address{}, err
	}
	return r.factory.UnpackOwner(out)
}
