package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
)

// DeployedUnit is the outcome of ensuring one unit
type DeployedUnit struct {
	Address  common.Address
	Action   models.Action
	Contract *models.Contract
}

// UnitDeployer is the step template every deployable unit goes through:
// resolve its arguments, deploy it unless it already exists, require code,
// check its freshly constructed state and record it.
type UnitDeployer struct {
	registry  AddressRegistry
	ledger    LedgerClient
	artifacts ArtifactSource
	encoder   ArgEncoder
	params    *ParameterResolver
	verifier  *Verifier
	log       *slog.Logger
}

// NewUnitDeployer creates a new UnitDeployer
func NewUnitDeployer(
	registry AddressRegistry,
	ledger LedgerClient,
	artifacts ArtifactSource,
	encoder ArgEncoder,
	params *ParameterResolver,
	verifier *Verifier,
	log *slog.Logger,
) *UnitDeployer {
	return &UnitDeployer{
		registry:  registry,
		ledger:    ledger,
		artifacts: artifacts,
		encoder:   encoder,
		params:    params,
		verifier:  verifier,
		log:       log.With("component", "deployer"),
	}
}

// UnitSalt returns the CREATE2 salt of a deterministic unit
func UnitSalt(unit models.Unit, implSalt common.Hash) (common.Hash, error) {
	if unit.Salt == "" {
		return crypto.Keccak256Hash(implSalt.Bytes(), []byte(unit.Name)), nil
	}
	b := common.FromHex(unit.Salt)
	if len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("salt of %s must be 32 bytes", unit.Name)
	}
	return common.BytesToHash(b), nil
}

// Ensure makes sure unit exists on the ledger and in the registry
func (d *UnitDeployer) Ensure(ctx context.Context, unit models.Unit, env ParamEnv) (*DeployedUnit, error) {
	contract, err := d.artifacts.GetContract(ctx, unit.ArtifactName())
	if err != nil {
		return nil, fmt.Errorf("unit %s: %w", unit.Name, err)
	}
	initcode, err := d.initcode(ctx, unit, contract, env)
	if err != nil {
		return nil, fmt.Errorf("unit %s: %w", unit.Name, err)
	}

	var salt *common.Hash
	if unit.IsDeterministic() {
		s, err := UnitSalt(unit, env.ImplSalt)
		if err != nil {
			return nil, err
		}
		salt = &s
	}

	if recorded, ok := d.registry.Lookup(ctx, unit.Name); ok {
		if salt != nil {
			if predicted := d.ledger.PredictAddress(initcode, *salt); predicted != recorded {
				return nil, &domain.ConflictError{Name: unit.Name, Existing: recorded.Hex(), Attempted: predicted.Hex()}
			}
		}
		if err := d.verifier.Verify(ctx, unit.Name, d.codeAt(recorded)); err != nil {
			return nil, err
		}
		d.log.Debug("unit already recorded", "unit", unit.Name, "address", recorded.Hex())
		return &DeployedUnit{Address: recorded, Action: models.ActionUnchanged, Contract: contract}, nil
	}

	action := models.ActionDeployed
	var addr common.Address
	if salt != nil {
		addr = d.ledger.PredictAddress(initcode, *salt)
		code, err := d.ledger.CodeAt(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("unit %s: failed to read code: %w", unit.Name, err)
		}
		if len(code) > 0 {
			action = models.ActionAdopted
			d.log.Info("adopting existing deployment", "unit", unit.Name, "address", addr.Hex())
		}
	}

	if action == models.ActionDeployed {
		err := d.ledger.Broadcast(ctx, d.ledger.Signer(), func(b Broadcaster) error {
			deployed, err := b.Deploy(ctx, initcode, salt)
			if err != nil {
				return err
			}
			if salt != nil && deployed != addr {
				return fmt.Errorf("deployed at %s, predicted %s", deployed.Hex(), addr.Hex())
			}
			addr = deployed
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to deploy %s: %w", unit.Name, err)
		}
		d.log.Info("deployed", "unit", unit.Name, "address", addr.Hex(), "deterministic", salt != nil)
	}

	conds := []Postcondition{d.codeAt(addr)}
	fresh, err := d.Checks(ctx, unit.Name, contract, addr, unit.Fresh, env)
	if err != nil {
		return nil, err
	}
	if err := d.verifier.Verify(ctx, unit.Name, append(conds, fresh...)...); err != nil {
		return nil, err
	}

	// an unsalted unit that is mined but never recorded is orphaned; the
	// "deployed" log line above is the only trace of its address
	if err := d.registry.Put(ctx, unit.Name, addr); err != nil {
		return nil, err
	}
	return &DeployedUnit{Address: addr, Action: action, Contract: contract}, nil
}

func (d *UnitDeployer) initcode(ctx context.Context, unit models.Unit, contract *models.Contract, env ParamEnv) ([]byte, error) {
	code, err := contract.Code()
	if err != nil {
		return nil, err
	}
	parsed, err := contract.ABI()
	if err != nil {
		return nil, err
	}
	args, err := d.params.Resolve(ctx, env, unit.ConstructorArgs)
	if err != nil {
		return nil, err
	}
	encoded, err := d.encoder.Constructor(parsed, args)
	if err != nil {
		return nil, err
	}
	return append(code, encoded...), nil
}

func (d *UnitDeployer) codeAt(addr common.Address) Postcondition {
	return Postcondition{
		Field: "code",
		Observe: func(ctx context.Context) (models.Value, error) {
			code, err := d.ledger.CodeAt(ctx, addr)
			if err != nil {
				return models.Value{}, err
			}
			return models.BoolValue(len(code) > 0), nil
		},
		Want: models.CodePresent,
	}
}

// Checks turns plan checks against the contract at addr into postconditions.
// The contract's interface is used even when addr is a proxy in front of it.
func (d *UnitDeployer) Checks(ctx context.Context, unit string, contract *models.Contract, addr common.Address, checks []models.Check, env ParamEnv) ([]Postcondition, error) {
	if len(checks) == 0 {
		return nil, nil
	}
	parsed, err := contract.ABI()
	if err != nil {
		return nil, err
	}

	conds := make([]Postcondition, 0, len(checks))
	for _, check := range checks {
		cond, err := d.check(ctx, parsed, addr, check, env)
		if err != nil {
			return nil, fmt.Errorf("unit %s: check %s: %w", unit, check.Call, err)
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

func (d *UnitDeployer) check(ctx context.Context, parsed *abi.ABI, addr common.Address, check models.Check, env ParamEnv) (Postcondition, error) {
	args, err := d.params.Resolve(ctx, env, check.Args)
	if err != nil {
		return Postcondition{}, err
	}
	calldata, err := d.encoder.Call(parsed, check.Call, args)
	if err != nil {
		return Postcondition{}, err
	}
	expect, err := d.params.ResolveValue(ctx, env, check.Expect)
	if err != nil {
		return Postcondition{}, err
	}
	want, err := d.encoder.Result(parsed, check.Call, expect)
	if err != nil {
		return Postcondition{}, err
	}

	return Postcondition{
		Field: check.Call,
		Observe: func(ctx context.Context) (models.Value, error) {
			out, err := d.ledger.View(ctx, addr, calldata)
			if err != nil {
				return models.Value{}, err
			}
			return d.encoder.Decode(parsed, check.Call, out)
		},
		Want: want,
	}, nil
}
