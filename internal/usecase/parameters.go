package usecase

import (
	"context"
	"fmt"
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

var referencePattern = regexp.MustCompile(`^\$\{([a-z_]+)(?::([^}]+))?\}$`)

// ParamEnv is what ${...} references in plan arguments resolve against
type ParamEnv struct {
	FinalOwner common.Address
	Signer     common.Address
	StartBlock uint64
	ImplSalt   common.Hash
	Params     map[string]any

	// Only set while registering extensions
	Prestate *common.Hash
	GameType *uint32
}

// WithExtension returns a copy of env carrying an extension's prestate and type tag
func (env ParamEnv) WithExtension(prestate common.Hash, gameType uint32) ParamEnv {
	env.Prestate = &prestate
	env.GameType = &gameType
	return env
}

// ParameterResolver expands ${...} references in plan arguments. A string
// argument is a reference only when the whole string is one; anything else
// is passed through as a literal.
type ParameterResolver struct {
	registry AddressRegistry
}

// NewParameterResolver creates a new ParameterResolver
func NewParameterResolver(registry AddressRegistry) *ParameterResolver {
	return &ParameterResolver{registry: registry}
}

// Resolve expands every reference in args, descending into nested lists
func (r *ParameterResolver) Resolve(ctx context.Context, env ParamEnv, args []any) ([]any, error) {
	resolved := make([]any, len(args))
	for i, arg := range args {
		v, err := r.ResolveValue(ctx, env, arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		resolved[i] = v
	}
	return resolved, nil
}

// ResolveValue expands a single plan value
func (r *ParameterResolver) ResolveValue(ctx context.Context, env ParamEnv, value any) (any, error) {
	switch v := value.(type) {
	case []any:
		return r.Resolve(ctx, env, v)
	case string:
		return r.resolveString(ctx, env, v)
	default:
		return value, nil
	}
}

func (r *ParameterResolver) resolveString(ctx context.Context, env ParamEnv, s string) (any, error) {
	m := referencePattern.FindStringSubmatch(s)
	if m == nil {
		return s, nil
	}
	kind, key := m[1], m[2]

	switch kind {
	case "addr":
		if key == "" {
			return nil, fmt.Errorf("reference %s needs a unit name", s)
		}
		return r.registry.Get(ctx, key)
	case "cfg":
		v, ok := env.Params[key]
		if !ok {
			return nil, fmt.Errorf("reference %s: parameter %q is not set (known: %v)", s, key, lo.Keys(env.Params))
		}
		return v, nil
	case "final_owner":
		return env.FinalOwner, nil
	case "signer":
		return env.Signer, nil
	case "start_block":
		return env.StartBlock, nil
	case "impl_salt":
		return env.ImplSalt, nil
	case "prestate":
		if env.Prestate == nil {
			return nil, fmt.Errorf("reference %s is only available to extension units", s)
		}
		return *env.Prestate, nil
	case "game_type":
		if env.GameType == nil {
			return nil, fmt.Errorf("reference %s is only available to extension units", s)
		}
		return *env.GameType, nil
	default:
		return nil, fmt.Errorf("unknown reference %s", s)
	}
}
