package models

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ProxyKind is the closed set of forwarding unit kinds. Values match the
// on-chain ProxyAdmin.ProxyType enum.
type ProxyKind uint8

const (
	ProxyKindERC1967    ProxyKind = 0
	ProxyKindChugSplash ProxyKind = 1
	ProxyKindResolved   ProxyKind = 2
)

func (k ProxyKind) String() string {
	switch k {
	case ProxyKindERC1967:
		return "erc1967"
	case ProxyKindChugSplash:
		return "chugsplash"
	case ProxyKindResolved:
		return "resolved"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Legacy reports whether upgrades of this kind need a separate initializer call
func (k ProxyKind) Legacy() bool {
	return k == ProxyKindChugSplash || k == ProxyKindResolved
}

// ParseProxyKind parses a plan kind name
func ParseProxyKind(s string) (ProxyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "erc1967", "transparent":
		return ProxyKindERC1967, nil
	case "chugsplash", "legacy":
		return ProxyKindChugSplash, nil
	case "resolved":
		return ProxyKindResolved, nil
	default:
		return 0, fmt.Errorf("unknown proxy kind %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (k ProxyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *ProxyKind) UnmarshalText(text []byte) error {
	parsed, err := ParseProxyKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Check is an expected-state predicate declared in a plan: calling Call with
// Args on the target must return Expect.
type Check struct {
	Call   string `toml:"call" yaml:"call" json:"call"`
	Args   []any  `toml:"args,omitempty" yaml:"args,omitempty" json:"args,omitempty"`
	Expect any    `toml:"expect" yaml:"expect" json:"expect"`
}

// Unit is a deployable code body with a stable logical name
type Unit struct {
	Name            string  `toml:"name" yaml:"name" json:"name"`
	Artifact        string  `toml:"artifact,omitempty" yaml:"artifact,omitempty" json:"artifact,omitempty"`
	ConstructorArgs []any   `toml:"args,omitempty" yaml:"args,omitempty" json:"args,omitempty"`
	Deterministic   *bool   `toml:"deterministic,omitempty" yaml:"deterministic,omitempty" json:"deterministic,omitempty"`
	Salt            string  `toml:"salt,omitempty" yaml:"salt,omitempty" json:"salt,omitempty"`
	Fresh           []Check `toml:"fresh,omitempty" yaml:"fresh,omitempty" json:"fresh,omitempty"`
}

// ArtifactName returns the artifact to load for this unit
func (u Unit) ArtifactName() string {
	if u.Artifact != "" {
		return u.Artifact
	}
	return u.Name
}

// IsDeterministic reports whether the unit is deployed through salted CREATE2.
// Units are deterministic unless the plan says otherwise.
func (u Unit) IsDeterministic() bool {
	return u.Deterministic == nil || *u.Deterministic
}

// ProxySpec declares a forwarding unit and the implementation it fronts
type ProxySpec struct {
	Name           string    `toml:"name" yaml:"name" json:"name"`
	Kind           ProxyKind `toml:"kind" yaml:"kind" json:"kind"`
	Implementation string    `toml:"implementation" yaml:"implementation" json:"implementation"`
	ResolvedName   string    `toml:"resolved_name,omitempty" yaml:"resolved_name,omitempty" json:"resolvedName,omitempty"`
	Initializer    string    `toml:"initializer,omitempty" yaml:"initializer,omitempty" json:"initializer,omitempty"`
	Args           []any     `toml:"args,omitempty" yaml:"args,omitempty" json:"args,omitempty"`
	Checks         []Check   `toml:"check,omitempty" yaml:"check,omitempty" json:"check,omitempty"`
}

// Binding returns the proxy binding for a deployed forwarding unit
func (p ProxySpec) Binding(addr common.Address) ProxyBinding {
	return ProxyBinding{Name: p.Name, Address: addr, Kind: p.Kind, ResolvedName: p.ResolvedName}
}

// ProxyBinding is a deployed forwarding unit
type ProxyBinding struct {
	Name         string
	Address      common.Address
	Kind         ProxyKind
	Admin        common.Address
	ResolvedName string
}

// Controllers are the addresses every proxy operation is routed through
type Controllers struct {
	ProxyAdmin     common.Address
	AddressManager common.Address
}

// ControllerUnits declares the two controller units of a plan
type ControllerUnits struct {
	AddressManager Unit `toml:"address_manager" yaml:"address_manager" json:"addressManager"`
	ProxyAdmin     Unit `toml:"proxy_admin" yaml:"proxy_admin" json:"proxyAdmin"`
}

// ExtensionSpec binds an implementation to a typed slot of a factory-like registry
type ExtensionSpec struct {
	Registry       string  `toml:"registry" yaml:"registry" json:"registry"`
	GameType       uint32  `toml:"game_type" yaml:"game_type" json:"gameType"`
	Implementation Unit    `toml:"implementation" yaml:"implementation" json:"implementation"`
	InitBond       string  `toml:"init_bond,omitempty" yaml:"init_bond,omitempty" json:"initBond,omitempty"`
	Checks         []Check `toml:"check,omitempty" yaml:"check,omitempty" json:"check,omitempty"`
}

// Plan is the data-driven description of the system to converge on
type Plan struct {
	Controllers     ControllerUnits `toml:"controllers" yaml:"controllers" json:"controllers"`
	Implementations []Unit          `toml:"implementation" yaml:"implementations" json:"implementations"`
	Proxies         []ProxySpec     `toml:"proxy" yaml:"proxies" json:"proxies"`
	Owned           []string        `toml:"owned" yaml:"owned" json:"owned"`
	Extensions      []ExtensionSpec `toml:"extension" yaml:"extensions" json:"extensions"`
}

// Validate checks names are unique and references point at declared units
func (p *Plan) Validate() error {
	am, pa := p.Controllers.AddressManager.Name, p.Controllers.ProxyAdmin.Name
	if am == "" || pa == "" {
		return fmt.Errorf("controllers.address_manager and controllers.proxy_admin need a name")
	}
	if am == pa {
		return fmt.Errorf("controllers share the name %s", am)
	}

	seen := map[string]bool{am: true, pa: true}
	impls := make(map[string]bool)
	for _, u := range p.Implementations {
		if u.Name == "" {
			return fmt.Errorf("implementation without name")
		}
		if seen[u.Name] {
			return fmt.Errorf("duplicate unit name %s", u.Name)
		}
		seen[u.Name] = true
		impls[u.Name] = true
	}
	for _, px := range p.Proxies {
		if px.Name == "" {
			return fmt.Errorf("proxy without name")
		}
		if seen[px.Name] {
			return fmt.Errorf("duplicate unit name %s", px.Name)
		}
		seen[px.Name] = true
		if !impls[px.Implementation] {
			return fmt.Errorf("proxy %s references undeclared implementation %q", px.Name, px.Implementation)
		}
		if px.Kind == ProxyKindResolved && px.ResolvedName == "" {
			return fmt.Errorf("proxy %s is resolved but has no resolved_name", px.Name)
		}
		if px.Kind != ProxyKindResolved && px.ResolvedName != "" {
			return fmt.Errorf("proxy %s sets resolved_name but is %s", px.Name, px.Kind)
		}
		// the initializer of a legacy kind is its own transaction; only the
		// checks tell whether it landed after the upgrade did
		if px.Kind.Legacy() && px.Initializer != "" && len(px.Checks) == 0 {
			return fmt.Errorf("proxy %s is %s with an initializer and needs at least one check", px.Name, px.Kind)
		}
	}
	for _, name := range p.Owned {
		if !seen[name] {
			return fmt.Errorf("owned entity %q is not a declared unit", name)
		}
	}
	tags := make(map[string]bool)
	for _, ext := range p.Extensions {
		if !seen[ext.Registry] {
			return fmt.Errorf("extension registry %q is not a declared unit", ext.Registry)
		}
		if ext.Implementation.Name == "" {
			return fmt.Errorf("extension %d on %s has no implementation name", ext.GameType, ext.Registry)
		}
		key := fmt.Sprintf("%s/%d", ext.Registry, ext.GameType)
		if tags[key] {
			return fmt.Errorf("duplicate extension %s", key)
		}
		tags[key] = true
	}
	return nil
}
