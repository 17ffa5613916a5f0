package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Environment is the deployment context. Only non-production contexts
// register extensions.
type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevnet     Environment = "devnet"
)

// UnmarshalText implements encoding.TextUnmarshaler
func (e *Environment) UnmarshalText(text []byte) error {
	switch v := Environment(strings.ToLower(string(text))); v {
	case EnvironmentProduction, EnvironmentStaging, EnvironmentDevnet:
		*e = v
		return nil
	default:
		return fmt.Errorf("unknown environment %q (expected production, staging or devnet)", string(text))
	}
}

// IsProduction reports whether the context is production
func (e Environment) IsProduction() bool {
	return e == EnvironmentProduction
}

// PrestateConfig says where the absolute prestate comes from
type PrestateConfig struct {
	Value   string `toml:"value,omitempty"`
	File    string `toml:"file,omitempty"`
	Command string `toml:"command,omitempty"`
}

// DeployConfig is the per-network deploy configuration
type DeployConfig struct {
	FinalOwner                    string         `toml:"final_owner"`
	Environment                   Environment    `toml:"environment"`
	ImplSalt                      string         `toml:"impl_salt"`
	StartBlock                    *uint64        `toml:"start_block,omitempty"`
	Restricted                    bool           `toml:"restricted"`
	SkipExtensionsOnProviderError bool           `toml:"skip_extensions_on_provider_error"`
	Params                        map[string]any `toml:"params,omitempty"`
	Prestate                      PrestateConfig `toml:"prestate"`
}

// FinalOwnerAddress returns the parsed final owner
func (c *DeployConfig) FinalOwnerAddress() (common.Address, error) {
	if !common.IsHexAddress(c.FinalOwner) {
		return common.Address{}, fmt.Errorf("final_owner %q is not an address", c.FinalOwner)
	}
	owner := common.HexToAddress(c.FinalOwner)
	if owner == (common.Address{}) {
		return common.Address{}, fmt.Errorf("final_owner must not be the zero address")
	}
	return owner, nil
}

// ImplSaltHash returns the salt salted units derive theirs from. A 32 byte
// hex value is used as is; any other string is hashed.
func (c *DeployConfig) ImplSaltHash() common.Hash {
	if b, err := hexutil.Decode(c.ImplSalt); err == nil && len(b) == common.HashLength {
		return common.BytesToHash(b)
	}
	return crypto.Keccak256Hash([]byte(c.ImplSalt))
}

// PrestateValue returns the configured prestate, if any
func (c *DeployConfig) PrestateValue() (*common.Hash, error) {
	if c.Prestate.Value == "" {
		return nil, nil
	}
	b, err := hexutil.Decode(c.Prestate.Value)
	if err != nil || len(b) != common.HashLength {
		return nil, fmt.Errorf("prestate.value %q is not a 32 byte hex value", c.Prestate.Value)
	}
	h := common.BytesToHash(b)
	if h == (common.Hash{}) {
		return nil, fmt.Errorf("prestate.value must not be zero")
	}
	return &h, nil
}

// Validate checks required fields
func (c *DeployConfig) Validate() error {
	if _, err := c.FinalOwnerAddress(); err != nil {
		return err
	}
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if _, err := c.PrestateValue(); err != nil {
		return err
	}
	return nil
}
