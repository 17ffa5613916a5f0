package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Namespace string   // Registry namespace inside the chain scope
	Network   *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Input files
	DeployConfigPath string
	PlanPath         string // empty means the embedded default plan

	// Keys, hex encoded. The first one is the default signer.
	PrivateKeys []string

	// Resolved configurations
	FoundryConfig *FoundryConfig
	DeployConfig  *DeployConfig
}

// Network represents network configuration
type Network struct {
	ChainID uint64 `json:"chainId"`
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
}
