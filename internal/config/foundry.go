package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
)

// loadFoundryConfig loads .env files and parses foundry.toml, expanding
// environment references in RPC endpoints
func loadFoundryConfig(projectRoot string) (*config.FoundryConfig, error) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}
	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}

	var cfg config.FoundryConfig
	if _, err := toml.DecodeFile(filepath.Join(projectRoot, "foundry.toml"), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}
	if cfg.RpcEndpoints == nil {
		cfg.RpcEndpoints = make(map[string]string)
	}
	for name, url := range cfg.RpcEndpoints {
		cfg.RpcEndpoints[name] = os.ExpandEnv(url)
	}
	return &cfg, nil
}

// ResolveNetwork looks a network up in foundry.toml [rpc_endpoints]. The
// chain ID is filled in once the endpoint has been contacted.
func ResolveNetwork(foundry *config.FoundryConfig, name string) (*config.Network, error) {
	url, ok := foundry.RpcEndpoints[name]
	if !ok {
		return nil, fmt.Errorf("network '%s' not found in foundry.toml [rpc_endpoints]", name)
	}
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("rpc endpoint for network '%s' is empty (is its environment variable set?)", name)
	}
	return &config.Network{Name: name, RPCURL: url}, nil
}
