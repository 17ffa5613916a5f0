package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
)

// LoadDeployConfig reads and validates a per-network deploy config. Unknown
// keys are rejected so a misspelled option never silently falls back to
// its default.
func LoadDeployConfig(path string) (*config.DeployConfig, error) {
	var cfg config.DeployConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse deploy config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := lo.Map(undecoded, func(k toml.Key, _ int) string { return k.String() })
		return nil, fmt.Errorf("deploy config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("deploy config %s: %w", path, err)
	}
	return &cfg, nil
}
