package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
)

// DataDirName is the per-project state directory
const DataDirName = ".l2deploy"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		Namespace:      v.GetString("namespace"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		PlanPath:       v.GetString("plan"),
		PrivateKeys:    privateKeys(v),
	}

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}
	cfg.FoundryConfig = foundryConfig

	networkName := v.GetString("network")
	if networkName != "" {
		network, err := ResolveNetwork(foundryConfig, networkName)
		if err != nil {
			return nil, err
		}
		cfg.Network = network
	}

	cfg.DeployConfigPath = v.GetString("deploy_config")
	if cfg.DeployConfigPath == "" && networkName != "" {
		cfg.DeployConfigPath = filepath.Join("deploy-config", networkName+".toml")
	}
	if cfg.DeployConfigPath != "" {
		path := cfg.DeployConfigPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(projectRoot, path)
		}
		// Read-only commands run without a deploy config
		if _, err := os.Stat(path); err == nil {
			if cfg.DeployConfig, err = LoadDeployConfig(path); err != nil {
				return nil, err
			}
		}
	}

	return cfg, nil
}

// privateKeys collects the default key followed by the comma separated extra keys
func privateKeys(v *viper.Viper) []string {
	keys := []string{v.GetString("private_key")}
	keys = append(keys, strings.Split(v.GetString("extra_keys"), ",")...)
	return lo.Filter(lo.Map(keys, func(k string, _ int) string {
		return strings.TrimSpace(k)
	}), func(k string, _ int) bool {
		return k != ""
	})
}

// FindProjectRoot walks up from current directory to find foundry.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "foundry.toml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Foundry project (foundry.toml not found)")
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string) *viper.Viper {
	v := viper.New()

	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	v.SetEnvPrefix("L2DEPLOY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("namespace", "default")
	v.SetDefault("timeout", "30m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	return v
}

// BindFlags binds every flag that was set on the command line, so flags
// override environment and config file values
func BindFlags(v *viper.Viper, cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
		}
	})
}
