package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"gopkg.in/yaml.v3"
)

//go:embed plans/opstack.toml
var defaultPlan []byte

// DefaultPlanName is shown wherever the embedded plan is in use
const DefaultPlanName = "builtin:opstack"

// PlanLoader reads the deployment plan from the configured file, or falls
// back to the embedded OP Stack plan
type PlanLoader struct {
	projectRoot string
	path        string
}

// NewPlanLoader creates a plan loader for the runtime config
func NewPlanLoader(cfg *config.RuntimeConfig) *PlanLoader {
	return &PlanLoader{projectRoot: cfg.ProjectRoot, path: cfg.PlanPath}
}

// Source names where the plan is read from
func (l *PlanLoader) Source() string {
	if l.path == "" {
		return DefaultPlanName
	}
	return l.path
}

// Load implements usecase.PlanSource
func (l *PlanLoader) Load(ctx context.Context) (*models.Plan, error) {
	if l.path == "" {
		return ParsePlan(defaultPlan, "toml")
	}

	path := l.path
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.projectRoot, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	format := "toml"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	plan, err := ParsePlan(data, format)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", l.path, err)
	}
	return plan, nil
}

// ParsePlan decodes and validates a plan in the given format (toml or yaml)
func ParsePlan(data []byte, format string) (*models.Plan, error) {
	var plan models.Plan
	switch format {
	case "toml":
		md, err := toml.Decode(string(data), &plan)
		if err != nil {
			return nil, fmt.Errorf("failed to parse plan: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := lo.Map(undecoded, func(k toml.Key, _ int) string { return k.String() })
			return nil, fmt.Errorf("unknown plan keys: %s", strings.Join(keys, ", "))
		}
	case "yaml":
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&plan); err != nil {
			return nil, fmt.Errorf("failed to parse plan: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported plan format %q", format)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}
