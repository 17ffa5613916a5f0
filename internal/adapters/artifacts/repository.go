package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// Repository indexes Foundry build artifacts
type Repository struct {
	projectRoot   string
	outDir        string
	contracts     map[string]*models.Contract   // key: "path:contractName"
	contractNames map[string][]*models.Contract // key: contract name
	log           *slog.Logger
	mu            sync.RWMutex
	indexed       bool
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		projectRoot:   cfg.ProjectRoot,
		outDir:        filepath.Join(cfg.ProjectRoot, cfg.FoundryConfig.OutDir()),
		contracts:     make(map[string]*models.Contract),
		contractNames: make(map[string][]*models.Contract),
		log:           log.With("component", "artifacts"),
	}
}

// Index discovers all artifacts under the out directory
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if _, err := os.Stat(r.outDir); os.IsNotExist(err) {
		return fmt.Errorf("artifact directory %s not found, run forge build first", r.outDir)
	}

	err := filepath.Walk(r.outDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" {
			return nil
		}
		return r.processArtifact(path)
	})
	if err != nil {
		return err
	}

	r.indexed = true
	r.log.Debug("indexed artifacts", "dir", r.outDir, "contracts", len(r.contracts))
	return nil
}

func (r *Repository) processArtifact(artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Not every json file under out/ is an artifact
		return nil
	}
	if artifact.Bytecode.Object == "" || artifact.Bytecode.Object == "0x" {
		return nil
	}

	var contractName, sourceName string
	for source, contract := range artifact.Metadata.Settings.CompilationTarget {
		sourceName = source
		contractName = contract
	}
	if contractName == "" {
		// Artifacts built without metadata are named after the contract
		contractName = strings.SplitN(strings.TrimSuffix(filepath.Base(artifactPath), ".json"), ".", 2)[0]
		sourceName = filepath.Base(filepath.Dir(artifactPath))
	}

	relArtifactPath, _ := filepath.Rel(r.projectRoot, artifactPath)
	info := &models.Contract{
		Name:         contractName,
		Path:         sourceName,
		ArtifactPath: relArtifactPath,
		Artifact:     &artifact,
	}

	key := fmt.Sprintf("%s:%s", info.Path, info.Name)
	if _, exists := r.contracts[key]; exists {
		// Same contract compiled with several compiler versions; keep the first
		return nil
	}
	r.contracts[key] = info
	r.contractNames[info.Name] = append(r.contractNames[info.Name], info)
	return nil
}

// GetContract resolves a contract by name or by "path:name"
func (r *Repository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if contract, ok := r.contracts[key]; ok {
		return contract, nil
	}

	candidates := r.contractNames[key]
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("artifact %s: %w", key, domain.ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		paths := lo.Map(candidates, func(c *models.Contract, _ int) string { return c.Path + ":" + c.Name })
		slices.Sort(paths)
		return nil, fmt.Errorf("artifact %s is ambiguous, use one of: %s", key, strings.Join(paths, ", "))
	}
}

var _ usecase.ArtifactSource = (*Repository)(nil)
