package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

const (
	DataDir       = ".l2deploy"
	AddressesFile = "addresses.json"
)

// AddressTable is the on-disk shape: chainId -> namespace -> name -> address
type AddressTable map[string]map[string]map[string]string

// FileRegistry stores name -> address bindings in a JSON file shared by
// every chain and namespace of a project
type FileRegistry struct {
	path    string
	scope   models.Scope
	mu      sync.RWMutex
	entries map[string]common.Address
	log     *slog.Logger
}

// NewFileRegistry loads the registry file under dataDir for one scope
func NewFileRegistry(dataDir string, scope models.Scope, log *slog.Logger) (*FileRegistry, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", dataDir, err)
	}

	r := &FileRegistry{
		path:    filepath.Join(dataDir, AddressesFile),
		scope:   scope,
		entries: make(map[string]common.Address),
		log:     log.With("component", "registry"),
	}

	table, err := r.loadTable()
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	for name, raw := range table.scoped(scope) {
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("registry entry %s in %s: %q: %w", name, scope, raw, domain.ErrInvalidAddress)
		}
		r.entries[name] = common.HexToAddress(raw)
	}

	r.log.Debug("loaded registry", "path", r.path, "scope", scope.String(), "entries", len(r.entries))
	return r, nil
}

// Scope returns the chain/namespace this registry reads and writes
func (r *FileRegistry) Scope() models.Scope {
	return r.scope
}

// Put records name -> addr and persists it
func (r *FileRegistry) Put(ctx context.Context, name string, addr common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[name]; ok {
		if existing != addr {
			return &domain.ConflictError{Name: name, Existing: existing.Hex(), Attempted: addr.Hex()}
		}
		return nil
	}

	// Merge against the file so entries written since load are not lost
	table, err := r.loadTable()
	if err != nil {
		return fmt.Errorf("failed to reload registry: %w", err)
	}
	scoped := table.ensure(r.scope)
	if raw, ok := scoped[name]; ok && !strings.EqualFold(raw, addr.Hex()) {
		return &domain.ConflictError{Name: name, Existing: raw, Attempted: addr.Hex()}
	}
	scoped[name] = addr.Hex()

	if err := r.saveTable(table); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}
	r.entries[name] = addr

	r.log.Debug("recorded address", "name", name, "address", addr.Hex())
	return nil
}

// Get returns the address bound to name
func (r *FileRegistry) Get(ctx context.Context, name string) (common.Address, error) {
	if addr, ok := r.Lookup(ctx, name); ok {
		return addr, nil
	}
	return common.Address{}, &domain.NotFoundError{Name: name, Scope: r.scope.String()}
}

// Lookup returns the address bound to name, if any
func (r *FileRegistry) Lookup(ctx context.Context, name string) (common.Address, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	addr, ok := r.entries[name]
	return addr, ok
}

// All returns every entry of the scope sorted by name
func (r *FileRegistry) All(ctx context.Context) []models.AddressEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)

	entries := make([]models.AddressEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, models.AddressEntry{Name: name, Address: r.entries[name]})
	}
	return entries
}

func (r *FileRegistry) loadTable() (AddressTable, error) {
	table := make(AddressTable)

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return table, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return table, nil
	}
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", r.path, err)
	}
	return table, nil
}

func (r *FileRegistry) saveTable(table AddressTable) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return err
	}

	// Write to temp file first
	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, r.path)
}

func (t AddressTable) scoped(scope models.Scope) map[string]string {
	byNamespace := t[strconv.FormatUint(scope.ChainID, 10)]
	if byNamespace == nil {
		return nil
	}
	return byNamespace[scope.Namespace]
}

func (t AddressTable) ensure(scope models.Scope) map[string]string {
	chainKey := strconv.FormatUint(scope.ChainID, 10)
	if t[chainKey] == nil {
		t[chainKey] = make(map[string]map[string]string)
	}
	if t[chainKey][scope.Namespace] == nil {
		t[chainKey][scope.Namespace] = make(map[string]string)
	}
	return t[chainKey][scope.Namespace]
}

var _ usecase.AddressRegistry = (*FileRegistry)(nil)
