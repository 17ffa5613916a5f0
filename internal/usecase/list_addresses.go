package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
)

// ErrNoNetwork is returned by registry reads that have no chain scope
var ErrNoNetwork = errors.New("no network configured (use --network)")

// AddressListResult is the recorded address table of one scope
type AddressListResult struct {
	Scope   models.Scope          `json:"scope"`
	Entries []models.AddressEntry `json:"entries"`
}

// ListAddresses reads the address registry
type ListAddresses struct {
	registry AddressRegistry
	selector AddressSelector
}

// NewListAddresses creates a new ListAddresses use case
func NewListAddresses(registry AddressRegistry, selector AddressSelector) *ListAddresses {
	return &ListAddresses{
		registry: registry,
		selector: selector,
	}
}

// Run returns every entry of the current scope sorted by name
func (uc *ListAddresses) Run(ctx context.Context) (*AddressListResult, error) {
	scope := uc.registry.Scope()
	if scope.ChainID == 0 {
		return nil, ErrNoNetwork
	}

	entries := uc.registry.All(ctx)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return &AddressListResult{Scope: scope, Entries: entries}, nil
}

// Get returns the entry recorded under name, falling back to the selector
// when no entry has exactly that name
func (uc *ListAddresses) Get(ctx context.Context, name string) (models.AddressEntry, error) {
	scope := uc.registry.Scope()
	if scope.ChainID == 0 {
		return models.AddressEntry{}, ErrNoNetwork
	}

	if addr, ok := uc.registry.Lookup(ctx, name); ok {
		return models.AddressEntry{Name: name, Address: addr}, nil
	}

	entry, err := uc.selector.SelectAddress(ctx, name, uc.registry.All(ctx))
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			notFound.Scope = scope.String()
		}
		return models.AddressEntry{}, fmt.Errorf("lookup %s: %w", name, err)
	}
	return entry, nil
}
