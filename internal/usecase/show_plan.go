package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
)

// PlanView is a plan together with the addresses already recorded for its units
type PlanView struct {
	Plan     *models.Plan              `json:"plan"`
	Recorded map[string]common.Address `json:"recorded,omitempty"`
}

// ShowPlan loads the deployment plan for display
type ShowPlan struct {
	plan     PlanSource
	registry AddressRegistry
}

// NewShowPlan creates a new ShowPlan use case
func NewShowPlan(plan PlanSource, registry AddressRegistry) *ShowPlan {
	return &ShowPlan{plan: plan, registry: registry}
}

// Run loads the plan. Recorded addresses are only looked up when a network
// is selected.
func (uc *ShowPlan) Run(ctx context.Context) (*PlanView, error) {
	plan, err := uc.plan.Load(ctx)
	if err != nil {
		return nil, err
	}

	view := &PlanView{Plan: plan}
	if uc.registry.Scope().ChainID == 0 {
		return view, nil
	}

	view.Recorded = make(map[string]common.Address)
	for _, name := range PlanUnitNames(plan) {
		if addr, ok := uc.registry.Lookup(ctx, name); ok {
			view.Recorded[name] = addr
		}
	}
	return view, nil
}
