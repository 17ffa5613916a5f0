package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
)

// StatusResult compares the registry with the ledger and the plan
type StatusResult struct {
	Scope   models.Scope         `json:"scope"`
	Entries []models.EntryStatus `json:"entries"`
	// Missing lists plan units that have no registry entry yet
	Missing []string `json:"missing"`
}

// Stale returns the recorded entries without code
func (r *StatusResult) Stale() []models.EntryStatus {
	return lo.Filter(r.Entries, func(e models.EntryStatus, _ int) bool { return !e.HasCode })
}

// Converged reports whether every plan unit is recorded and deployed
func (r *StatusResult) Converged() bool {
	return len(r.Missing) == 0 && len(r.Stale()) == 0
}

// CheckStatus reports which recorded addresses still carry code and which
// plan units a deploy would still have to create. It never writes.
type CheckStatus struct {
	addresses *ListAddresses
	checker   CodeChecker
	plan      PlanSource
	progress  ProgressSink
}

// NewCheckStatus creates a new CheckStatus use case
func NewCheckStatus(addresses *ListAddresses, checker CodeChecker, plan PlanSource, progress ProgressSink) *CheckStatus {
	if progress == nil {
		progress = NopProgress{}
	}
	return &CheckStatus{
		addresses: addresses,
		checker:   checker,
		plan:      plan,
		progress:  progress,
	}
}

// Run executes the check status use case
func (uc *CheckStatus) Run(ctx context.Context) (*StatusResult, error) {
	list, err := uc.addresses.Run(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := uc.plan.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{Scope: list.Scope}
	for i, entry := range list.Entries {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "check_code",
			Current: i + 1,
			Total:   len(list.Entries),
			Message: fmt.Sprintf("Checking %s", entry.Name),
			Spinner: true,
		})
		code, err := uc.checker.CodeAt(ctx, entry.Address)
		if err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, models.EntryStatus{
			AddressEntry: entry,
			HasCode:      len(code) > 0,
			CodeSize:     len(code),
		})
	}
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "check_code", Message: "Done"})

	recorded := lo.SliceToMap(list.Entries, func(e models.AddressEntry) (string, bool) { return e.Name, true })
	result.Missing = lo.Filter(PlanUnitNames(plan), func(name string, _ int) bool { return !recorded[name] })
	return result, nil
}

// PlanUnitNames lists every registry name a full run of plan records, in
// the order the phases create them
func PlanUnitNames(plan *models.Plan) []string {
	names := []string{plan.Controllers.AddressManager.Name, plan.Controllers.ProxyAdmin.Name}
	for _, px := range plan.Proxies {
		names = append(names, px.Name)
	}
	for _, u := range plan.Implementations {
		names = append(names, u.Name)
	}
	for _, ext := range plan.Extensions {
		names = append(names, ext.Implementation.Name)
	}
	return lo.Uniq(names)
}
