package usecase

import (
	"context"
	"log/slog"

	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
)

// Postcondition is one expected-state predicate evaluated after a mutation
type Postcondition struct {
	Field   string
	Observe func(ctx context.Context) (models.Value, error)
	Want    models.Value
}

// Verifier evaluates postconditions. Every condition of a step is evaluated
// and all failures are reported together in one *domain.InvariantViolation.
type Verifier struct {
	log *slog.Logger
}

// NewVerifier creates a new Verifier
func NewVerifier(log *slog.Logger) *Verifier {
	return &Verifier{log: log.With("component", "verifier")}
}

// Verify checks conds against the ledger on behalf of unit
func (v *Verifier) Verify(ctx context.Context, unit string, conds ...Postcondition) error {
	failures := v.Mismatches(ctx, conds...)
	if len(failures) > 0 {
		for _, f := range failures {
			v.log.Error("postcondition failed", "unit", unit, "field", f.Field, "expected", f.Expected, "observed", f.Observed)
		}
		return domain.NewInvariantViolation(unit, failures...)
	}

	v.log.Debug("postconditions hold", "unit", unit, "count", len(conds))
	return nil
}

// Mismatches evaluates every condition and returns the failing ones without
// logging them. A read failure counts as a mismatch.
func (v *Verifier) Mismatches(ctx context.Context, conds ...Postcondition) []domain.Mismatch {
	var failures []domain.Mismatch
	for _, c := range conds {
		got, err := c.Observe(ctx)
		if err != nil {
			failures = append(failures, domain.Mismatch{
				Field:    c.Field,
				Expected: c.Want.String(),
				Observed: "read failed: " + err.Error(),
			})
			continue
		}
		if !got.Equal(c.Want) {
			failures = append(failures, domain.Mismatch{
				Field:    c.Field,
				Expected: c.Want.String(),
				Observed: got.String(),
			})
		}
	}
	return failures
}
