package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/l2deploy/internal/domain/models"
)

// Step reconciles one field of one unit: read it, compare with the desired
// value, write only when they differ, then verify the field and any extra
// postconditions.
type Step struct {
	Unit    string
	Field   string
	Read    func(ctx context.Context) (models.Value, error)
	Desired models.Value
	Write   func(ctx context.Context) error
	Verify  []Postcondition
}

// Apply runs the step. changed reports whether Write was called.
func (s Step) Apply(ctx context.Context, v *Verifier) (changed bool, err error) {
	current, err := s.Read(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read %s.%s: %w", s.Unit, s.Field, err)
	}
	if current.Equal(s.Desired) {
		return false, nil
	}

	v.log.Info("updating", "unit", s.Unit, "field", s.Field, "from", current.String(), "to", s.Desired.String())
	if err := s.Write(ctx); err != nil {
		return false, fmt.Errorf("failed to update %s.%s: %w", s.Unit, s.Field, err)
	}

	conds := make([]Postcondition, 0, len(s.Verify)+1)
	conds = append(conds, Postcondition{Field: s.Field, Observe: s.Read, Want: s.Desired})
	conds = append(conds, s.Verify...)
	return true, v.Verify(ctx, s.Unit, conds...)
}
