package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for reconciliation. The typed errors below match these via errors.Is.
var (
	// ErrConflict is returned when a registry name is bound to two different addresses
	ErrConflict = errors.New("registry conflict")

	// ErrNotFound is returned when a required registry entry doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvariantViolation is returned when a postcondition does not hold after a mutation
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrExternalProvider is returned when an external value source is unavailable or malformed
	ErrExternalProvider = errors.New("external provider failure")

	// ErrBroadcastClosed is returned when a broadcaster is used after its session was released
	ErrBroadcastClosed = errors.New("broadcast session closed")

	// ErrNoSigner is returned when a mutation must be sent from an address we hold no key for
	ErrNoSigner = errors.New("no signer for address")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidPlan is returned when a deployment plan is malformed
	ErrInvalidPlan = errors.New("invalid plan")
)

// ConflictError signals a corrupted or mismatched address artifact.
type ConflictError struct {
	Name      string
	Existing  string
	Attempted string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("registry conflict for %s: recorded %s, attempted %s", e.Name, e.Existing, e.Attempted)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// NotFoundError signals that phases ran out of order or the artifact is stale.
type NotFoundError struct {
	Name        string
	Scope       string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s not found in registry", e.Name)
	if e.Scope != "" {
		msg += fmt.Sprintf(" (%s)", e.Scope)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf("; did you mean %s?", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Mismatch is one failed postcondition.
type Mismatch struct {
	Field    string
	Expected string
	Observed string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: expected %s, observed %s", m.Field, m.Expected, m.Observed)
}

// InvariantViolation aborts the run. It lists every failing field of one step.
type InvariantViolation struct {
	Unit     string
	Failures []Mismatch
}

// NewInvariantViolation creates an InvariantViolation for a unit
func NewInvariantViolation(unit string, failures ...Mismatch) *InvariantViolation {
	return &InvariantViolation{Unit: unit, Failures: failures}
}

func (e *InvariantViolation) Error() string {
	lines := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		lines = append(lines, "  - "+f.String())
	}
	return fmt.Sprintf("invariant violation on %s:\n%s", e.Unit, strings.Join(lines, "\n"))
}

func (e *InvariantViolation) Is(target error) bool { return target == ErrInvariantViolation }

// ExternalProviderError wraps failures of the prestate provider.
type ExternalProviderError struct {
	Source string
	Err    error
}

func (e *ExternalProviderError) Error() string {
	return fmt.Sprintf("external provider %s: %v", e.Source, e.Err)
}

func (e *ExternalProviderError) Unwrap() error { return e.Err }

func (e *ExternalProviderError) Is(target error) bool { return target == ErrExternalProvider }
