package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Phase identifies one reconciliation phase
type Phase int

const (
	PhaseControllers Phase = iota + 1
	PhaseProxies
	PhaseImplementations
	PhaseInitialize
	PhaseAuthority
	PhaseExtensions
)

func (p Phase) String() string {
	switch p {
	case PhaseControllers:
		return "controllers"
	case PhaseProxies:
		return "proxies"
	case PhaseImplementations:
		return "implementations"
	case PhaseInitialize:
		return "initialize"
	case PhaseAuthority:
		return "authority"
	case PhaseExtensions:
		return "extensions"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Action is what a step did to the ledger
type Action string

const (
	ActionDeployed   Action = "deployed"
	ActionAdopted    Action = "adopted"
	ActionUnchanged  Action = "unchanged"
	ActionUpdated    Action = "updated"
	ActionRegistered Action = "registered"
	ActionSkipped    Action = "skipped"
)

// Mutating reports whether the action sent a transaction
func (a Action) Mutating() bool {
	return a == ActionDeployed || a == ActionUpdated || a == ActionRegistered
}

// StepResult is the outcome of one reconcile step
type StepResult struct {
	Phase   Phase          `json:"phase"`
	Unit    string         `json:"unit"`
	Field   string         `json:"field,omitempty"`
	Action  Action         `json:"action"`
	Address common.Address `json:"address,omitempty"`
	Detail  string         `json:"detail,omitempty"`
}

// Report collects the step results of one run
type Report struct {
	ChainID   uint64         `json:"chainId"`
	Namespace string         `json:"namespace"`
	Signer    common.Address `json:"signer"`
	StartedAt time.Time      `json:"startedAt"`
	Duration  time.Duration  `json:"duration"`
	Steps     []StepResult   `json:"steps"`
}

// Add appends a step result
func (r *Report) Add(step StepResult) {
	r.Steps = append(r.Steps, step)
}

// Mutations counts steps that sent a transaction
func (r *Report) Mutations() int {
	n := 0
	for _, s := range r.Steps {
		if s.Action.Mutating() {
			n++
		}
	}
	return n
}
