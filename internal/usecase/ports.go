package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
)

// AddressRegistry is the persisted name -> address table of one chain/namespace scope
type AddressRegistry interface {
	// Put records name -> addr. Recording the same address twice is a no-op;
	// a different address fails with *domain.ConflictError.
	Put(ctx context.Context, name string, addr common.Address) error
	// Get fails with *domain.NotFoundError when name is absent
	Get(ctx context.Context, name string) (common.Address, error)
	Lookup(ctx context.Context, name string) (common.Address, bool)
	All(ctx context.Context) []models.AddressEntry
	Scope() models.Scope
}

// Broadcaster submits transactions for one sender inside a broadcast session.
// It must not be used after the session has been released.
type Broadcaster interface {
	From() common.Address
	// Deploy creates a contract from code (creation bytecode with encoded
	// constructor arguments). A non-nil salt deploys through the deterministic
	// deployment proxy.
	Deploy(ctx context.Context, code []byte, salt *common.Hash) (common.Address, error)
	// Call sends data to an existing contract and waits for a successful receipt
	Call(ctx context.Context, to common.Address, data []byte) (common.Hash, error)
}

// LedgerClient reads ledger state and opens broadcast sessions
type LedgerClient interface {
	// Signer is the default sender identity
	Signer() common.Address
	CanSign(addr common.Address) bool
	ChainID(ctx context.Context) (uint64, error)
	BlockNumber(ctx context.Context) (uint64, error)
	View(ctx context.Context, to common.Address, data []byte) ([]byte, error)
	StorageAt(ctx context.Context, addr common.Address, slot common.Hash) (common.Hash, error)
	CodeAt(ctx context.Context, addr common.Address) ([]byte, error)
	// PredictAddress returns where a salted Deploy of code lands
	PredictAddress(code []byte, salt common.Hash) common.Address
	// Broadcast runs fn with a Broadcaster for from and releases the
	// session on every exit path
	Broadcast(ctx context.Context, from common.Address, fn func(Broadcaster) error) error
}

// ArtifactSource resolves a unit's code body and interface
type ArtifactSource interface {
	GetContract(ctx context.Context, name string) (*models.Contract, error)
}

// ArgEncoder converts resolved plan values into ABI encoded bytes
type ArgEncoder interface {
	Constructor(contract *abi.ABI, args []any) ([]byte, error)
	Call(contract *abi.ABI, method string, args []any) ([]byte, error)
	// Result encodes an expected return value the way method returns it
	Result(contract *abi.ABI, method string, value any) (models.Value, error)
	// Decode wraps raw return data of method into a Value with display text
	Decode(contract *abi.ABI, method string, data []byte) (models.Value, error)
}

// ProxyController routes kind, admin and upgrade operations to the three
// forwarding unit kinds. Kind encodings stay inside the implementation.
type ProxyController interface {
	// ForwarderUnit returns the unit that deploys the forwarding contract of spec
	ForwarderUnit(spec models.ProxySpec, ctrl models.Controllers) models.Unit
	Kind(ctx context.Context, ctrl models.Controllers, proxy common.Address) (models.ProxyKind, error)
	Admin(ctx context.Context, ctrl models.Controllers, proxy models.ProxyBinding) (common.Address, error)
	Implementation(ctx context.Context, ctrl models.Controllers, proxy common.Address) (common.Address, error)
	EnsureKind(ctx context.Context, ctrl models.Controllers, proxy models.ProxyBinding) (bool, error)
	EnsureAdmin(ctx context.Context, ctrl models.Controllers, proxy models.ProxyBinding, admin common.Address) (bool, error)
	UpgradeAndInitialize(ctx context.Context, ctrl models.Controllers, proxy models.ProxyBinding, impl common.Address, data []byte) error
	// Initialize resends the initializer of a legacy proxy whose upgrade landed alone
	Initialize(ctx context.Context, proxy models.ProxyBinding, data []byte) error
}

// PrestateProvider supplies the absolute prestate from outside configuration
type PrestateProvider interface {
	// Prestate fails with *domain.ExternalProviderError when the value is
	// unavailable, malformed or zero
	Prestate(ctx context.Context) (common.Hash, error)
}

// PlanSource loads the deployment plan
type PlanSource interface {
	Load(ctx context.Context) (*models.Plan, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Confirmer asks the operator before mutating a production context
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// AddressSelector picks the entry an inexact name refers to. It fails with
// *domain.NotFoundError when nothing matches.
type AddressSelector interface {
	SelectAddress(ctx context.Context, query string, entries []models.AddressEntry) (models.AddressEntry, error)
}

// CodeChecker reads deployed code without holding any keys
type CodeChecker interface {
	CodeAt(ctx context.Context, addr common.Address) ([]byte, error)
}
