package chainfake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

const ChainID = 31337

var (
	// Deployer is the default signer
	Deployer = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	// DeterministicDeployer matches the ledger adapter's CREATE2 factory
	DeterministicDeployer = common.HexToAddress("0x4e59b44847b379578588920cA78FbF26c0B4956C")

	codeMarker = []byte("fake:")
)

// ErrReverted is returned for every failed call or deploy
var ErrReverted = errors.New("execution reverted")

// Program runs one contract method. m is the zero Method for the constructor.
type Program func(x *Exec, m abi.Method, args []any) ([]any, error)

// Definition is a fake contract: its interface plus the Go program behind it
type Definition struct {
	Name string
	ABI  json.RawMessage
	Run  Program
	// Forward, when set, decides whether a call is delegated to another
	// program. Delegated programs run against this account's storage.
	Forward func(x *Exec, data []byte) (impl common.Address, delegate bool)

	parsed abi.ABI
}

type account struct {
	def   *Definition
	code  []byte
	vars  map[string]any
	slots map[common.Hash]common.Hash
}

func (a *account) clone() *account {
	return &account{def: a.def, code: a.code, vars: maps.Clone(a.vars), slots: maps.Clone(a.slots)}
}

// Chain is an in-memory usecase.LedgerClient and usecase.ArtifactSource
type Chain struct {
	mu       sync.Mutex
	block    uint64
	signers  map[common.Address]bool
	nonces   map[common.Address]uint64
	accounts map[common.Address]*account
	defs     map[string]*Definition
	swallow  map[string]bool
	drop     map[common.Address]bool

	deploys int
	calls   int
	methods []string
}

// New creates a chain holding keys for Deployer and extra
func New(extra ...common.Address) *Chain {
	c := &Chain{
		block:    1,
		signers:  map[common.Address]bool{Deployer: true},
		nonces:   make(map[common.Address]uint64),
		accounts: make(map[common.Address]*account),
		defs:     make(map[string]*Definition),
		swallow:  make(map[string]bool),
		drop:     make(map[common.Address]bool),
	}
	for _, a := range extra {
		c.signers[a] = true
	}
	c.accounts[DeterministicDeployer] = &account{code: []byte{0x60}}
	c.Define(Standard()...)
	return c
}

// Define registers contract definitions under their names
func (c *Chain) Define(defs ...*Definition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range defs {
		parsed, err := abi.JSON(bytes.NewReader(d.ABI))
		if err != nil {
			panic(fmt.Sprintf("chainfake: bad ABI for %s: %v", d.Name, err))
		}
		d.parsed = parsed
		c.defs[d.Name] = d
	}
}

// Swallow makes every later call of method succeed without changing state
func (c *Chain) Swallow(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.swallow[method] = true
}

// Interrupt makes the next call sent to addr fail before it reaches the
// chain, the way a crashed process would leave it
func (c *Chain) Interrupt(addr common.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drop[addr] = true
}

// Deploys returns how many contracts were created
func (c *Chain) Deploys() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deploys
}

// Mutations returns how many state changing transactions were mined
func (c *Chain) Mutations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deploys + c.calls
}

// Methods returns the names of the top-level methods called so far
func (c *Chain) Methods() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.methods...)
}

// Set writes a storage variable directly
func (c *Chain) Set(addr common.Address, key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.accounts[addr]; ok {
		a.vars[key] = value
	}
}

// SetSlot writes a raw storage slot directly
func (c *Chain) SetSlot(addr common.Address, slot, value common.Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.accounts[addr]; ok {
		a.slots[slot] = value
	}
}

// Code returns the code marker of the contract at addr
func (c *Chain) Code(addr common.Address) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.accounts[addr]; ok {
		return string(a.code)
	}
	return ""
}

// GetContract implements usecase.ArtifactSource
func (c *Chain) GetContract(ctx context.Context, name string) (*models.Contract, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.defs[name]
	if !ok {
		return nil, fmt.Errorf("contract %s: %w", name, domain.ErrNotFound)
	}
	code := append(append([]byte{}, codeMarker...), []byte(name+";")...)
	return &models.Contract{
		Name: name,
		Path: "src/" + name + ".sol",
		Artifact: &models.Artifact{
			ABI:      d.ABI,
			Bytecode: models.BytecodeObject{Object: hexutil.Encode(code)},
		},
	}, nil
}

// CreationCode returns the code deploying name with args
func (c *Chain) CreationCode(name string, args ...any) ([]byte, error) {
	c.mu.Lock()
	d, ok := c.defs[name]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("contract %s: %w", name, domain.ErrNotFound)
	}
	encoded, err := d.parsed.Pack("", args...)
	if err != nil {
		return nil, err
	}
	code := append(append([]byte{}, codeMarker...), []byte(name+";")...)
	return append(code, encoded...), nil
}

// DeployContract creates name with args from `from` without a salt
func (c *Chain) DeployContract(from common.Address, name string, args ...any) (common.Address, error) {
	code, err := c.CreationCode(name, args...)
	if err != nil {
		return common.Address{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deploy(from, code, nil)
}

func (c *Chain) Signer() common.Address { return Deployer }

func (c *Chain) CanSign(addr common.Address) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.signers[addr]
}

func (c *Chain) ChainID(ctx context.Context) (uint64, error) { return ChainID, nil }

func (c *Chain) BlockNumber(ctx context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.block, nil
}

func (c *Chain) View(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.snapshot()
	out, err := c.call(to, common.Address{}, data)
	c.accounts = snapshot
	return out, err
}

func (c *Chain) StorageAt(ctx context.Context, addr common.Address, slot common.Hash) (common.Hash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.accounts[addr]; ok {
		return a.slots[slot], nil
	}
	return common.Hash{}, nil
}

func (c *Chain) CodeAt(ctx context.Context, addr common.Address) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.accounts[addr]; ok {
		return a.code, nil
	}
	return nil, nil
}

func (c *Chain) PredictAddress(code []byte, salt common.Hash) common.Address {
	return crypto.CreateAddress2(DeterministicDeployer, salt, crypto.Keccak256(code))
}

func (c *Chain) Broadcast(ctx context.Context, from common.Address, fn func(usecase.Broadcaster) error) error {
	if !c.CanSign(from) {
		return fmt.Errorf("%w %s", domain.ErrNoSigner, from.Hex())
	}
	s := &session{chain: c, from: from}
	defer func() { s.closed = true }()
	return fn(s)
}

func (c *Chain) snapshot() map[common.Address]*account {
	out := make(map[common.Address]*account, len(c.accounts))
	for addr, a := range c.accounts {
		out[addr] = a.clone()
	}
	return out
}

// transact runs fn atomically: on error every account is restored
func (c *Chain) transact(from common.Address, swallow bool, fn func() error) error {
	snapshot := c.snapshot()
	if err := fn(); err != nil {
		c.accounts = snapshot
		return err
	}
	if swallow {
		c.accounts = snapshot
	}
	c.nonces[from]++
	c.block++
	return nil
}

func (c *Chain) deploy(from common.Address, code []byte, salt *common.Hash) (common.Address, error) {
	var addr common.Address
	if salt != nil {
		addr = c.PredictAddress(code, *salt)
		if a, ok := c.accounts[addr]; ok && len(a.code) > 0 {
			return addr, nil
		}
	} else {
		addr = crypto.CreateAddress(from, c.nonces[from])
	}

	sender := from
	if salt != nil {
		sender = DeterministicDeployer
	}
	err := c.transact(from, false, func() error {
		return c.create(addr, sender, code)
	})
	if err != nil {
		return common.Address{}, err
	}
	c.deploys++
	return addr, nil
}

func (c *Chain) create(addr, sender common.Address, code []byte) error {
	if !bytes.HasPrefix(code, codeMarker) {
		return fmt.Errorf("%w: unrecognised creation code", ErrReverted)
	}
	end := bytes.IndexByte(code, ';')
	if end < 0 {
		return fmt.Errorf("%w: unterminated code marker", ErrReverted)
	}
	name := string(code[len(codeMarker):end])
	def, ok := c.defs[name]
	if !ok {
		return fmt.Errorf("%w: unknown contract %s", ErrReverted, name)
	}

	var args []any
	if inputs := def.parsed.Constructor.Inputs; len(inputs) > 0 {
		var err error
		if args, err = inputs.Unpack(code[end+1:]); err != nil {
			return fmt.Errorf("%w: bad constructor arguments for %s: %v", ErrReverted, name, err)
		}
	}

	c.accounts[addr] = &account{
		def:   def,
		code:  append([]byte{}, code[:end]...),
		vars:  make(map[string]any),
		slots: make(map[common.Hash]common.Hash),
	}
	x := &Exec{chain: c, Self: addr, Sender: sender, acct: c.accounts[addr]}
	if _, err := def.Run(x, abi.Method{}, args); err != nil {
		return err
	}
	return nil
}

func (c *Chain) call(to, sender common.Address, data []byte) ([]byte, error) {
	a, ok := c.accounts[to]
	if !ok || a.def == nil {
		return nil, fmt.Errorf("%w: no contract at %s", ErrReverted, to.Hex())
	}
	return c.execute(to, a.def, sender, data)
}

func (c *Chain) execute(self common.Address, def *Definition, sender common.Address, data []byte) ([]byte, error) {
	x := &Exec{chain: c, Self: self, Sender: sender, acct: c.accounts[self]}
	if def.Forward != nil {
		if impl, delegate := def.Forward(x, data); delegate {
			target, ok := c.accounts[impl]
			if !ok || target.def == nil {
				return nil, fmt.Errorf("%w: %s has no implementation", ErrReverted, def.Name)
			}
			return c.execute(self, target.def, sender, data)
		}
	}

	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %s has no fallback", ErrReverted, def.Name)
	}
	m, err := def.parsed.MethodById(data[:4])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: unknown selector %x", ErrReverted, def.Name, data[:4])
	}
	args, err := m.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s.%s: %v", ErrReverted, def.Name, m.Name, err)
	}
	out, err := def.Run(x, *m, args)
	if err != nil {
		return nil, err
	}
	return m.Outputs.Pack(out...)
}

// methodName resolves the name of the method data calls on to, following delegation
func (c *Chain) methodName(to common.Address, data []byte) string {
	if len(data) < 4 {
		return ""
	}
	for addr, seen := to, 0; seen < 4; seen++ {
		a, ok := c.accounts[addr]
		if !ok || a.def == nil {
			return ""
		}
		if m, err := a.def.parsed.MethodById(data[:4]); err == nil {
			return m.Name
		}
		if a.def.Forward == nil {
			return ""
		}
		impl, _ := a.def.Forward(&Exec{chain: c, Self: to, acct: c.accounts[to]}, data)
		addr = impl
	}
	return ""
}

type session struct {
	chain  *Chain
	from   common.Address
	closed bool
}

func (s *session) From() common.Address { return s.from }

func (s *session) Deploy(ctx context.Context, code []byte, salt *common.Hash) (common.Address, error) {
	if s.closed {
		return common.Address{}, domain.ErrBroadcastClosed
	}
	s.chain.mu.Lock()
	defer s.chain.mu.Unlock()
	return s.chain.deploy(s.from, code, salt)
}

func (s *session) Call(ctx context.Context, to common.Address, data []byte) (common.Hash, error) {
	if s.closed {
		return common.Hash{}, domain.ErrBroadcastClosed
	}
	c := s.chain
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drop[to] {
		delete(c.drop, to)
		return common.Hash{}, fmt.Errorf("chainfake: call to %s interrupted", to.Hex())
	}
	method := c.methodName(to, data)
	err := c.transact(s.from, c.swallow[method], func() error {
		_, err := c.call(to, s.from, data)
		return err
	})
	if err != nil {
		return common.Hash{}, err
	}
	c.calls++
	c.methods = append(c.methods, method)
	return crypto.Keccak256Hash(s.from.Bytes(), to.Bytes(), data, new(big.Int).SetUint64(c.block).Bytes()), nil
}

var (
	_ usecase.LedgerClient   = (*Chain)(nil)
	_ usecase.ArtifactSource = (*Chain)(nil)
)
