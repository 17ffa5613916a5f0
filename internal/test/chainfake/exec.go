package chainfake

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Exec is the context a program runs in. Storage reads and writes go to
// the Self account, which for delegated calls is the proxy.
type Exec struct {
	chain  *Chain
	acct   *account
	Self   common.Address
	Sender common.Address
}

// Get reads a storage variable
func (x *Exec) Get(key string) any {
	return x.acct.vars[key]
}

// Set writes a storage variable
func (x *Exec) Set(key string, v any) {
	x.acct.vars[key] = v
}

// Address reads an address variable, zero when unset
func (x *Exec) Address(key string) common.Address {
	a, _ := x.Get(key).(common.Address)
	return a
}

// Slot reads a raw storage slot
func (x *Exec) Slot(slot common.Hash) common.Hash {
	return x.acct.slots[slot]
}

// SetSlot writes a raw storage slot
func (x *Exec) SetSlot(slot, value common.Hash) {
	x.acct.slots[slot] = value
}

// Revert fails the current transaction
func (x *Exec) Revert(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrReverted, fmt.Sprintf(format, args...))
}

// OnlyOwner reverts unless the sender is the owner variable
func (x *Exec) OnlyOwner() error {
	if x.Sender != x.Address("owner") {
		return x.Revert("caller %s is not the owner", x.Sender.Hex())
	}
	return nil
}

// Call invokes method on another contract with Self as sender
func (x *Exec) Call(to common.Address, method string, args ...any) ([]any, error) {
	a, ok := x.chain.accounts[to]
	if !ok || a.def == nil {
		return nil, x.Revert("no contract at %s", to.Hex())
	}
	m, ok := a.def.parsed.Methods[method]
	if !ok {
		return nil, x.Revert("%s has no method %s", a.def.Name, method)
	}
	data, err := a.def.parsed.Pack(method, args...)
	if err != nil {
		return nil, x.Revert("%s.%s: %v", a.def.Name, method, err)
	}
	out, err := x.chain.execute(to, a.def, x.Self, data)
	if err != nil {
		return nil, err
	}
	return m.Outputs.Unpack(out)
}

// CallData forwards raw calldata to another contract with Self as sender
func (x *Exec) CallData(to common.Address, data []byte) error {
	_, err := x.chain.call(to, x.Self, data)
	return err
}

// Delegate runs data with impl's program against Self's storage
func (x *Exec) Delegate(impl common.Address, data []byte) error {
	a, ok := x.chain.accounts[impl]
	if !ok || a.def == nil {
		return x.Revert("no implementation at %s", impl.Hex())
	}
	_, err := x.chain.execute(x.Self, a.def, x.Sender, data)
	return err
}

// peek returns another account, nil when it has none
func (x *Exec) peek(addr common.Address) *account {
	return x.chain.accounts[addr]
}

func zero(t abi.Type) any {
	if t.T == abi.IntTy || t.T == abi.UintTy {
		if t.GetType() == reflect.TypeOf(&big.Int{}) {
			return new(big.Int)
		}
	}
	return reflect.Zero(t.GetType()).Interface()
}
