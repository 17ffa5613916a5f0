package models

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Value is an observed or expected piece of ledger state. Values compare by
// their canonical bytes; Text is only used for reporting.
type Value struct {
	Raw  []byte
	Text string
}

// Equal reports whether two values have identical canonical bytes
func (v Value) Equal(other Value) bool {
	return bytes.Equal(v.Raw, other.Raw)
}

func (v Value) String() string {
	if v.Text != "" {
		return v.Text
	}
	return "0x" + common.Bytes2Hex(v.Raw)
}

// AddressValue encodes an address as a left-padded 32 byte word
func AddressValue(addr common.Address) Value {
	return Value{Raw: common.LeftPadBytes(addr.Bytes(), 32), Text: addr.Hex()}
}

// UintValue encodes an unsigned integer as a 32 byte word
func UintValue(n uint64) Value {
	return BigValue(new(big.Int).SetUint64(n))
}

// BigValue encodes a big integer as a 32 byte word
func BigValue(n *big.Int) Value {
	return Value{Raw: common.LeftPadBytes(n.Bytes(), 32), Text: n.String()}
}

// HashValue wraps a 32 byte word
func HashValue(h common.Hash) Value {
	return Value{Raw: h.Bytes(), Text: h.Hex()}
}

// StringValue wraps a decoded string
func StringValue(s string) Value {
	return Value{Raw: []byte(s), Text: fmt.Sprintf("%q", s)}
}

// BoolValue encodes a boolean as a 32 byte word
func BoolValue(b bool) Value {
	if b {
		return Value{Raw: common.LeftPadBytes([]byte{1}, 32), Text: "true"}
	}
	return Value{Raw: make([]byte, 32), Text: "false"}
}

// CodePresent is the expected value for "account has code" checks
var CodePresent = BoolValue(true)
