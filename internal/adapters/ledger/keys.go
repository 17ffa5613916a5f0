package ledger

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Keyring holds the private keys the client may send from. The first key
// is the default signer.
type Keyring struct {
	keys  map[common.Address]*ecdsa.PrivateKey
	order []common.Address
}

// NewKeyring parses hex encoded private keys, with or without 0x prefix
func NewKeyring(hexKeys []string) (*Keyring, error) {
	k := &Keyring{keys: make(map[common.Address]*ecdsa.PrivateKey)}
	for i, raw := range hexKeys {
		raw = strings.TrimPrefix(strings.TrimSpace(raw), "0x")
		if raw == "" {
			continue
		}
		key, err := crypto.HexToECDSA(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid private key #%d: %w", i+1, err)
		}
		addr := crypto.PubkeyToAddress(key.PublicKey)
		if _, dup := k.keys[addr]; dup {
			continue
		}
		k.keys[addr] = key
		k.order = append(k.order, addr)
	}
	if len(k.order) == 0 {
		return nil, fmt.Errorf("no private key configured (set L2DEPLOY_PRIVATE_KEY)")
	}
	return k, nil
}

// Default returns the default signer
func (k *Keyring) Default() common.Address {
	return k.order[0]
}

// Key returns the private key for addr
func (k *Keyring) Key(addr common.Address) (*ecdsa.PrivateKey, bool) {
	key, ok := k.keys[addr]
	return key, ok
}

// Addresses returns every address the keyring can sign for
func (k *Keyring) Addresses() []common.Address {
	return append([]common.Address(nil), k.order...)
}
