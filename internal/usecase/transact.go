package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Transact sends data to `to` from `from` in a session of its own
func Transact(ctx context.Context, ledger LedgerClient, from, to common.Address, data []byte) error {
	return ledger.Broadcast(ctx, from, func(b Broadcaster) error {
		_, err := b.Call(ctx, to, data)
		return err
	})
}
