package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// gas estimate headroom, in percent
const gasHeadroom = 20

// Broadcast opens a session for from, runs fn and releases the session on
// every exit path. Sessions for the same sender are serialized; the nonce is
// fetched once per session and tracked locally.
func (c *Client) Broadcast(ctx context.Context, from common.Address, fn func(usecase.Broadcaster) error) error {
	key, ok := c.keys.Key(from)
	if !ok {
		return fmt.Errorf("%w %s", domain.ErrNoSigner, from.Hex())
	}

	lock := c.senderLock(from)
	lock.Lock()
	defer lock.Unlock()

	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return fmt.Errorf("failed to get nonce for %s: %w", from.Hex(), err)
	}

	s := &session{client: c, from: from, key: key, nonce: nonce}
	defer s.release()

	return fn(s)
}

type session struct {
	client *Client
	from   common.Address
	key    *ecdsa.PrivateKey
	nonce  uint64
	closed bool
}

func (s *session) release() {
	s.closed = true
}

func (s *session) From() common.Address {
	return s.from
}

// Deploy creates a contract. Salted deploys that find code at the predicted
// address return it without sending a transaction.
func (s *session) Deploy(ctx context.Context, code []byte, salt *common.Hash) (common.Address, error) {
	if s.closed {
		return common.Address{}, domain.ErrBroadcastClosed
	}
	c := s.client

	if salt == nil {
		receipt, err := s.send(ctx, nil, code)
		if err != nil {
			return common.Address{}, err
		}
		c.log.Info("deployed", "address", receipt.ContractAddress.Hex(), "tx", receipt.TxHash.Hex())
		return receipt.ContractAddress, nil
	}

	factoryCode, err := c.backend.CodeAt(ctx, DeterministicDeployer, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to check deterministic deployer: %w", err)
	}
	if len(factoryCode) == 0 {
		return common.Address{}, fmt.Errorf("deterministic deployment proxy not found at %s", DeterministicDeployer.Hex())
	}

	predicted := c.PredictAddress(code, *salt)
	existing, err := c.backend.CodeAt(ctx, predicted, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to check code at %s: %w", predicted.Hex(), err)
	}
	if len(existing) > 0 {
		c.log.Debug("salted unit already deployed", "address", predicted.Hex())
		return predicted, nil
	}

	data := make([]byte, 0, common.HashLength+len(code))
	data = append(data, salt.Bytes()...)
	data = append(data, code...)
	to := DeterministicDeployer
	receipt, err := s.send(ctx, &to, data)
	if err != nil {
		return common.Address{}, err
	}

	deployed, err := c.backend.CodeAt(ctx, predicted, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to check code at %s: %w", predicted.Hex(), err)
	}
	if len(deployed) == 0 {
		return common.Address{}, fmt.Errorf("salted deploy in %s left no code at %s", receipt.TxHash.Hex(), predicted.Hex())
	}
	c.log.Info("deployed", "address", predicted.Hex(), "salt", salt.Hex(), "tx", receipt.TxHash.Hex())
	return predicted, nil
}

// Call sends data to an existing contract
func (s *session) Call(ctx context.Context, to common.Address, data []byte) (common.Hash, error) {
	if s.closed {
		return common.Hash{}, domain.ErrBroadcastClosed
	}
	receipt, err := s.send(ctx, &to, data)
	if err != nil {
		return common.Hash{}, err
	}
	return receipt.TxHash, nil
}

func (s *session) send(ctx context.Context, to *common.Address, data []byte) (*types.Receipt, error) {
	c := s.client

	tip, err := c.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas tip: %w", err)
	}
	head, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest header: %w", err)
	}
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:      s.from,
		To:        to,
		GasFeeCap: feeCap,
		GasTipCap: tip,
		Data:      data,
	})
	if err != nil {
		return nil, fmt.Errorf("gas estimation failed: %w", err)
	}
	gas += gas * gasHeadroom / 100

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     s.nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        to,
		Data:      data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	s.nonce++
	c.log.Debug("sent transaction", "hash", signed.Hash().Hex(), "from", s.from.Hex(), "nonce", signed.Nonce())

	receipt, err := c.waitMined(ctx, signed.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction %s reverted", signed.Hash().Hex())
	}
	return receipt, nil
}

func (c *Client) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to get receipt for %s: %w", hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", hash.Hex(), ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
}
