package ledger

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// fakeBackend mines every transaction on the first receipt poll after the
// one that reports it pending
type fakeBackend struct {
	mu       sync.Mutex
	chainID  *big.Int
	code     map[common.Address][]byte
	nonces   map[common.Address]uint64
	sent     []*types.Transaction
	polls    map[common.Hash]int
	revertTo map[common.Address]bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		chainID:  big.NewInt(31337),
		code:     map[common.Address][]byte{DeterministicDeployer: {0x60}},
		nonces:   make(map[common.Address]uint64),
		polls:    make(map[common.Hash]int),
		revertTo: make(map[common.Address]bool),
	}
}

func (b *fakeBackend) ChainID(ctx context.Context) (*big.Int, error) { return b.chainID, nil }
func (b *fakeBackend) BlockNumber(ctx context.Context) (uint64, error) {
	return 100, nil
}
func (b *fakeBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, n *big.Int) ([]byte, error) {
	return common.LeftPadBytes([]byte{1}, 32), nil
}
func (b *fakeBackend) StorageAt(ctx context.Context, a common.Address, k common.Hash, n *big.Int) ([]byte, error) {
	return common.LeftPadBytes(a.Bytes(), 32), nil
}
func (b *fakeBackend) CodeAt(ctx context.Context, a common.Address, n *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.code[a], nil
}
func (b *fakeBackend) PendingNonceAt(ctx context.Context, a common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nonces[a], nil
}
func (b *fakeBackend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}
func (b *fakeBackend) HeaderByNumber(ctx context.Context, n *big.Int) (*types.Header, error) {
	return &types.Header{BaseFee: big.NewInt(7)}, nil
}
func (b *fakeBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return 100_000, nil
}

func (b *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	from, err := types.Sender(types.LatestSignerForChainID(b.chainID), tx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, tx)
	b.nonces[from] = tx.Nonce() + 1

	switch {
	case tx.To() == nil:
		b.code[crypto.CreateAddress(from, tx.Nonce())] = []byte{0x01}
	case *tx.To() == DeterministicDeployer:
		data := tx.Data()
		salt := common.BytesToHash(data[:32])
		b.code[crypto.CreateAddress2(DeterministicDeployer, salt, crypto.Keccak256(data[32:]))] = []byte{0x01}
	}
	return nil
}

func (b *fakeBackend) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.polls[hash]++
	if b.polls[hash] == 1 {
		return nil, ethereum.NotFound
	}
	for _, tx := range b.sent {
		if tx.Hash() != hash {
			continue
		}
		receipt := &types.Receipt{TxHash: hash, Status: types.ReceiptStatusSuccessful}
		if tx.To() == nil {
			from, _ := types.Sender(types.LatestSignerForChainID(b.chainID), tx)
			receipt.ContractAddress = crypto.CreateAddress(from, tx.Nonce())
		} else if b.revertTo[*tx.To()] {
			receipt.Status = types.ReceiptStatusFailed
		}
		return receipt, nil
	}
	return nil, ethereum.NotFound
}

func newTestClient(t *testing.T, backend *fakeBackend) (*Client, common.Address) {
	t.Helper()
	keys, err := NewKeyring([]string{"0x" + testKey})
	require.NoError(t, err)

	c, err := NewClient(context.Background(), backend, keys, 31337, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	c.SetPollInterval(time.Millisecond)
	return c, keys.Default()
}

func TestNewClient_ChainIDMismatch(t *testing.T) {
	keys, err := NewKeyring([]string{testKey})
	require.NoError(t, err)

	_, err = NewClient(context.Background(), newFakeBackend(), keys, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "chain ID mismatch")
}

func TestKeyring(t *testing.T) {
	t.Run("rejects empty", func(t *testing.T) {
		_, err := NewKeyring([]string{"", "  "})
		assert.Error(t, err)
	})

	t.Run("rejects malformed", func(t *testing.T) {
		_, err := NewKeyring([]string{"0xzz"})
		assert.ErrorContains(t, err, "invalid private key #1")
	})

	t.Run("deduplicates", func(t *testing.T) {
		k, err := NewKeyring([]string{testKey, "0x" + testKey})
		require.NoError(t, err)
		assert.Len(t, k.Addresses(), 1)
	})
}

func TestClient_Broadcast(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown sender", func(t *testing.T) {
		c, _ := newTestClient(t, newFakeBackend())
		stranger := common.HexToAddress("0x1111111111111111111111111111111111111111")

		called := false
		err := c.Broadcast(ctx, stranger, func(usecase.Broadcaster) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, domain.ErrNoSigner)
		assert.False(t, called)
		assert.False(t, c.CanSign(stranger))
	})

	t.Run("unsalted deploy and call track the nonce", func(t *testing.T) {
		backend := newFakeBackend()
		c, signer := newTestClient(t, backend)
		target := common.HexToAddress("0x2222222222222222222222222222222222222222")

		var deployed common.Address
		err := c.Broadcast(ctx, signer, func(b usecase.Broadcaster) error {
			var err error
			deployed, err = b.Deploy(ctx, []byte{0x60, 0x80}, nil)
			if err != nil {
				return err
			}
			_, err = b.Call(ctx, target, []byte{0xde, 0xad})
			return err
		})
		require.NoError(t, err)

		assert.Equal(t, crypto.CreateAddress(signer, 0), deployed)
		require.Len(t, backend.sent, 2)
		assert.Equal(t, uint64(0), backend.sent[0].Nonce())
		assert.Equal(t, uint64(1), backend.sent[1].Nonce())
		assert.Equal(t, uint64(120_000), backend.sent[1].Gas())
		assert.Equal(t, big.NewInt(1_000_000_014), backend.sent[1].GasFeeCap())
		assert.Equal(t, types.DynamicFeeTxType, int(backend.sent[1].Type()))
	})

	t.Run("salted deploy lands at the predicted address once", func(t *testing.T) {
		backend := newFakeBackend()
		c, signer := newTestClient(t, backend)
		code := []byte{0x60, 0x80, 0x60, 0x40}
		salt := common.HexToHash("0x01")

		predicted := c.PredictAddress(code, salt)
		for i := 0; i < 2; i++ {
			err := c.Broadcast(ctx, signer, func(b usecase.Broadcaster) error {
				addr, err := b.Deploy(ctx, code, &salt)
				if err != nil {
					return err
				}
				assert.Equal(t, predicted, addr)
				return nil
			})
			require.NoError(t, err)
		}

		require.Len(t, backend.sent, 1, "second deploy must find the code and skip")
		assert.Equal(t, DeterministicDeployer, *backend.sent[0].To())
		assert.Equal(t, append(salt.Bytes(), code...), backend.sent[0].Data())
	})

	t.Run("salted deploy without factory", func(t *testing.T) {
		backend := newFakeBackend()
		delete(backend.code, DeterministicDeployer)
		c, signer := newTestClient(t, backend)
		salt := common.Hash{}

		err := c.Broadcast(ctx, signer, func(b usecase.Broadcaster) error {
			_, err := b.Deploy(ctx, []byte{0x60}, &salt)
			return err
		})
		assert.ErrorContains(t, err, "deterministic deployment proxy not found")
	})

	t.Run("reverted call fails", func(t *testing.T) {
		backend := newFakeBackend()
		target := common.HexToAddress("0x3333333333333333333333333333333333333333")
		backend.revertTo[target] = true
		c, signer := newTestClient(t, backend)

		err := c.Broadcast(ctx, signer, func(b usecase.Broadcaster) error {
			_, err := b.Call(ctx, target, nil)
			return err
		})
		assert.ErrorContains(t, err, "reverted")
	})

	t.Run("broadcaster is unusable after release", func(t *testing.T) {
		c, signer := newTestClient(t, newFakeBackend())

		var leaked usecase.Broadcaster
		require.NoError(t, c.Broadcast(ctx, signer, func(b usecase.Broadcaster) error {
			leaked = b
			return nil
		}))

		_, err := leaked.Call(ctx, common.Address{}, nil)
		assert.ErrorIs(t, err, domain.ErrBroadcastClosed)
		_, err = leaked.Deploy(ctx, []byte{0x60}, nil)
		assert.ErrorIs(t, err, domain.ErrBroadcastClosed)
	})

	t.Run("session is released when fn fails", func(t *testing.T) {
		c, signer := newTestClient(t, newFakeBackend())

		err := c.Broadcast(ctx, signer, func(b usecase.Broadcaster) error {
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)

		done := make(chan struct{})
		go func() {
			_ = c.Broadcast(ctx, signer, func(usecase.Broadcaster) error { return nil })
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("sender lock was not released")
		}
	})

	t.Run("receipt wait honours cancellation", func(t *testing.T) {
		backend := newFakeBackend()
		c, signer := newTestClient(t, backend)
		c.SetPollInterval(time.Hour)

		cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		err := c.Broadcast(cctx, signer, func(b usecase.Broadcaster) error {
			_, err := b.Call(cctx, common.Address{}, nil)
			return err
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestClient_Reads(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, newFakeBackend())

	addr := common.HexToAddress("0x4444444444444444444444444444444444444444")
	word, err := c.StorageAt(ctx, addr, common.Hash{})
	require.NoError(t, err)
	assert.Equal(t, common.BytesToHash(addr.Bytes()), word)

	n, err := c.BlockNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), n)

	id, err := c.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), id)
}
