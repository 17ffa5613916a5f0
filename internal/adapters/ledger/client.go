package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// DeterministicDeployer is the CREATE2 factory salted deploys go through.
// Calldata is salt ‖ initcode; the created address is returned raw.
var DeterministicDeployer = common.HexToAddress("0x4e59b44847b379578588920cA78FbF26c0B4956C")

// Backend is the subset of *ethclient.Client the client uses
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Client implements usecase.LedgerClient over a JSON-RPC backend
type Client struct {
	backend      Backend
	keys         *Keyring
	chainID      *big.Int
	pollInterval time.Duration
	log          *slog.Logger

	mu       sync.Mutex
	sessions map[common.Address]*sync.Mutex
}

// Dial connects to the network's RPC endpoint
func Dial(ctx context.Context, network *config.Network, keys *Keyring, log *slog.Logger) (*Client, error) {
	if network == nil || network.RPCURL == "" {
		return nil, fmt.Errorf("no network configured (use --network)")
	}
	rpc, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	return NewClient(ctx, rpc, keys, network.ChainID, log)
}

// NewClient wraps backend. A non-zero expectedChainID must match the backend.
func NewClient(ctx context.Context, backend Backend, keys *Keyring, expectedChainID uint64, log *slog.Logger) (*Client, error) {
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if expectedChainID != 0 && chainID.Uint64() != expectedChainID {
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", expectedChainID, chainID.Uint64())
	}

	return &Client{
		backend:      backend,
		keys:         keys,
		chainID:      chainID,
		pollInterval: time.Second,
		log:          log.With("component", "ledger"),
		sessions:     make(map[common.Address]*sync.Mutex),
	}, nil
}

// SetPollInterval changes how often receipts are polled
func (c *Client) SetPollInterval(d time.Duration) {
	c.pollInterval = d
}

// Signer returns the default sender
func (c *Client) Signer() common.Address {
	return c.keys.Default()
}

// CanSign reports whether a key for addr is loaded
func (c *Client) CanSign(addr common.Address) bool {
	_, ok := c.keys.Key(addr)
	return ok
}

// ChainID returns the connected chain's ID
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	return c.chainID.Uint64(), nil
}

// BlockNumber returns the latest block number
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.backend.BlockNumber(ctx)
}

// View executes a read-only call against the latest block
func (c *Client) View(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call to %s failed: %w", to.Hex(), err)
	}
	return out, nil
}

// StorageAt reads one storage word
func (c *Client) StorageAt(ctx context.Context, addr common.Address, slot common.Hash) (common.Hash, error) {
	word, err := c.backend.StorageAt(ctx, addr, slot, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to read slot %s of %s: %w", slot.Hex(), addr.Hex(), err)
	}
	return common.BytesToHash(word), nil
}

// CodeAt returns the runtime code at addr
func (c *Client) CodeAt(ctx context.Context, addr common.Address) ([]byte, error) {
	return c.backend.CodeAt(ctx, addr, nil)
}

// PredictAddress returns the address a salted deploy of code lands at
func (c *Client) PredictAddress(code []byte, salt common.Hash) common.Address {
	return crypto.CreateAddress2(DeterministicDeployer, salt, crypto.Keccak256(code))
}

func (c *Client) senderLock(from common.Address) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.sessions[from]
	if !ok {
		lock = &sync.Mutex{}
		c.sessions[from] = lock
	}
	return lock
}

var _ usecase.LedgerClient = (*Client)(nil)
