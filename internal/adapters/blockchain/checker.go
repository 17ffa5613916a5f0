package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// CheckerAdapter reads chain state over a plain RPC connection. It holds no
// keys, so read-only commands can use it without a signer.
type CheckerAdapter struct {
	client *ethclient.Client
	log    *slog.Logger
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter(log *slog.Logger) *CheckerAdapter {
	return &CheckerAdapter{log: log.With("component", "CheckerAdapter")}
}

// Connect dials the network and returns its chain ID. A chain ID already set
// on the network must match the endpoint.
func (c *CheckerAdapter) Connect(ctx context.Context, network *config.Network) (uint64, error) {
	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return 0, fmt.Errorf("failed to get chain ID from %s: %w", network.Name, err)
	}

	if network.ChainID != 0 && network.ChainID != chainID.Uint64() {
		client.Close()
		return 0, fmt.Errorf("chain ID mismatch: expected %d, got %d", network.ChainID, chainID.Uint64())
	}

	c.client = client
	c.log.Debug("connected", "network", network.Name, "chain_id", chainID)
	return chainID.Uint64(), nil
}

// CodeAt returns the code deployed at addr
func (c *CheckerAdapter) CodeAt(ctx context.Context, addr common.Address) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected to blockchain")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code, err := c.client.CodeAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", addr.Hex(), err)
	}
	return code, nil
}

// Close releases the connection
func (c *CheckerAdapter) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

var _ usecase.CodeChecker = (*CheckerAdapter)(nil)
