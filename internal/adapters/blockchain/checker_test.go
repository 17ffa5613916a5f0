package blockchain

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
)

// ethService answers the two calls the checker makes
type ethService struct {
	chainID int64
	code    map[common.Address]hexutil.Bytes
}

func (s *ethService) ChainId() (*hexutil.Big, error) {
	return (*hexutil.Big)(big.NewInt(s.chainID)), nil
}

func (s *ethService) GetCode(addr common.Address, block string) (hexutil.Bytes, error) {
	return s.code[addr], nil
}

func startNode(t *testing.T, svc *ethService) string {
	t.Helper()
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", svc))
	ts := httptest.NewServer(server)
	t.Cleanup(func() {
		ts.Close()
		server.Stop()
	})
	return ts.URL
}

func newTestChecker() *CheckerAdapter {
	return NewCheckerAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCheckerAdapter(t *testing.T) {
	ctx := context.Background()
	deployed := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	url := startNode(t, &ethService{
		chainID: 900,
		code:    map[common.Address]hexutil.Bytes{deployed: {0x60, 0x80}},
	})

	t.Run("learns the chain id", func(t *testing.T) {
		c := newTestChecker()
		defer c.Close()

		chainID, err := c.Connect(ctx, &config.Network{Name: "devnet", RPCURL: url})
		require.NoError(t, err)
		assert.Equal(t, uint64(900), chainID)

		code, err := c.CodeAt(ctx, deployed)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80}, code)

		code, err = c.CodeAt(ctx, common.HexToAddress("0x01"))
		require.NoError(t, err)
		assert.Empty(t, code)
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		c := newTestChecker()
		_, err := c.Connect(ctx, &config.Network{Name: "devnet", RPCURL: url, ChainID: 1})
		assert.ErrorContains(t, err, "chain ID mismatch: expected 1, got 900")
	})

	t.Run("not connected", func(t *testing.T) {
		_, err := newTestChecker().CodeAt(ctx, deployed)
		assert.ErrorContains(t, err, "not connected")
	})
}
