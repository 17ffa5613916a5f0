package config

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
)

func TestLoadDeployConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
		check   func(t *testing.T, cfg *config.DeployConfig)
	}{
		{
			name:    "valid",
			content: "start_block = 0\n" + testDeployConfig,
			check: func(t *testing.T, cfg *config.DeployConfig) {
				owner, err := cfg.FinalOwnerAddress()
				require.NoError(t, err)
				assert.Equal(t, common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), owner)
				assert.Equal(t, crypto.Keccak256Hash([]byte("ethers phoenix")), cfg.ImplSaltHash())
				require.NotNil(t, cfg.StartBlock)
				assert.Equal(t, uint64(0), *cfg.StartBlock)
				assert.False(t, cfg.Environment.IsProduction())
			},
		},
		{
			name: "hex salt is used as is",
			content: `
final_owner = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
environment = "production"
impl_salt = "0x00000000000000000000000000000000000000000000000000000000000000ff"
`,
			check: func(t *testing.T, cfg *config.DeployConfig) {
				assert.Equal(t, common.HexToHash("0xff"), cfg.ImplSaltHash())
				assert.Nil(t, cfg.StartBlock)
				assert.True(t, cfg.Environment.IsProduction())
			},
		},
		{
			name:    "unknown key",
			content: "final_ower = \"0x01\"\n" + testDeployConfig,
			wantErr: "unknown keys: final_ower",
		},
		{
			name: "zero final owner",
			content: `
final_owner = "0x0000000000000000000000000000000000000000"
environment = "devnet"
`,
			wantErr: "zero address",
		},
		{
			name: "bad environment",
			content: `
final_owner = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
environment = "mainnet"
`,
			wantErr: "unknown environment",
		},
		{
			name: "missing environment",
			content: `
final_owner = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
`,
			wantErr: "environment is required",
		},
		{
			name: "short prestate",
			content: `
final_owner = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
environment = "devnet"

[prestate]
value = "0x1234"
`,
			wantErr: "32 byte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "deploy.toml")
			writeFile(t, path, tt.content)

			cfg, err := LoadDeployConfig(path)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
