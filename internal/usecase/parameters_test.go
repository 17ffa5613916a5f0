package usecase_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// mockRegistry is an in-memory AddressRegistry
type mockRegistry struct {
	entries map[string]common.Address
}

func (m *mockRegistry) Put(ctx context.Context, name string, addr common.Address) error {
	if existing, ok := m.entries[name]; ok && existing != addr {
		return &domain.ConflictError{Name: name, Existing: existing.Hex(), Attempted: addr.Hex()}
	}
	m.entries[name] = addr
	return nil
}

func (m *mockRegistry) Get(ctx context.Context, name string) (common.Address, error) {
	if addr, ok := m.entries[name]; ok {
		return addr, nil
	}
	return common.Address{}, &domain.NotFoundError{Name: name}
}

func (m *mockRegistry) Lookup(ctx context.Context, name string) (common.Address, bool) {
	addr, ok := m.entries[name]
	return addr, ok
}

func (m *mockRegistry) All(ctx context.Context) []models.AddressEntry {
	var out []models.AddressEntry
	for name, addr := range m.entries {
		out = append(out, models.AddressEntry{Name: name, Address: addr})
	}
	return out
}

func (m *mockRegistry) Scope() models.Scope {
	return models.Scope{ChainID: 31337, Namespace: "default"}
}

func TestParameterResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	portal := common.HexToAddress("0x00000000000000000000000000000000000000b1")
	signer := common.HexToAddress("0x00000000000000000000000000000000000000b2")
	salt := common.HexToHash("0x01")

	r := usecase.NewParameterResolver(&mockRegistry{entries: map[string]common.Address{"OptimismPortalProxy": portal}})
	env := usecase.ParamEnv{
		FinalOwner: finalOwner,
		Signer:     signer,
		StartBlock: 0,
		ImplSalt:   salt,
		Params:     map[string]any{"l2_chain_id": int64(901), "batcher": "0x00000000000000000000000000000000000000b3"},
	}

	tests := []struct {
		name string
		arg  any
		want any
	}{
		{"registry address", "${addr:OptimismPortalProxy}", portal},
		{"final owner", "${final_owner}", finalOwner},
		{"signer", "${signer}", signer},
		{"explicit zero start block", "${start_block}", uint64(0)},
		{"impl salt", "${impl_salt}", salt},
		{"config parameter", "${cfg:l2_chain_id}", int64(901)},
		{"literal string", "OVM_L1CrossDomainMessenger", "OVM_L1CrossDomainMessenger"},
		{"embedded reference is a literal", "prefix ${signer}", "prefix ${signer}"},
		{"literal number", 73, 73},
		{"nested list", []any{"${signer}", []any{"${cfg:batcher}"}}, []any{signer, []any{"0x00000000000000000000000000000000000000b3"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveValue(ctx, env, tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParameterResolver_Errors(t *testing.T) {
	ctx := context.Background()
	r := usecase.NewParameterResolver(&mockRegistry{entries: map[string]common.Address{}})
	env := usecase.ParamEnv{Params: map[string]any{"known": 1}}

	tests := []struct {
		name    string
		arg     string
		wantErr string
	}{
		{"unrecorded unit", "${addr:SystemConfigProxy}", "not found"},
		{"unit name missing", "${addr}", "needs a unit name"},
		{"unset parameter", "${cfg:missing}", `parameter "missing" is not set`},
		{"prestate outside extensions", "${prestate}", "only available to extension units"},
		{"game type outside extensions", "${game_type}", "only available to extension units"},
		{"unknown reference", "${nope}", "unknown reference"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(ctx, env, []any{tt.arg})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), "argument 0")
		})
	}

	_, err := r.ResolveValue(ctx, env, "${addr:SystemConfigProxy}")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParamEnv_WithExtension(t *testing.T) {
	ctx := context.Background()
	r := usecase.NewParameterResolver(&mockRegistry{entries: map[string]common.Address{}})
	base := usecase.ParamEnv{Signer: finalOwner}

	env := base.WithExtension(prestate, 1)
	got, err := r.Resolve(ctx, env, []any{"${game_type}", "${prestate}", "${signer}"})
	require.NoError(t, err)
	assert.Equal(t, []any{uint32(1), prestate, finalOwner}, got)

	assert.Nil(t, base.Prestate, "WithExtension must not modify the receiver")
	assert.Nil(t, base.GameType)
}
