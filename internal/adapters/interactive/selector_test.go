package interactive

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
)

func testEntries() []models.AddressEntry {
	return []models.AddressEntry{
		{Name: "AddressManager", Address: common.HexToAddress("0x01")},
		{Name: "OptimismPortal", Address: common.HexToAddress("0x02")},
		{Name: "OptimismPortalProxy", Address: common.HexToAddress("0x03")},
		{Name: "ProxyAdmin", Address: common.HexToAddress("0x04")},
	}
}

func TestSelectAddress(t *testing.T) {
	ctx := context.Background()
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})

	t.Run("case insensitive exact name", func(t *testing.T) {
		entry, err := s.SelectAddress(ctx, "proxyadmin", testEntries())
		require.NoError(t, err)
		assert.Equal(t, "ProxyAdmin", entry.Name)
	})

	t.Run("exact name wins over fuzzy matches", func(t *testing.T) {
		entry, err := s.SelectAddress(ctx, "OptimismPortal", testEntries())
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0x02"), entry.Address)
	})

	t.Run("single fuzzy match", func(t *testing.T) {
		entry, err := s.SelectAddress(ctx, "addrmgr", testEntries())
		require.NoError(t, err)
		assert.Equal(t, "AddressManager", entry.Name)
	})

	t.Run("ambiguous in non-interactive mode", func(t *testing.T) {
		_, err := s.SelectAddress(ctx, "portal", testEntries())

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.ElementsMatch(t, []string{"OptimismPortal", "OptimismPortalProxy"}, notFound.Suggestions)
		assert.Contains(t, err.Error(), "did you mean")
	})

	t.Run("no match", func(t *testing.T) {
		_, err := s.SelectAddress(ctx, "zzz", testEntries())
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NotContains(t, err.Error(), "did you mean")
	})
}

func TestCreateFuzzySearchFunc(t *testing.T) {
	items := []string{"OptimismPortalProxy", "SystemConfigProxy"}
	search := createFuzzySearchFunc(items)

	assert.True(t, search("", 0))
	assert.True(t, search("portal", 0))
	assert.False(t, search("portal", 1))
	assert.True(t, search("sysprx", 1))
}

func TestConfirm_NonInteractive(t *testing.T) {
	ok, err := NewConfirmAdapter(&config.RuntimeConfig{NonInteractive: true}).Confirm("Deploy to production")
	require.NoError(t, err)
	assert.True(t, ok)
}
