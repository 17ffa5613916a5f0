package artifacts

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
)

const proxyArtifact = `{
	"abi": [{"type":"constructor","inputs":[{"name":"_admin","type":"address"}]}],
	"bytecode": {"object": "0x6080604052", "linkReferences": {}},
	"deployedBytecode": {"object": "0x6080"},
	"metadata": {"settings": {"compilationTarget": {"src/universal/Proxy.sol": "Proxy"}}}
}`

func writeArtifact(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestRepository(t *testing.T, root string) *Repository {
	t.Helper()
	cfg := &config.RuntimeConfig{ProjectRoot: root, FoundryConfig: &config.FoundryConfig{}}
	return NewRepository(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRepository_GetContract(t *testing.T) {
	ctx := context.Background()

	t.Run("by name and by path", func(t *testing.T) {
		root := t.TempDir()
		writeArtifact(t, root, "out/Proxy.sol/Proxy.json", proxyArtifact)
		writeArtifact(t, root, "out/build-info/abc.json", `{"id":"abc"}`)
		r := newTestRepository(t, root)

		byName, err := r.GetContract(ctx, "Proxy")
		require.NoError(t, err)
		assert.Equal(t, "src/universal/Proxy.sol", byName.Path)
		assert.Equal(t, filepath.Join("out", "Proxy.sol", "Proxy.json"), byName.ArtifactPath)

		byPath, err := r.GetContract(ctx, "src/universal/Proxy.sol:Proxy")
		require.NoError(t, err)
		assert.Same(t, byName, byPath)

		code, err := byName.Code()
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, code)

		parsed, err := byName.ABI()
		require.NoError(t, err)
		assert.Len(t, parsed.Constructor.Inputs, 1)
	})

	t.Run("missing artifact", func(t *testing.T) {
		root := t.TempDir()
		writeArtifact(t, root, "out/Proxy.sol/Proxy.json", proxyArtifact)
		r := newTestRepository(t, root)

		_, err := r.GetContract(ctx, "AddressManager")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ambiguous name", func(t *testing.T) {
		root := t.TempDir()
		writeArtifact(t, root, "out/Proxy.sol/Proxy.json", proxyArtifact)
		writeArtifact(t, root, "out/legacy/Proxy.sol/Proxy.json", `{
			"abi": [],
			"bytecode": {"object": "0x60"},
			"metadata": {"settings": {"compilationTarget": {"src/legacy/Proxy.sol": "Proxy"}}}
		}`)
		r := newTestRepository(t, root)

		_, err := r.GetContract(ctx, "Proxy")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous")

		_, err = r.GetContract(ctx, "src/legacy/Proxy.sol:Proxy")
		assert.NoError(t, err)
	})

	t.Run("out directory missing", func(t *testing.T) {
		r := newTestRepository(t, t.TempDir())
		_, err := r.GetContract(ctx, "Proxy")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "forge build")
	})

	t.Run("linked bytecode is rejected", func(t *testing.T) {
		root := t.TempDir()
		writeArtifact(t, root, "out/Lib.sol/Uses.json", `{
			"abi": [],
			"bytecode": {"object": "0x60__$abc$__", "linkReferences": {"src/Lib.sol": {"Lib": []}}},
			"metadata": {"settings": {"compilationTarget": {"src/Uses.sol": "Uses"}}}
		}`)
		r := newTestRepository(t, root)

		c, err := r.GetContract(ctx, "Uses")
		require.NoError(t, err)
		_, err = c.Code()
		assert.ErrorContains(t, err, "linking")
	})
}
