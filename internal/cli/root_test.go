package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// inProject runs the test from a fresh Foundry project directory
func inProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foundry.toml"), []byte("[profile.default]\nout = \"out\"\n"), 0644))
	t.Setenv("L2DEPLOY_NETWORK", "")
	t.Setenv("L2DEPLOY_PRIVATE_KEY", "")
	t.Setenv("L2DEPLOY_EXTRA_KEYS", "")
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Commands(t *testing.T) {
	cmd := NewRootCmd()
	names := make(map[string]string)
	for _, c := range cmd.Commands() {
		names[c.Name()] = c.GroupID
	}
	assert.Equal(t, "main", names["deploy"])
	assert.Equal(t, "main", names["plan"])
	assert.Equal(t, "registry", names["addresses"])
	assert.Equal(t, "registry", names["status"])
	assert.Contains(t, names, "version")

	for _, flag := range []string{"network", "namespace", "deploy-config", "plan", "json", "debug", "non-interactive", "timeout"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCmd_RunsOutsideProject(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "l2deploy version dev")
}

func TestCommands_OutsideProject(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := execute(t, "plan")
	assert.ErrorContains(t, err, "foundry.toml not found")
}

func TestPlanCmd_DefaultPlan(t *testing.T) {
	inProject(t)

	out, err := execute(t, "plan", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: L1CrossDomainMessengerProxy")
	assert.Contains(t, out, "kind: resolved")

	out, err = execute(t, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "OptimismPortalProxy")
	assert.Contains(t, out, "FaultDisputeGame")

	_, err = execute(t, "plan", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestAddressesCmd_NeedsNetwork(t *testing.T) {
	inProject(t)

	_, err := execute(t, "addresses")
	assert.ErrorIs(t, err, usecase.ErrNoNetwork)

	_, err = execute(t, "addresses", "get", "ProxyAdmin")
	assert.ErrorIs(t, err, usecase.ErrNoNetwork)
}

func TestDeployCmd_NeedsKey(t *testing.T) {
	inProject(t)

	_, err := execute(t, "deploy")
	assert.ErrorContains(t, err, "no private key configured")
}

func TestUnknownNetwork(t *testing.T) {
	inProject(t)

	_, err := execute(t, "status", "-n", "mainnet")
	assert.ErrorContains(t, err, "network 'mainnet' not found")
}
