package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

func init() {
	color.NoColor = true
}

func TestReportRenderer(t *testing.T) {
	pa := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	report := &models.Report{
		ChainID:   31337,
		Namespace: "default",
		Duration:  1500 * time.Millisecond,
		Steps: []models.StepResult{
			{Phase: models.PhaseControllers, Unit: "ProxyAdmin", Action: models.ActionDeployed, Address: pa},
			{Phase: models.PhaseControllers, Unit: "ProxyAdmin", Field: "addressManager", Action: models.ActionUnchanged},
			{Phase: models.PhaseExtensions, Unit: "DisputeGameFactoryProxy", Field: "gameImpls(0)", Action: models.ActionSkipped, Detail: "already bound"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewReportRenderer(&buf).Render(report))

	out := buf.String()
	assert.Contains(t, out, "chain 31337, namespace default")
	assert.Contains(t, out, "Controllers")
	assert.Contains(t, out, "Extensions")
	assert.NotContains(t, out, "Proxies")
	assert.Contains(t, out, pa.Hex())
	assert.Contains(t, out, "already bound")
	assert.Contains(t, out, "3 steps, 1 mutating, in 1.5s")
}

func TestAddressesRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewAddressesRenderer(&buf)

	require.NoError(t, r.Render(&usecase.AddressListResult{Scope: models.Scope{ChainID: 10, Namespace: "default"}}))
	assert.Equal(t, "No addresses recorded for chain 10/default\n", buf.String())

	buf.Reset()
	entry := models.AddressEntry{Name: "ProxyAdmin", Address: common.HexToAddress("0x02")}
	require.NoError(t, r.Render(&usecase.AddressListResult{
		Scope:   models.Scope{ChainID: 10, Namespace: "default"},
		Entries: []models.AddressEntry{entry},
	}))
	assert.Contains(t, buf.String(), "ProxyAdmin")
	assert.Contains(t, buf.String(), entry.Address.Hex())

	buf.Reset()
	require.NoError(t, r.RenderEntry(entry))
	assert.Equal(t, entry.Address.Hex()+"\n", buf.String())
}

func TestStatusRenderer(t *testing.T) {
	scope := models.Scope{ChainID: 10, Namespace: "default"}
	tests := []struct {
		name   string
		result *usecase.StatusResult
		want   []string
	}{
		{
			name: "converged",
			result: &usecase.StatusResult{Scope: scope, Entries: []models.EntryStatus{
				{AddressEntry: models.AddressEntry{Name: "ProxyAdmin"}, HasCode: true, CodeSize: 42},
			}},
			want: []string{"42 bytes", "Every plan unit is recorded and deployed"},
		},
		{
			name: "stale",
			result: &usecase.StatusResult{Scope: scope, Entries: []models.EntryStatus{
				{AddressEntry: models.AddressEntry{Name: "ProxyAdmin"}},
			}},
			want: []string{"no code", "1 recorded addresses have no code"},
		},
		{
			name:   "incomplete",
			result: &usecase.StatusResult{Scope: scope, Missing: []string{"SystemConfigProxy"}},
			want:   []string{"Not yet deployed (1)", "SystemConfigProxy", "run deploy to converge"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewStatusRenderer(&buf).Render(tt.result))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestPlanRenderer(t *testing.T) {
	plan := &models.Plan{
		Controllers: models.ControllerUnits{
			AddressManager: models.Unit{Name: "AddressManager"},
			ProxyAdmin:     models.Unit{Name: "ProxyAdmin"},
		},
		Implementations: []models.Unit{{Name: "L1StandardBridge"}},
		Proxies: []models.ProxySpec{
			{Name: "L1StandardBridgeProxy", Kind: models.ProxyKindChugSplash, Implementation: "L1StandardBridge"},
		},
		Owned: []string{"ProxyAdmin"},
	}
	view := &usecase.PlanView{Plan: plan, Recorded: map[string]common.Address{"ProxyAdmin": common.HexToAddress("0x02")}}

	var buf bytes.Buffer
	r := NewPlanRenderer(&buf)
	require.NoError(t, r.Render(view))
	assert.Contains(t, buf.String(), "chugsplash")
	assert.Contains(t, buf.String(), common.HexToAddress("0x02").Hex())
	assert.NotContains(t, buf.String(), "Extensions")

	buf.Reset()
	require.NoError(t, r.RenderYAML(view))
	assert.Contains(t, buf.String(), "kind: chugsplash")
	assert.Contains(t, buf.String(), "name: L1StandardBridgeProxy")
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "❌ No network configured (use --network)", FormatError("lookup x: no network configured (use --network)"))
}
