package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// AddressesRenderer renders the address registry
type AddressesRenderer struct {
	out io.Writer
}

// NewAddressesRenderer creates a new addresses renderer
func NewAddressesRenderer(out io.Writer) *AddressesRenderer {
	return &AddressesRenderer{out: out}
}

// Render prints the recorded entries of one scope
func (r *AddressesRenderer) Render(result *usecase.AddressListResult) error {
	if len(result.Entries) == 0 {
		fmt.Fprintf(r.out, "No addresses recorded for %s\n", result.Scope)
		return nil
	}

	sectionHeaderStyle.Fprintf(r.out, "Addresses (%s)\n", result.Scope)
	t := newTable(r.out)
	t.AppendHeader(table.Row{"Name", "Address"})
	for _, e := range result.Entries {
		t.AppendRow(table.Row{nameStyle.Sprint(e.Name), addressText(e.Address)})
	}
	t.Render()
	return nil
}

// RenderEntry prints a single address, plain so it can be captured by scripts
func (r *AddressesRenderer) RenderEntry(entry models.AddressEntry) error {
	_, err := fmt.Fprintln(r.out, entry.Address.Hex())
	return err
}

func addressText(addr common.Address) string {
	if addr == (common.Address{}) {
		return ""
	}
	return addressStyle.Sprint(addr.Hex())
}
