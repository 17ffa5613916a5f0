package interactive

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// ConfirmAdapter asks yes/no questions on the terminal
type ConfirmAdapter struct {
	nonInteractive bool
	stdin          io.ReadCloser
	stdout         io.WriteCloser
}

// NewConfirmAdapter creates a new confirm adapter
func NewConfirmAdapter(cfg *config.RuntimeConfig) *ConfirmAdapter {
	return &ConfirmAdapter{nonInteractive: cfg.NonInteractive}
}

// Confirm returns true when the operator answers yes. Non-interactive runs
// never prompt and are treated as confirmed.
func (c *ConfirmAdapter) Confirm(label string) (bool, error) {
	if c.nonInteractive {
		return true, nil
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     c.stdin,
		Stdout:    c.stdout,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return true, nil
}

var _ usecase.Confirmer = (*ConfirmAdapter)(nil)
