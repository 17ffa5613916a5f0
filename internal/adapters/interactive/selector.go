package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/l2deploy/internal/domain"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// maxSuggestions bounds the names listed in a not found error
const maxSuggestions = 3

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	nonInteractive bool
	stdin          io.ReadCloser
	stdout         io.WriteCloser
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{nonInteractive: cfg.NonInteractive}
}

// SelectAddress resolves query against the recorded names. A single fuzzy
// match is taken as is; several matches are offered for selection, or
// reported as suggestions in non-interactive mode.
func (s *SelectorAdapter) SelectAddress(ctx context.Context, query string, entries []models.AddressEntry) (models.AddressEntry, error) {
	names := lo.Map(entries, func(e models.AddressEntry, _ int) string { return e.Name })

	for _, e := range entries {
		if strings.EqualFold(e.Name, query) {
			return e, nil
		}
	}

	matches := fuzzy.Find(query, names)
	switch {
	case len(matches) == 0:
		return models.AddressEntry{}, &domain.NotFoundError{Name: query}
	case len(matches) == 1:
		return entries[matches[0].Index], nil
	case s.nonInteractive:
		suggestions := lo.Map(matches, func(m fuzzy.Match, _ int) string { return m.Str })
		if len(suggestions) > maxSuggestions {
			suggestions = suggestions[:maxSuggestions]
		}
		return models.AddressEntry{}, &domain.NotFoundError{Name: query, Suggestions: suggestions}
	}

	candidates := lo.Map(matches, func(m fuzzy.Match, _ int) models.AddressEntry { return entries[m.Index] })
	options := formatAddressOptions(candidates)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             fmt.Sprintf("%q matches several entries", query),
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
		Stdin:             s.stdin,
		Stdout:            s.stdout,
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return models.AddressEntry{}, fmt.Errorf("selection cancelled: %w", err)
	}
	return candidates[index], nil
}

// formatAddressOptions creates display strings for entry selection
func formatAddressOptions(entries []models.AddressEntry) []string {
	return lo.Map(entries, func(e models.AddressEntry, _ int) string {
		name := color.New(color.FgWhite, color.Bold).Sprint(e.Name)
		addr := color.New(color.FgBlue).Sprint(e.Address.Hex())
		return fmt.Sprintf("%s (%s)", name, addr)
	})
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.AddressSelector = (*SelectorAdapter)(nil)
