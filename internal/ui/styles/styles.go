// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Semantic color names
	AccentColor   = lipgloss.AdaptiveColor{Light: "#1F77B4", Dark: "#1F77B4"} // Headers, bars, highlights
	SubtleColor   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#696969"} // Hints, help text, borders
	PositiveColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#73F59F"} // Growth
	NegativeColor = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF8787"} // Decline
	TextColor     = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"} // Main text

	// Headline indicator strip
	KPILabelStyle = lipgloss.NewStyle().Foreground(SubtleColor)
	KPIValueStyle = lipgloss.NewStyle().Bold(true).Foreground(TextColor)
	KPIBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 2)

	// Panels
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)
	FocusedPanelStyle = PanelStyle.
				BorderForeground(AccentColor)

	// Growth table cells
	PositiveStyle  = lipgloss.NewStyle().Foreground(PositiveColor)
	NegativeStyle  = lipgloss.NewStyle().Foreground(NegativeColor)
	UndefinedStyle = lipgloss.NewStyle().Foreground(SubtleColor).Italic(true)

	// Market share bars
	BarStyle      = lipgloss.NewStyle().Foreground(AccentColor)
	BarLabelStyle = lipgloss.NewStyle().Foreground(TextColor)

	// Footer
	HelpStyle   = lipgloss.NewStyle().Foreground(SubtleColor)
	FilterStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)

	// Errors surfaced in the TUI
	ErrorStyle = lipgloss.NewStyle().Foreground(NegativeColor).Bold(true)
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Theme carries color overrides. It mirrors config.ThemeConfig to avoid
// a circular import.
type Theme struct {
	Accent   string
	Subtle   string
	Positive string
	Negative string
}

// ApplyTheme overrides the semantic colors and rebuilds every style that
// depends on them. Empty fields keep their defaults.
func ApplyTheme(theme Theme) error {
	apply := func(target *lipgloss.AdaptiveColor, hex, name string) error {
		if hex == "" {
			return nil
		}
		if !hexColorRe.MatchString(hex) {
			return fmt.Errorf("invalid hex color for %s: %s", name, hex)
		}
		*target = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		return nil
	}

	if err := apply(&AccentColor, theme.Accent, "accent"); err != nil {
		return err
	}
	if err := apply(&SubtleColor, theme.Subtle, "subtle"); err != nil {
		return err
	}
	if err := apply(&PositiveColor, theme.Positive, "positive"); err != nil {
		return err
	}
	if err := apply(&NegativeColor, theme.Negative, "negative"); err != nil {
		return err
	}

	rebuildStyles()
	return nil
}

func rebuildStyles() {
	KPILabelStyle = lipgloss.NewStyle().Foreground(SubtleColor)
	KPIValueStyle = lipgloss.NewStyle().Bold(true).Foreground(TextColor)
	KPIBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SubtleColor).
		Padding(0, 2)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SubtleColor).
		Padding(0, 1)
	FocusedPanelStyle = PanelStyle.
		BorderForeground(AccentColor)

	PositiveStyle = lipgloss.NewStyle().Foreground(PositiveColor)
	NegativeStyle = lipgloss.NewStyle().Foreground(NegativeColor)
	UndefinedStyle = lipgloss.NewStyle().Foreground(SubtleColor).Italic(true)

	BarStyle = lipgloss.NewStyle().Foreground(AccentColor)
	BarLabelStyle = lipgloss.NewStyle().Foreground(TextColor)

	HelpStyle = lipgloss.NewStyle().Foreground(SubtleColor)
	FilterStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)

	ErrorStyle = lipgloss.NewStyle().Foreground(NegativeColor).Bold(true)
}
