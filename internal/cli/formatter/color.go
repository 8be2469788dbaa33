package formatter

import (
	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RunStatusPill returns a colored indicator for a journaled run.
func RunStatusPill(status domain.RunStatus) string {
	switch status {
	case domain.RunOK:
		return StyleGreen.Render("✔ ok")
	case domain.RunFailed:
		return StyleRed.Render("✖ failed")
	case domain.RunRunning:
		return StyleYellow.Render("● running")
	default:
		return StyleDim.Render(string(status))
	}
}

// OutcomePill returns a colored indicator for a single record outcome.
func OutcomePill(outcome domain.ItemOutcome) string {
	switch outcome {
	case domain.OutcomeApplied:
		return StyleGreen.Render("applied")
	case domain.OutcomePlanned:
		return StyleBlue.Render("planned")
	case domain.OutcomeFailed:
		return StyleRed.Render("failed")
	default:
		return StyleDim.Render(string(outcome))
	}
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
