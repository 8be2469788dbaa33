package cli

import (
	"context"
	"errors"

	"github.com/alexanderramin/askjira/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// askJiraHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func askJiraHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// ConfirmPrompt asks a yes/no question on the terminal. Ctrl-C counts as
// no.
func ConfirmPrompt(ctx context.Context, title, description string) (bool, error) {
	ok := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(askJiraHuhTheme()).WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// confirm asks before a mutating run. Dry runs, --yes and non-interactive
// sessions proceed without asking.
func (a *App) confirm(ctx context.Context, inv *Invocation, title, description string) (bool, error) {
	if inv.Bool(flagYes) || inv.Bool(flagDryRun) || !a.interactive() {
		return true, nil
	}
	ask := a.Confirm
	if ask == nil {
		ask = ConfirmPrompt
	}
	return ask(ctx, title, description)
}
