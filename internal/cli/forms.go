package cli

import (
	"github.com/alexanderramin/proposal/internal/cli/formatter"
	"github.com/alexanderramin/proposal/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	styleChoices = []string{"Formal", "Concise", "Detailed", "Persuasive", "Technical"}
	toneChoices  = []string{"Professional", "Friendly", "Confident", "Enthusiastic", "Neutral"}
)

// proposalHuhTheme returns a huh theme using the Gruvbox palette.
func proposalHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// choiceOptions builds select options with a leading "no preference" entry
// mapped to the empty string.
func choiceOptions(choices []string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("No preference", "")}
	for _, c := range choices {
		opts = append(opts, huh.NewOption(c, c))
	}
	return opts
}

// renderOptionsForm asks for the style and tone of a render. A value in opts
// matching one of the choices is preselected.
func renderOptionsForm(opts *service.RenderOptions) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Writing style").
				Description("How the proposal should read").
				Options(choiceOptions(styleChoices)...).
				Value(&opts.Style),
			huh.NewSelect[string]().
				Title("Tone").
				Options(choiceOptions(toneChoices)...).
				Value(&opts.Tone),
		),
	).WithTheme(proposalHuhTheme()).WithShowHelp(false)
}
