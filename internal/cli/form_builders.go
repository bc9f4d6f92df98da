package cli

import (
	"fmt"

	"github.com/alexanderramin/tripline/internal/cli/formatter"
	"github.com/alexanderramin/tripline/internal/route"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func triplineHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// skipChoice is the picker value for "insert nothing".
const skipChoice = -1

// candidateOptions lists routes by label, recommended first as returned,
// followed by a skip entry.
func candidateOptions(candidates []route.NormalizedRoute) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, len(candidates)+1)
	for i, c := range candidates {
		label := formatter.CandidateLabel(c)
		if c.Recommended {
			label += " ★"
		}
		opts = append(opts, huh.NewOption(label, i))
	}
	return append(opts, huh.NewOption("Don't insert anything", skipChoice))
}

// candidateForm asks which route to insert.
func candidateForm(candidates []route.NormalizedRoute, choice *int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Insert which route?").
				Description(fmt.Sprintf("%d candidate(s)", len(candidates))).
				Options(candidateOptions(candidates)...).
				Value(choice),
		),
	).WithTheme(triplineHuhTheme()).WithShowHelp(false)
}
