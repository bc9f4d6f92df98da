package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tripline/internal/domain"
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

// TransitStyle returns the style used for a leg of type t.
func TransitStyle(t domain.TransitType) lipgloss.Style {
	switch t {
	case domain.TransitAirplane:
		return StylePurple
	case domain.TransitTrain:
		return StyleBlue
	case domain.TransitBus:
		return StyleGreen
	case domain.TransitCar:
		return StyleYellow
	default:
		return StyleDim
	}
}

// LineChip renders a step label on its line color. Steps without a
// provider color fall back to the style of their transit type.
func LineChip(step domain.DetailedStep) string {
	label := step.Title
	if label == "" {
		label = string(step.Type)
	}
	if step.Color == "" {
		return TransitStyle(step.Type.TransitType()).Render(label)
	}
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(step.Color)).
		Padding(0, 1)
	if step.TextColor != "" {
		style = style.Foreground(lipgloss.Color(step.TextColor))
	} else {
		style = style.Foreground(lipgloss.Color("#ffffff"))
	}
	return style.Render(label)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Warn renders an advisory line with a yellow marker.
func Warn(text string) string {
	return StyleYellow.Render("▲") + " " + text
}
