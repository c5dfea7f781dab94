package report

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			MarginTop(1)

	bodyStyle = lipgloss.NewStyle().
			Foreground(Text)

	dimStyle = lipgloss.NewStyle().
			Foreground(TextDim)

	hintStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// scoreColor grades a 1 to 10 score.
func scoreColor(score float64) color.Color {
	switch {
	case score >= 7.5:
		return Success
	case score >= 5:
		return Accent
	default:
		return Error
	}
}

func severityColor(severity string) color.Color {
	switch severity {
	case "high":
		return Error
	case "medium":
		return Accent
	default:
		return TextDim
	}
}
