package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// scoreBar renders a labelled horizontal bar for a score on the 1 to 10
// scale.
type scoreBar struct {
	Label      string
	Score      float64
	LabelWidth int
	Width      int
}

func (b scoreBar) View() string {
	label := bodyStyle.Width(b.LabelWidth).Render(b.Label)

	barWidth := b.Width - b.LabelWidth - 6
	if barWidth < 4 {
		barWidth = 4
	}
	filled := int(float64(barWidth) * b.Score / 10)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	fill := lipgloss.NewStyle().
		Background(scoreColor(b.Score)).
		Render(strings.Repeat(" ", filled))
	rest := lipgloss.NewStyle().
		Background(Border).
		Render(strings.Repeat(" ", barWidth-filled))
	value := lipgloss.NewStyle().
		Foreground(scoreColor(b.Score)).
		Bold(true).
		Render(fmt.Sprintf(" %4.1f", b.Score))

	return label + fill + rest + value
}
