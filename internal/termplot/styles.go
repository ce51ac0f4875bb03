package termplot

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/wandb/plotkit/internal/plot"
)

// Marker runes.
const (
	markerRune        = '•'
	hoveredMarkerRune = '●'
	legendSwatch      = "■"
)

// Box drawing runes for axis-aligned lines.
const (
	horizontalRune = '─'
	verticalRune   = '│'
)

// accentColor frames the tooltip.
const accentColor = lipgloss.Color("#FCBC32")

var (
	tooltipBorder = lipgloss.RoundedBorder()

	tooltipBorderStyle = lipgloss.NewStyle().Foreground(accentColor)

	tooltipHeaderStyle = lipgloss.NewStyle().Bold(true)

	legendTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#111111", Dark: "#EEEEEE"})
)

// colorStyle is a style painting the foreground in c.
func colorStyle(c plot.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c != "" {
		s = s.Foreground(lipgloss.Color(string(c)))
	}
	return s
}

// textStyle converts a chart text style into a lipgloss style.
func textStyle(ts plot.TextStyle) lipgloss.Style {
	return colorStyle(ts.Color).Bold(ts.Bold)
}
