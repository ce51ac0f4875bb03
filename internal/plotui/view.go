package plotui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/wandb/plotkit/internal/plot"
	"github.com/wandb/wandb/plotkit/internal/termplot"
)

const accentColor = lipgloss.Color("#FCBC32")

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#2B3038"}).
			Background(lipgloss.AdaptiveColor{Light: "#4ECDC4", Dark: "#E1F7FA"})

	helpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Width(20)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor)
)

// View implements tea.Model.View.
func (m *Model) View() string {
	defer m.logPanic("View")

	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	w, h := m.chartSize()
	var body string
	if m.showHelp {
		body = lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, m.renderHelp())
	} else {
		body = m.renderer.Render(w, h, m.frame())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

// frame collects the widgets drawn over the chart shapes.
func (m *Model) frame() termplot.Frame {
	layout := m.chart.Layout()
	frame := termplot.Frame{Tooltip: m.chart.Tooltip()}
	if layout.LegendLocation != plot.LegendNone {
		frame.Legend = m.chart.Legend()
		frame.LegendRect = layout.Legend
		frame.Orientation = layout.LegendLocation.Orientation()
	}
	return frame
}

func (m *Model) renderHelp() string {
	var b strings.Builder
	for _, category := range KeyBindings() {
		b.WriteString(helpSectionStyle.Render(category.Name))
		b.WriteString("\n")
		for _, binding := range category.Bindings {
			key := helpKeyStyle.Render(strings.Join(binding.Keys, ", "))
			desc := helpDescStyle.Render(binding.Description)
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// statusText describes the view state on the left of the status bar.
func (m *Model) statusText() string {
	var parts []string

	switch {
	case m.historyErr != nil:
		parts = append(parts, fmt.Sprintf("Error: %v", m.historyErr))
	case m.chart.Series().Len() == 0:
		parts = append(parts, "No data")
	}

	if window, ok := m.chart.ZoomWindow(); ok && m.chart.Zoomed() {
		axis := m.chart.Axis(m.chart.Options().ZoomAxis)
		parts = append(parts, fmt.Sprintf("Zoom %s: [%s, %s]",
			m.chart.Options().ZoomAxis, axis.Format(window.From), axis.Format(window.To)))
	}

	if m.clicked != "" {
		parts = append(parts, "Selected "+m.clicked)
	}

	if !m.chart.Layout().Usable && m.chart.Series().Len() > 0 {
		parts = append(parts, "Window too small")
	}

	return " " + strings.Join(parts, " • ")
}

func (m *Model) renderStatusBar() string {
	statusText := m.statusText()
	helpText := "h: help "

	rightAligned := lipgloss.PlaceHorizontal(
		max(m.width-lipgloss.Width(statusText), 0),
		lipgloss.Right,
		helpText,
	)

	return statusBarStyle.
		Width(m.width).
		MaxWidth(m.width).
		MaxHeight(StatusBarHeight).
		Render(statusText + rightAligned)
}
