// Test<API> methods expose internal model state to the plotui_test package.
package plotui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wandb/wandb/plotkit/internal/plot"
)

// TestNextEvent blocks until the next timer or file event arrives.
func (m *Model) TestNextEvent() tea.Msg {
	return m.waitForEvent()
}

// TestHovered returns the shape under the pointer.
func (m *Model) TestHovered() plot.ShapeRef {
	return m.hovered
}

// TestShowHelp reports whether the help screen is shown.
func (m *Model) TestShowHelp() bool {
	return m.showHelp
}
