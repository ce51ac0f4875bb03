package plotui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding maps keys to a Model handler.
//
// Bindings without a Handler are listed in help but not dispatched.
type KeyBinding struct {
	Keys        []string
	Description string
	Handler     func(*Model, tea.KeyMsg) tea.Cmd
}

// BindingCategory groups related key bindings for the help screen.
type BindingCategory struct {
	Name     string
	Bindings []KeyBinding
}

// KeyBindings returns the key bindings of the chart view.
func KeyBindings() []BindingCategory {
	return []BindingCategory{
		{
			Name: "General",
			Bindings: []KeyBinding{
				{
					Keys:        []string{"h", "?"},
					Description: "Toggle this help screen",
					Handler:     (*Model).handleToggleHelp,
				},
				{
					Keys:        []string{"q", "ctrl+c"},
					Description: "Quit",
					Handler:     (*Model).handleQuit,
				},
			},
		},
		{
			Name: "Zoom",
			Bindings: []KeyBinding{
				{
					Keys:        []string{"+", "="},
					Description: "Zoom in around the plot center",
					Handler:     (*Model).handleZoomIn,
				},
				{
					Keys:        []string{"-"},
					Description: "Zoom out",
					Handler:     (*Model).handleZoomOut,
				},
				{
					Keys:        []string{"0", "r"},
					Description: "Reset zoom and pan",
					Handler:     (*Model).handleResetZoom,
				},
			},
		},
		{
			Name: "Display",
			Bindings: []KeyBinding{
				{
					Keys:        []string{"l"},
					Description: "Cycle legend position",
					Handler:     (*Model).handleCycleLegend,
				},
				{
					Keys:        []string{"m"},
					Description: "Toggle hover highlight mode",
					Handler:     (*Model).handleToggleHoverMode,
				},
				{
					Keys:        []string{"ctrl+r"},
					Description: "Redraw now",
					Handler:     (*Model).handleRedraw,
				},
			},
		},
		{
			Name: "Mouse",
			Bindings: []KeyBinding{
				{
					Keys:        []string{"wheel"},
					Description: "Zoom at the pointer",
				},
				{
					Keys:        []string{"hover"},
					Description: "Show values at a point",
				},
				{
					Keys:        []string{"drag"},
					Description: "Drag the view",
				},
			},
		},
	}
}

func buildKeyMap(categories []BindingCategory) map[string]func(*Model, tea.KeyMsg) tea.Cmd {
	keyMap := make(map[string]func(*Model, tea.KeyMsg) tea.Cmd)
	for _, category := range categories {
		for _, binding := range category.Bindings {
			if binding.Handler == nil {
				continue
			}
			for _, key := range binding.Keys {
				keyMap[key] = binding.Handler
			}
		}
	}
	return keyMap
}
