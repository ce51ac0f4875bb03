package plotui_test

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/plotkit/internal/plotconfig"
	"github.com/wandb/wandb/plotkit/internal/plotui"
)

func stepLabel(v float64) string { return fmt.Sprintf("#%v", v) }

func TestTUI_ResizeHoverZoomAndQuit_Teatest(t *testing.T) {
	// A model on the virtual clock with the same size and data locates
	// the first marker without touching the running program.
	reference := newTestModel(t, plotui.ModelParams{
		Series:     demoSeries(),
		XFormatter: stepLabel,
	})
	x, y := pointOf(t, reference.Model, 0)

	config := plotconfig.NewConfigManager(plotconfig.ConfigManagerParams{
		Fs:   afero.NewMemMapFs(),
		Path: "/config/plotkit.yaml",
	})
	m, err := plotui.NewModel(plotui.ModelParams{
		Config:     config,
		Series:     demoSeries(),
		XFormatter: stepLabel,
	})
	require.NoError(t, err)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(termWidth, termHeight))
	tm.Send(tea.WindowSizeMsg{Width: termWidth, Height: termHeight})

	// Category labels appear once the debounced first pass has run.
	teatest.WaitFor(t, tm.Output(),
		func(b []byte) bool { return bytes.Contains(b, []byte("#0")) },
		teatest.WithDuration(3*time.Second),
	)

	tm.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	teatest.WaitFor(t, tm.Output(),
		func(b []byte) bool { return bytes.Contains(b, []byte("Charles: ")) },
		teatest.WithDuration(3*time.Second),
	)

	tm.Send(tea.MouseMsg{
		X: x, Y: y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonWheelUp,
	})
	teatest.WaitFor(t, tm.Output(),
		func(b []byte) bool { return bytes.Contains(b, []byte("Zoom x: [")) },
		teatest.WithDuration(3*time.Second),
	)

	tm.Type("q")
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(*plotui.Model)
	require.True(t, ok)
	assert.True(t, final.Chart().Zoomed())
	assert.False(t, final.Chart().Tooltip().Visible)
	assert.Zero(t, final.TestHovered())
}
