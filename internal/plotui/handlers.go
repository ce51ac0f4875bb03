package plotui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wandb/wandb/plotkit/internal/datasource"
	"github.com/wandb/wandb/plotkit/internal/observability/wberrors"
	"github.com/wandb/wandb/plotkit/internal/plot"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if handler, ok := m.keyMap[msg.String()]; ok && handler != nil {
		return handler(m, msg)
	}
	return nil
}

func (m *Model) handleToggleHelp(tea.KeyMsg) tea.Cmd {
	m.showHelp = !m.showHelp
	return nil
}

func (m *Model) handleQuit(tea.KeyMsg) tea.Cmd {
	m.logger.Debug("plotui: quit requested")
	m.shutdown()
	return tea.Quit
}

// plotCenter is the middle of the plot area in canvas coordinates.
func (m *Model) plotCenter() plot.Point {
	area := m.chart.Layout().PlotArea
	return plot.Pt(area.X+area.W/2, area.Y+area.H/2).Add(m.chart.PanOffset())
}

func (m *Model) handleZoomIn(tea.KeyMsg) tea.Cmd {
	m.chart.ZoomIn(m.plotCenter())
	m.hovered = 0
	return nil
}

func (m *Model) handleZoomOut(tea.KeyMsg) tea.Cmd {
	m.chart.ZoomOut(m.plotCenter())
	m.hovered = 0
	return nil
}

func (m *Model) handleResetZoom(tea.KeyMsg) tea.Cmd {
	m.chart.ResetZoom()
	m.hovered = 0
	return nil
}

func (m *Model) handleCycleLegend(tea.KeyMsg) tea.Cmd {
	next := (m.chart.Options().Legend + 1) % (plot.LegendRight + 1)
	if err := m.chart.SetLegend(next); err != nil {
		m.logger.CaptureError(err)
		return nil
	}
	if err := m.config.SetLegend(next.String()); err != nil {
		m.logger.CaptureWarn(fmt.Sprintf("plotui: saving legend: %v", err))
	}
	return nil
}

func (m *Model) handleToggleHoverMode(tea.KeyMsg) tea.Cmd {
	next := plot.HoverOpacity
	if m.chart.Options().HoverMode == plot.HoverOpacity {
		next = plot.HoverDot
	}
	if err := m.chart.SetHoverMode(next); err != nil {
		m.logger.CaptureError(err)
		return nil
	}
	m.hovered = 0
	if err := m.config.SetHoverMode(next.String()); err != nil {
		m.logger.CaptureWarn(fmt.Sprintf("plotui: saving hover mode: %v", err))
	}
	return nil
}

func (m *Model) handleRedraw(tea.KeyMsg) tea.Cmd {
	m.chart.ForceRedrawNow()
	return nil
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	w, h := m.chartSize()
	m.chart.OnSizeChanged(plot.Size{W: float64(w), H: float64(h)})
}

// cellCenter is the canvas point at the middle of a terminal cell.
func cellCenter(x, y int) plot.Point {
	return plot.Pt(float64(x)+0.5, float64(y)+0.5)
}

func (m *Model) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	if _, h := m.chartSize(); msg.Y >= h || m.showHelp {
		return nil
	}
	p := cellCenter(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.chart.ZoomIn(p)
		m.hovered = 0

	case msg.Button == tea.MouseButtonWheelDown:
		m.chart.ZoomOut(p)
		m.hovered = 0

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if shape, ok := m.chart.HitTest(p); ok {
			m.chart.OnPointerDown(shape.Shape)
		}
		m.panning = m.chart.BeginPan(p)

	case msg.Action == tea.MouseActionMotion:
		if m.panning {
			m.chart.DragPan(p)
			return nil
		}
		m.pointer = p
		m.motion.SetNeedsRun()
		m.motion.Run(m.updateHover)
		if m.motion.NeedsRun() {
			m.armHoverFlush()
		}

	case msg.Action == tea.MouseActionRelease:
		if m.panning {
			m.chart.EndPan()
			m.panning = false
		}
	}

	return nil
}

// armHoverFlush makes sure throttled pointer motion is eventually applied.
func (m *Model) armHoverFlush() {
	if m.flushArmed {
		return
	}
	m.flushArmed = true
	m.dispatcher.AfterFunc(time.Second/hoverRate, func() {
		m.flushArmed = false
		m.motion.Flush(m.updateHover)
	})
}

// updateHover moves the hover to the shape under the pointer.
func (m *Model) updateHover() {
	shape, ok := m.chart.HitTest(m.pointer)
	switch {
	case ok && shape.Shape == m.hovered:
	case ok:
		if m.hovered != 0 {
			m.chart.OnPointerLeave(m.hovered)
		}
		m.hovered = 0
		if m.chart.OnPointerEnter(shape.Shape) {
			m.hovered = shape.Shape
		}
	case m.hovered != 0:
		m.chart.OnPointerLeave(m.hovered)
		m.hovered = 0
	}
}

func (m *Model) loadHistory() tea.Msg {
	h, err := datasource.LoadHistory(m.fs, m.historyPath)
	return HistoryLoadedMsg{History: h, Err: err}
}

func (m *Model) handleHistoryLoaded(msg HistoryLoadedMsg) {
	if msg.Err != nil {
		m.historyErr = msg.Err
		m.logger.CaptureError(
			wberrors.Enrichf(msg.Err, "plotui: loading history").SkipSentryIf(true))
		return
	}
	m.historyErr = nil

	if msg.History.HasSteps() {
		m.useNumericCategoryAxis()
	}
	msg.History.Sync(m.chart.Series())

	m.startWatcher()
}

// useNumericCategoryAxis replaces an index axis so that step values are
// spaced by magnitude.
func (m *Model) useNumericCategoryAxis() {
	id := m.categoryAxis()
	current := m.chart.Axis(id)
	if !current.IsIndexed() {
		return
	}

	axis := plot.NewAxis()
	axis.Title = current.Title
	axis.LabelFormatter = current.LabelFormatter
	axis.CleanFactor = current.CleanFactor
	axis.MinValue, axis.MaxValue = current.MinValue, current.MaxValue
	_ = m.chart.SetAxis(id, axis)
}

func (m *Model) startWatcher() {
	if m.watching || m.watcher == nil {
		return
	}

	err := m.watcher.Watch(m.historyPath, func() {
		select {
		case m.events <- FileChangedMsg{}:
		default:
			m.logger.CaptureWarn("plotui: event buffer full, dropping FileChangedMsg")
		}
	})
	if err != nil {
		m.logger.CaptureError(fmt.Errorf("plotui: watching %s: %v", m.historyPath, err))
		return
	}
	m.watching = true
}

func (m *Model) sample() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), m.sampleInterval)
	defer cancel()

	sample, err := m.sampler.Sample(ctx)
	return SystemSampleMsg{Sample: sample, Err: err}
}

func (m *Model) handleSystemSample(msg SystemSampleMsg) tea.Cmd {
	if msg.Err != nil {
		m.logger.Debug(fmt.Sprintf("plotui: sampling host: %v", msg.Err))
	} else {
		m.sampler.Apply(msg.Sample)
	}

	return tea.Tick(m.sampleInterval, func(time.Time) tea.Msg {
		return sampleTickMsg{}
	})
}
