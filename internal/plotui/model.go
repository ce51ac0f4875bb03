// Package plotui hosts a chart in a bubbletea terminal program.
package plotui

import (
	"fmt"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"

	"github.com/wandb/wandb/plotkit/internal/datasource"
	"github.com/wandb/wandb/plotkit/internal/debounce"
	"github.com/wandb/wandb/plotkit/internal/observability"
	"github.com/wandb/wandb/plotkit/internal/observability/wberrors"
	"github.com/wandb/wandb/plotkit/internal/plot"
	"github.com/wandb/wandb/plotkit/internal/plotconfig"
	"github.com/wandb/wandb/plotkit/internal/termplot"
	"github.com/wandb/wandb/plotkit/internal/watcher"
)

const (
	StatusBarHeight = 1

	// eventBufferSize bounds timer and file events waiting for Update.
	eventBufferSize = 64

	// hoverRate limits pointer hit tests per second.
	hoverRate = 30

	defaultSampleInterval = time.Second
)

type ModelParams struct {
	Config *plotconfig.ConfigManager

	// Series are shown from the start.
	Series []*plot.Series

	// XFormatter, if set, formats category axis labels.
	XFormatter func(float64) string

	// Fs and HistoryPath select a JSONL history file to plot and reload.
	Fs          afero.Fs
	HistoryPath string
	Watcher     watcher.Watcher

	// Sampler adds live host utilization series.
	Sampler        *datasource.SystemSampler
	SampleInterval time.Duration

	// Dispatcher overrides the timer dispatcher; tests use a virtual clock.
	Dispatcher debounce.Dispatcher

	Metrics *plot.Metrics
	Logger  *observability.CoreLogger
}

// Model is the bubbletea model of the chart view.
type Model struct {
	chart    *plot.Chart
	renderer *termplot.Renderer
	config   *plotconfig.ConfigManager

	events     chan tea.Msg
	dispatcher debounce.Dispatcher
	timers     *Dispatcher

	keyMap map[string]func(*Model, tea.KeyMsg) tea.Cmd

	// Pointer state in canvas coordinates.
	pointer    plot.Point
	hovered    plot.ShapeRef
	motion     *debounce.Throttle
	flushArmed bool
	panning    bool

	width, height int
	showHelp      bool
	clicked       string

	fs          afero.Fs
	historyPath string
	watcher     watcher.Watcher
	watching    bool
	historyErr  error

	sampler        *datasource.SystemSampler
	sampleInterval time.Duration

	logger *observability.CoreLogger
}

func NewModel(params ModelParams) (*Model, error) {
	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	if params.Config == nil {
		return nil, wberrors.Newf("plotui: NewModel: config is required")
	}

	cfg := params.Config.Snapshot()
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts.Metrics = params.Metrics

	renderer, err := termplot.NewRenderer(termplot.RendererParams{})
	if err != nil {
		return nil, err
	}

	m := &Model{
		renderer:       renderer,
		config:         params.Config,
		events:         make(chan tea.Msg, eventBufferSize),
		keyMap:         buildKeyMap(KeyBindings()),
		motion:         debounce.NewThrottle(rate.Limit(hoverRate), 1),
		fs:             params.Fs,
		historyPath:    params.HistoryPath,
		watcher:        params.Watcher,
		sampler:        params.Sampler,
		sampleInterval: params.SampleInterval,
		logger:         logger,
	}
	if m.fs == nil {
		m.fs = afero.NewOsFs()
	}
	if m.sampleInterval <= 0 {
		m.sampleInterval = defaultSampleInterval
	}

	m.dispatcher = params.Dispatcher
	if m.dispatcher == nil {
		m.timers = NewDispatcher(m.events)
		m.dispatcher = m.timers
	}

	chart, err := plot.New(plot.ChartParams{
		Options:    opts,
		Renderer:   renderer,
		Widgets:    renderer,
		Dispatcher: m.dispatcher,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	m.chart = chart

	x, y := cfg.Axes()
	if params.XFormatter != nil {
		category := x
		if cfg.Invert {
			category = y
		}
		category.LabelFormatter = params.XFormatter
	}
	_ = chart.SetAxis(plot.AxisX, x)
	_ = chart.SetAxis(plot.AxisY, y)

	chart.Series().Add(params.Series...)
	if m.sampler != nil {
		chart.Series().Add(m.sampler.Series()...)
	}

	chart.OnDataClick(func(s plot.HoverableShape) {
		m.clicked = fmt.Sprintf("%s @ %s",
			s.Series.Title, chart.Axis(m.categoryAxis()).Format(s.Point.On(m.categoryAxis())))
	})

	return m, nil
}

// Chart returns the hosted chart.
func (m *Model) Chart() *plot.Chart { return m.chart }

// Init implements tea.Model.Init.
func (m *Model) Init() tea.Cmd {
	m.logger.Debug("plotui: Init called")

	cmds := []tea.Cmd{tea.SetWindowTitle("plotkit"), m.waitForEvent}
	if m.historyPath != "" {
		cmds = append(cmds, m.loadHistory)
	}
	if m.sampler != nil {
		cmds = append(cmds, m.sample)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.logPanic("Update")

	switch t := msg.(type) {
	case eventMsg:
		_, cmd := m.Update(t.msg)
		return m, tea.Batch(cmd, m.waitForEvent)

	case tea.KeyMsg:
		return m, m.handleKeyMsg(t)

	case tea.MouseMsg:
		return m, m.handleMouseMsg(t)

	case tea.WindowSizeMsg:
		m.handleWindowResize(t)
		return m, nil

	case TimerFiredMsg:
		if m.timers != nil {
			m.timers.Fire(t.ID)
		}
		return m, nil

	case FileChangedMsg:
		return m, m.loadHistory

	case HistoryLoadedMsg:
		m.handleHistoryLoaded(t)
		return m, nil

	case sampleTickMsg:
		return m, m.sample

	case SystemSampleMsg:
		return m, m.handleSystemSample(t)
	}

	return m, nil
}

// waitForEvent delivers the next timer or file event.
func (m *Model) waitForEvent() tea.Msg {
	return eventMsg{msg: <-m.events}
}

// categoryAxis is the data axis of the series index.
func (m *Model) categoryAxis() plot.AxisID {
	if m.chart.Options().Invert {
		return plot.AxisY
	}
	return plot.AxisX
}

// chartSize is the canvas left for the chart below the status bar.
func (m *Model) chartSize() (int, int) {
	return m.width, max(m.height-StatusBarHeight, 0)
}

// shutdown stops every background source.
func (m *Model) shutdown() {
	m.chart.Close()
	m.motion.Stop()
	if m.watching {
		m.logger.Debug("plotui: finishing watcher")
		m.watcher.Finish()
		m.watching = false
	}
	if m.timers != nil {
		m.timers.Close()
	}
}

func (m *Model) logPanic(context string) {
	if r := recover(); r != nil {
		stackTrace := string(debug.Stack())
		m.logger.CaptureError(
			fmt.Errorf("PANIC in %s: %v\nStack trace:\n%s", context, r, stackTrace))
		panic(r)
	}
}
