// Package plot is the engine of an interactive 2-D line chart.
//
// A Chart turns series of points into drawing primitives for a Renderer. It
// picks axis bounds and tick steps, lays out the plot area around the
// legend, titles and labels, maps data to screen coordinates, and handles
// zoom, pan and hover tooltips. Mutations of the series, the canvas size or
// the axes are debounced into redraw passes through a debounce.Dispatcher.
//
// A Chart and everything it owns must be used from a single goroutine, the
// one the dispatcher runs callbacks on.
package plot

import (
	"fmt"
	"slices"

	"github.com/wandb/wandb/plotkit/internal/debounce"
	"github.com/wandb/wandb/plotkit/internal/observability"
	"github.com/wandb/wandb/plotkit/internal/observability/wberrors"
)

// categoricalBudgetFactor is the extra room categorical labels need over
// their measured width before every index gets a label.
const categoricalBudgetFactor = 1.25

type ChartParams struct {
	Options    Options
	Renderer   Renderer
	Widgets    Widgets
	Dispatcher debounce.Dispatcher
	Logger     *observability.CoreLogger
}

// Chart is a line chart over a SeriesCollection.
type Chart struct {
	opts     Options
	renderer Renderer
	widgets  Widgets
	logger   *observability.CoreLogger

	axisX, axisY *Axis

	series       *SeriesCollection
	unsubscribe  func()
	seriesSubs   map[*Series]func()
	colors       *colorAssigner
	hoverShapes  map[*Series][]HoverableShape
	canvas       Size
	scale        Scale
	visible      Scale
	hasScale     bool
	layout       Layout
	transform    Transform
	zoom         *ZoomPan
	hover        hoverState
	hideTooltip  *debounce.Debouncer
	arena        *arena
	scheduler    *UpdateScheduler
	onPlot       []func()
	onDataClick  []func(HoverableShape)
	onTooltipOff []func()
}

// New creates a chart with an empty series collection.
func New(params ChartParams) (*Chart, error) {
	opts, err := params.Options.normalize()
	if err != nil {
		return nil, err
	}
	if params.Renderer == nil {
		return nil, wberrors.Newf("plot: New: renderer is required")
	}
	if params.Dispatcher == nil {
		return nil, wberrors.Newf("plot: New: dispatcher is required")
	}

	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}

	c := &Chart{
		opts:        opts,
		renderer:    params.Renderer,
		widgets:     params.Widgets,
		logger:      logger,
		axisX:       NewIndexedAxis(),
		axisY:       NewAxis(),
		seriesSubs:  make(map[*Series]func()),
		hoverShapes: make(map[*Series][]HoverableShape),
		colors: newColorAssigner(
			opts.Palette, opts.ColorStartIndex, opts.RandomStartColor),
		zoom:  newZoomPan(opts.ZoomAxis, opts.ContentScale),
		arena: newArena(params.Renderer),
	}
	if opts.Invert {
		c.axisX, c.axisY = NewAxis(), NewIndexedAxis()
	}

	c.scheduler = newUpdateScheduler(
		opts.Debounce,
		params.Dispatcher,
		schedulerActions{
			resize:     c.clearAndPlot,
			collection: func() { c.updateSeries(reasonCollection) },
			values:     c.updateModifiedSeries,
		},
		opts.Metrics,
		logger,
	)
	c.hideTooltip = debounce.NewDebouncer(
		"tooltip",
		opts.Debounce.TooltipHide,
		params.Dispatcher,
		c.onHideTooltip,
		logger,
	)

	c.SetSeries(NewSeriesCollection())
	return c, nil
}

// Options returns the normalized options.
func (c *Chart) Options() Options { return c.opts }

// Axis returns the configuration of a data axis.
func (c *Chart) Axis(id AxisID) *Axis {
	if id == AxisY {
		return c.axisY
	}
	return c.axisX
}

// SetAxis replaces the configuration of a data axis and schedules a full
// relayout.
func (c *Chart) SetAxis(id AxisID, axis *Axis) error {
	if axis == nil {
		axis = NewAxis()
	}

	switch id {
	case AxisX:
		c.axisX = axis
	case AxisY:
		c.axisY = axis
	default:
		return invalidConfig("axis", id)
	}

	c.scheduler.requestResize()
	return nil
}

// SetLegend moves the legend and schedules a full relayout.
func (c *Chart) SetLegend(location LegendLocation) error {
	if !location.valid() {
		return invalidConfig("legend location", location)
	}
	c.opts.Legend = location
	c.scheduler.requestResize()
	return nil
}

// SetHoverMode changes how hovered points are highlighted.
func (c *Chart) SetHoverMode(mode HoverMode) error {
	if mode != HoverDot && mode != HoverOpacity {
		return invalidConfig("hover mode", mode)
	}
	c.revertHover()
	c.opts.HoverMode = mode
	return nil
}

// Series returns the collection shown by the chart.
func (c *Chart) Series() *SeriesCollection { return c.series }

// SetSeries replaces the series collection.
func (c *Chart) SetSeries(collection *SeriesCollection) {
	if collection == nil {
		collection = NewSeriesCollection()
	}

	var previous []*Series
	if c.series != nil {
		c.unsubscribe()
		previous = c.series.All()
	}

	c.series = collection
	c.unsubscribe = collection.Subscribe(c.OnSeriesCollectionChanged)

	c.OnSeriesCollectionChanged(CollectionChange{
		Added:   collection.All(),
		Removed: previous,
		Reset:   true,
	})
}

// OnSeriesCollectionChanged reconciles series added to or removed from the
// collection and schedules a pass.
func (c *Chart) OnSeriesCollectionChanged(change CollectionChange) {
	if change.Reset {
		c.arena.clear()
		clear(c.hoverShapes)
		c.rebuildHover(nil)
	}

	for _, s := range change.Removed {
		if slices.Contains(change.Added, s) {
			continue
		}
		c.unsubscribeSeries(s)
		c.scheduler.queueErase(s)
	}

	for _, s := range c.series.All() {
		if slices.Contains(change.Added, s) {
			c.colors.assign(s)
			s.requiresAnimation = true
			c.subscribeSeries(s)
		} else {
			c.scheduler.queueErase(s)
		}
		s.requiresPlot = true
	}

	c.scheduler.requestCollection()
}

// OnSeriesValuesChanged schedules a rescale and replot of every series.
func (c *Chart) OnSeriesValuesChanged() {
	c.scheduler.requestValues()
}

// OnSizeChanged records the canvas size and schedules a full redraw.
func (c *Chart) OnSizeChanged(size Size) {
	c.canvas = size
	c.scheduler.requestResize()
}

// Canvas returns the canvas size.
func (c *Chart) Canvas() Size { return c.canvas }

// Pending reports whether a debounced pass is scheduled.
func (c *Chart) Pending() bool { return c.scheduler.Pending() }

// ClearAndPlot discards every shape and schedules a full replot.
func (c *Chart) ClearAndPlot() {
	c.prepareCanvas()
	c.scheduler.requestCollection()
}

// ForceRedrawNow runs a full pass immediately, bypassing the debounce
// channels.
func (c *Chart) ForceRedrawNow() {
	c.prepareCanvas()
	c.updateSeries(reasonForced)
}

// OnPlot registers fn to run after every pass.
func (c *Chart) OnPlot(fn func()) {
	c.onPlot = append(c.onPlot, fn)
}

// OnDataClick registers fn to run when a data point is pressed.
func (c *Chart) OnDataClick(fn func(HoverableShape)) {
	c.onDataClick = append(c.onDataClick, fn)
}

// OnTooltipHidden registers fn to run when the hide timer closes the
// tooltip.
func (c *Chart) OnTooltipHidden(fn func()) {
	c.onTooltipOff = append(c.onTooltipOff, fn)
}

// Close stops all timers and detaches from the series.
func (c *Chart) Close() {
	c.scheduler.stop()
	c.hideTooltip.Stop()
	c.unsubscribe()
	for s := range c.seriesSubs {
		c.unsubscribeSeries(s)
	}
}

// Legend returns the legend projection of the series.
func (c *Chart) Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, c.series.Len())
	for _, s := range c.series.All() {
		entries = append(entries, LegendEntry{
			Title:  s.Title,
			Stroke: s.Stroke,
			Fill:   s.Fill,
		})
	}
	return entries
}

// Scale returns the full scale of the last pass.
func (c *Chart) Scale() (Scale, bool) { return c.scale, c.hasScale }

// VisibleScale returns the scale with the zoom window applied.
func (c *Chart) VisibleScale() (Scale, bool) { return c.visible, c.hasScale }

// Layout returns the layout of the last pass.
func (c *Chart) Layout() Layout { return c.layout }

// Transform returns the coordinate transform of the last pass.
func (c *Chart) Transform() Transform { return c.transform }

// ToScreen maps a data value to a screen coordinate.
func (c *Chart) ToScreen(v float64, axis AxisID) float64 {
	return c.transform.ToScreen(v, axis)
}

// ToData maps a screen coordinate to a data value.
func (c *Chart) ToData(px float64, axis AxisID) float64 {
	return c.transform.ToData(px, axis)
}

// ToPoint maps a data point to a screen point.
func (c *Chart) ToPoint(p Point) Point {
	return c.transform.ToPoint(p)
}

// LengthOf is the screen distance from the plot area origin to v.
func (c *Chart) LengthOf(v float64, axis AxisID) float64 {
	return c.transform.LengthOf(v, axis)
}

// ScaleAndLayout recomputes the scale, the layout and the transform.
//
// With fewer than two points in every series there is nothing to scale, and
// the returned layout is not usable.
func (c *Chart) ScaleAndLayout() (Layout, error) {
	engine := LayoutEngine{Measurer: c.renderer, Options: c.opts.Layout}

	pad := c.opts.Layout.Padding
	available := Rect{
		X: pad,
		Y: pad,
		W: max(0, c.canvas.W-2*pad),
		H: max(0, c.canvas.H-2*pad),
	}

	scale, ok := Scaler{Measurer: c.renderer}.Scale(
		c.series.All(), c.axisX, c.axisY, available, c.opts.Invert)
	if !ok {
		c.hasScale = false
		c.layout = Layout{Canvas: c.canvas}
		c.logger.Debug("chart: not enough points to scale")
		return c.layout, nil
	}

	visible := scale
	if c.zoom.State() == ZoomActive {
		axis := c.zoom.Axis()
		c.zoom.sync(scale.Extent(axis), scale.StepOn(axis))
		window, _ := c.zoom.Window()
		visible = scale.withExtent(axis, window.extent())
	}

	t := Transform{X: visible.X, Y: visible.Y, Invert: c.opts.Invert}
	horizontal := c.axisView(t.HorizontalAxis(), visible, available.W, true)
	vertical := c.axisView(t.VerticalAxis(), visible, available.H, false)

	var legendSize Size
	if c.opts.Legend != LegendNone && c.widgets != nil {
		legendSize = c.widgets.LegendSize(c.Legend(), c.opts.Legend.Orientation())
	}

	layout, err := engine.compute(layoutInput{
		canvas:           c.canvas,
		legend:           c.opts.Legend,
		legendSize:       legendSize,
		horizontal:       horizontal,
		vertical:         vertical,
		horizontalExtent: visible.Extent(horizontal.id),
	})
	if err != nil {
		return Layout{}, err
	}

	t.Area = layout.PlotArea
	engine.placeTickLabels(&layout, t, horizontal, vertical)

	c.scale = scale
	c.visible = visible
	c.hasScale = true
	c.layout = layout
	c.transform = t
	return layout, nil
}

// axisView resolves the ticks and label visibility of one axis.
//
// Index axes without labels or formatter show no labels, and categorical
// labels are dropped for the pass when they cannot all fit.
func (c *Chart) axisView(
	id AxisID,
	scale Scale,
	available float64,
	horizontal bool,
) axisView {
	axis := c.Axis(id)
	view := axisView{
		id:         id,
		axis:       axis,
		ticks:      scale.Ticks(id, axis.IgnoresLastLabel),
		showLabels: axis.ShowLabels,
	}

	if !axis.IsIndexed() || !view.showLabels {
		return view
	}

	if axis.Labels == nil && axis.LabelFormatter == nil {
		view.showLabels = false
		return view
	}

	var longest float64
	for _, v := range view.ticks {
		s := c.renderer.Measure(axis.Format(v), axis.TextStyle)
		if horizontal {
			longest = max(longest, s.W)
		} else {
			longest = max(longest, s.H)
		}
	}
	if longest*float64(len(view.ticks))*categoricalBudgetFactor > available {
		c.logger.Debug(fmt.Sprintf(
			"chart: hiding %v labels, %d do not fit in %v",
			id, len(view.ticks), available))
		view.showLabels = false
	}
	return view
}

// prepareCanvas discards every shape and marks everything for replotting.
func (c *Chart) prepareCanvas() {
	c.arena.clear()
	clear(c.hoverShapes)
	c.rebuildHover(nil)
	for _, s := range c.series.All() {
		s.requiresPlot = true
	}
}

func (c *Chart) clearAndPlot() {
	c.prepareCanvas()
	c.updateSeries(reasonResize)
}

func (c *Chart) updateModifiedSeries() {
	for _, s := range c.series.All() {
		c.scheduler.queueErase(s)
		s.requiresPlot = true
	}
	c.updateSeries(reasonValues)
}

// updateSeries runs one plot pass.
func (c *Chart) updateSeries(reason string) {
	c.scheduler.collection.Cancel()

	for _, s := range c.scheduler.drainErase() {
		if c.arena.eraseSeries(s) {
			c.scheduler.metrics.observeErase()
		}
		delete(c.hoverShapes, s)
	}

	series := c.series.All()
	if len(series) == 0 {
		c.arena.clear()
		c.rebuildHover(nil)
		c.hasScale = false
		c.layout = Layout{Canvas: c.canvas}
		c.finishPass(reason)
		return
	}

	if _, err := c.ScaleAndLayout(); err != nil {
		c.logger.CaptureError(wberrors.Enrichf(err, "chart: layout failed"))
		return
	}

	if !c.hasScale || !c.layout.Usable {
		c.logger.Debug(fmt.Sprintf(
			"chart: skipping draw, plot area %vx%v",
			c.layout.PlotArea.W, c.layout.PlotArea.H))
		c.prepareCanvas()
		c.finishPass(reason)
		return
	}

	c.arena.clearCommon()
	c.drawAxes()

	for i, s := range series {
		if !s.requiresPlot {
			continue
		}
		c.arena.eraseSeries(s)
		c.hoverShapes[s] = c.plotSeries(s, i)
		s.requiresPlot = false
		s.requiresAnimation = false
	}

	var shapes []HoverableShape
	for _, s := range series {
		shapes = append(shapes, c.hoverShapes[s]...)
	}
	c.rebuildHover(shapes)

	c.renderer.SetOffset(c.zoom.Offset())
	c.finishPass(reason)
}

func (c *Chart) finishPass(reason string) {
	c.scheduler.metrics.observePass(reason)
	for _, fn := range c.onPlot {
		fn()
	}
}

func (c *Chart) subscribeSeries(s *Series) {
	if _, ok := c.seriesSubs[s]; ok {
		return
	}
	c.seriesSubs[s] = s.Subscribe(c.OnSeriesValuesChanged)
}

func (c *Chart) unsubscribeSeries(s *Series) {
	if cancel, ok := c.seriesSubs[s]; ok {
		cancel()
		delete(c.seriesSubs, s)
	}
}
