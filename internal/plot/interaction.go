package plot

import (
	"slices"
)

// ZoomState returns whether zoom and pan respond to input.
func (c *Chart) ZoomState() ZoomState { return c.zoom.State() }

// ZoomWindow returns the visible range of the zooming axis.
func (c *Chart) ZoomWindow() (ZoomWindow, bool) { return c.zoom.Window() }

// Zoomed reports whether the view is narrower or wider than the data.
func (c *Chart) Zoomed() bool { return c.zoom.Zoomed() }

// ZoomIn narrows the zoom window by one step, keeping the side nearer the
// pivot, and redraws immediately.
//
// Returns false when nothing changed: zoom is disabled, there is too little
// data, or the window is already one step wide.
func (c *Chart) ZoomIn(pivot Point) bool {
	if !c.hasScale {
		c.logger.Debug("chart: zoom before first scale")
		return false
	}
	if !c.zoom.zoomIn(pivot.Sub(c.zoom.Offset()), c.transform) {
		return false
	}
	c.closeTooltip()
	c.ForceRedrawNow()
	return true
}

// ZoomOut widens the zoom window by one step on both sides and redraws
// immediately.
func (c *Chart) ZoomOut(Point) bool {
	if !c.hasScale {
		c.logger.Debug("chart: zoom before first scale")
		return false
	}
	if !c.zoom.zoomOut() {
		return false
	}
	c.closeTooltip()
	c.ForceRedrawNow()
	return true
}

// ResetZoom shows the full extent again and clears the pan offset.
func (c *Chart) ResetZoom() {
	c.zoom.reset()
	c.closeTooltip()
	c.ForceRedrawNow()
}

// PanOffset returns the current pan translation.
func (c *Chart) PanOffset() Point { return c.zoom.Offset() }

// BeginPan starts a drag at p. Returns false if zoom is disabled.
func (c *Chart) BeginPan(p Point) bool {
	return c.zoom.beginPan(p)
}

// DragPan moves the content with the pointer.
func (c *Chart) DragPan(p Point) bool {
	if !c.zoom.dragPan(p) {
		return false
	}
	c.renderer.SetOffset(c.zoom.Offset())
	return true
}

// EndPan finishes a drag, snapping back any empty area into view.
func (c *Chart) EndPan() bool {
	if !c.zoom.endPan(c.canvas) {
		return false
	}
	c.renderer.SetOffset(c.zoom.Offset())
	return true
}

// Hoverables returns the hoverable shapes of the last pass.
func (c *Chart) Hoverables() []HoverableShape {
	return slices.Clone(c.hover.shapes)
}

// Tooltip returns the tooltip state.
func (c *Chart) Tooltip() TooltipState { return c.hover.tooltip }

// HitTest returns the shape under a canvas point.
func (c *Chart) HitTest(p Point) (HoverableShape, bool) {
	return c.hover.hitTest(p.Sub(c.zoom.Offset()))
}

// categoryAxis is the axis along which hovered points are grouped.
func (c *Chart) categoryAxis() AxisID {
	if axis := c.zoom.Axis(); axis != AxisNone {
		return axis
	}
	if c.opts.Invert {
		return AxisY
	}
	return AxisX
}

// OnPointerEnter highlights the hovered point and the points sharing its
// category, and shows the tooltip.
//
// Returns false if the shape is unknown or tooltips are disabled.
func (c *Chart) OnPointerEnter(ref ShapeRef) bool {
	if c.opts.DisableTooltip {
		return false
	}
	source, ok := c.hover.find(ref)
	if !ok {
		return false
	}

	c.revertHover()

	axis := c.categoryAxis()
	indices := c.hover.siblings(source, axis, c.visible.StepOn(axis))
	group := make([]HoverableShape, 0, len(indices))
	for _, i := range indices {
		s := c.hover.shapes[i]
		group = append(group, s)
		c.renderer.SetShapeState(s.Target, c.hoveredState(s))
	}
	c.hover.active = indices

	tooltip := buildTooltip(group, axis, c.Axis(axis), c.Axis(axis.Other()))
	var size Size
	if c.widgets != nil {
		size = c.widgets.TooltipSize(tooltip)
	}

	c.hover.tooltip = TooltipState{
		Tooltip: tooltip,
		Visible: true,
		Size:    size,
		Position: placeTooltip(
			source,
			group,
			c.transform,
			c.canvas,
			size,
			c.opts.TooltipOffset,
			c.opts.TooltipMargin,
		),
	}
	c.hideTooltip.Cancel()
	return true
}

// OnPointerLeave restores the highlighted points and starts the tooltip
// hide timer.
//
// A shape from an earlier pass is no longer known, but the tooltip it opened
// still gets its hide timer. Returns whether ref was known.
func (c *Chart) OnPointerLeave(ref ShapeRef) bool {
	if c.opts.DisableTooltip {
		return false
	}
	_, known := c.hover.find(ref)
	if !known && !c.hover.tooltip.Visible {
		return false
	}

	c.revertHover()
	c.hideTooltip.Trigger()
	return known
}

// OnPointerDown reports a press on a data point to OnDataClick callbacks.
func (c *Chart) OnPointerDown(ref ShapeRef) bool {
	shape, ok := c.hover.find(ref)
	if !ok {
		return false
	}
	for _, fn := range c.onDataClick {
		fn(shape)
	}
	return true
}

func (c *Chart) hoveredState(s HoverableShape) ShapeState {
	stroke := s.Series.Stroke
	switch c.opts.HoverMode {
	case HoverOpacity:
		return ShapeState{Stroke: stroke, Fill: stroke, Opacity: hoverOpacity, Hovered: true}
	default:
		return ShapeState{Stroke: stroke, Fill: c.opts.HoverColor, Opacity: 1, Hovered: true}
	}
}

func (c *Chart) revertHover() {
	for _, i := range c.hover.active {
		if i >= len(c.hover.shapes) {
			continue
		}
		s := c.hover.shapes[i]
		c.renderer.SetShapeState(s.Target, ShapeState{
			Stroke:  s.Series.Stroke,
			Fill:    s.Series.Stroke,
			Opacity: 1,
		})
	}
	c.hover.active = nil
}

// rebuildHover replaces the hoverable shapes of the last pass.
//
// A visible tooltip points at shapes that are gone, so it is scheduled to
// hide unless a hide is already pending.
func (c *Chart) rebuildHover(shapes []HoverableShape) {
	c.hover.rebuild(shapes)
	if c.hover.tooltip.Visible && !c.hideTooltip.Pending() {
		c.hideTooltip.Trigger()
	}
}

// closeTooltip reverts the hovered points and hides the tooltip now.
func (c *Chart) closeTooltip() {
	c.revertHover()
	c.hideTooltip.Cancel()
	if c.hover.tooltip.Visible {
		c.onHideTooltip()
	}
}

func (c *Chart) onHideTooltip() {
	c.hover.tooltip.Visible = false
	for _, fn := range c.onTooltipOff {
		fn()
	}
}
