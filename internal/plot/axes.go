package plot

// drawAxes emits gridlines, zero lines, tick labels and titles.
func (c *Chart) drawAxes() {
	t := c.transform
	area := t.Area

	for _, id := range []AxisID{t.HorizontalAxis(), t.VerticalAxis()} {
		axis := c.Axis(id)
		horizontal := t.IsHorizontal(id)

		if axis.Separator.Enabled {
			style := Style{
				Stroke:    axis.Separator.Color,
				Thickness: axis.Separator.Thickness,
				Opacity:   1,
			}
			for _, v := range c.visible.Ticks(id, axis.IgnoresLastLabel) {
				c.arena.drawCommon(Primitive{
					Kind:   PrimitiveLine,
					Layer:  LayerGrid,
					Points: crossLine(area, t.ToScreen(v, id), horizontal),
					Style:  style,
				})
			}
		}

		if e := c.visible.Extent(id); axis.Enabled && e.Min <= 0 && e.Max >= 0 {
			c.arena.drawCommon(Primitive{
				Kind:   PrimitiveLine,
				Layer:  LayerAxis,
				Points: crossLine(area, t.ToScreen(0, id), horizontal),
				Style: Style{
					Stroke:    axis.Color,
					Thickness: axis.Thickness,
					Opacity:   1,
				},
			})
		}
	}

	hAxis := c.Axis(t.HorizontalAxis())
	for _, label := range c.layout.HorizontalLabels {
		c.drawText(label, hAxis.TextStyle)
	}
	vAxis := c.Axis(t.VerticalAxis())
	for _, label := range c.layout.VerticalLabels {
		c.drawText(label, vAxis.TextStyle)
	}

	if title := c.layout.HorizontalTitle; title != nil {
		c.drawText(*title, hAxis.TextStyle)
	}
	if title := c.layout.VerticalTitle; title != nil {
		c.drawText(*title, vAxis.TextStyle)
	}
}

func (c *Chart) drawText(p TextPlacement, style TextStyle) {
	c.arena.drawCommon(Primitive{
		Kind:      PrimitiveText,
		Layer:     LayerLabel,
		Points:    []Point{p.At},
		Text:      p.Text,
		TextStyle: style,
		Rotation:  p.Rotation,
		Style:     Style{Stroke: style.Color, Opacity: 1},
	})
}

// crossLine is the segment across the plot area at a tick position.
//
// Ticks on the horizontal axis give vertical lines and vice versa.
func crossLine(area Rect, pos float64, horizontalAxis bool) []Point {
	if horizontalAxis {
		return []Point{{X: pos, Y: area.Y}, {X: pos, Y: area.Bottom()}}
	}
	return []Point{{X: area.X, Y: pos}, {X: area.Right(), Y: pos}}
}
