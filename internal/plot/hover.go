package plot

import (
	"math"
)

// siblingTolerance is the fraction of a step within which points on the
// category axis are grouped into one tooltip.
const siblingTolerance = 0.01

// hoverOpacity is the opacity of hovered markers in HoverOpacity mode.
const hoverOpacity = 0.8

// HoverableShape links a drawn marker to the data point it represents.
type HoverableShape struct {
	// Point is in chart coordinates: the category is on Y when inverted.
	Point  Point
	Shape  ShapeRef
	Target ShapeRef
	Series *Series
	// SeriesIndex is the position of Series in the collection.
	SeriesIndex int
	Label       string
	// Bounds is the screen region that hovers the shape.
	Bounds Rect
}

// TooltipRow is the line of one series in a tooltip.
type TooltipRow struct {
	SeriesIndex int
	Title       string
	Stroke      Color
	Fill        Color
	Point       Point
	Value       string
}

// Tooltip is the content of the data tooltip.
type Tooltip struct {
	Header string
	Rows   []TooltipRow
}

// TooltipState is the tooltip content with its placement.
type TooltipState struct {
	Tooltip
	Visible  bool
	Position Point
	Size     Size
}

// hoverState is the bookkeeping of hover interactions for one plot pass.
type hoverState struct {
	shapes  []HoverableShape
	byShape map[ShapeRef]int

	// active holds the indices of the highlighted siblings.
	active  []int
	tooltip TooltipState
}

func (h *hoverState) rebuild(shapes []HoverableShape) {
	h.shapes = shapes
	h.byShape = make(map[ShapeRef]int, len(shapes))
	for i, s := range shapes {
		h.byShape[s.Shape] = i
	}
	h.active = nil
}

func (h *hoverState) find(ref ShapeRef) (HoverableShape, bool) {
	i, ok := h.byShape[ref]
	if !ok {
		return HoverableShape{}, false
	}
	return h.shapes[i], true
}

// siblings returns the indices of the shapes within tolerance of source on
// the category axis.
func (h *hoverState) siblings(source HoverableShape, axis AxisID, step float64) []int {
	tolerance := step * siblingTolerance
	if !(tolerance > 0) {
		tolerance = math.SmallestNonzeroFloat64
	}

	var out []int
	for i, s := range h.shapes {
		if math.Abs(s.Point.On(axis)-source.Point.On(axis)) < tolerance {
			out = append(out, i)
		}
	}
	return out
}

// hitTest returns the topmost shape whose bounds contain p.
func (h *hoverState) hitTest(p Point) (HoverableShape, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, s := range h.shapes {
		if !s.Bounds.Contains(p) {
			continue
		}
		c := Point{X: s.Bounds.X + s.Bounds.W/2, Y: s.Bounds.Y + s.Bounds.H/2}
		d := math.Hypot(c.X-p.X, c.Y-p.Y)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return HoverableShape{}, false
	}
	return h.shapes[best], true
}

// buildTooltip projects the sibling group into tooltip rows.
func buildTooltip(
	group []HoverableShape,
	categoryAxis AxisID,
	category, value *Axis,
) Tooltip {
	if len(group) == 0 {
		return Tooltip{}
	}

	t := Tooltip{Header: category.Format(group[0].Point.On(categoryAxis))}
	for _, s := range group {
		row := TooltipRow{
			SeriesIndex: s.SeriesIndex,
			Point:       s.Point,
			Value:       value.Format(s.Point.On(categoryAxis.Other())),
		}
		if s.Series != nil {
			row.Title = s.Series.Title
			row.Stroke = s.Series.Stroke
			row.Fill = s.Series.Fill
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// placeTooltip positions a tooltip of the given size next to source.
//
// It sits right of the point in the lower half of the horizontal range and
// left of it otherwise, vertically centered on the group, and is lifted to
// stay above the canvas bottom.
func placeTooltip(
	source HoverableShape,
	group []HoverableShape,
	t Transform,
	canvas Size,
	size Size,
	offset, margin float64,
) Point {
	h := t.HorizontalAxis()
	screen := t.ToPoint(source.Point)

	var x float64
	if source.Point.On(h) > t.extent(h).Mid() {
		x = screen.X - offset - size.W
	} else {
		x = screen.X + offset
	}

	var sum float64
	for _, s := range group {
		sum += t.ToPoint(s.Point).Y
	}
	y := sum/float64(len(group)) - size.H/2

	if y+size.H > canvas.H {
		y -= y + size.H - canvas.H + margin
	}

	return Point{X: x, Y: y}
}
