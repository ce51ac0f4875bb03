package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiblings_WithinOnePercentOfStep(t *testing.T) {
	var h hoverState
	h.rebuild([]HoverableShape{
		{Point: Pt(1, 5), Shape: 1},
		{Point: Pt(1.009, 7), Shape: 2},
		{Point: Pt(1.011, 9), Shape: 3},
		{Point: Pt(2, 5), Shape: 4},
	})

	got := h.siblings(h.shapes[0], AxisX, 1)

	assert.Equal(t, []int{0, 1}, got)
}

func TestPlaceTooltip_LiftedAboveCanvasBottom(t *testing.T) {
	tr := Transform{
		Area: Rect{W: 100, H: 100},
		X:    Extent{Min: 0, Max: 10},
		Y:    Extent{Min: 0, Max: 10},
	}
	source := HoverableShape{Point: Pt(2, 0)}

	pos := placeTooltip(
		source,
		[]HoverableShape{source},
		tr,
		Size{W: 100, H: 100},
		Size{W: 30, H: 40},
		10,
		5,
	)

	// Point at (20, 100); centered top would be 80, bottom 120.
	assert.Equal(t, Pt(30, 55), pos)
}

func TestPlaceTooltip_FlipsLeftPastMiddle(t *testing.T) {
	tr := Transform{
		Area: Rect{W: 100, H: 100},
		X:    Extent{Min: 0, Max: 10},
		Y:    Extent{Min: 0, Max: 10},
	}
	source := HoverableShape{Point: Pt(8, 5)}

	pos := placeTooltip(
		source,
		[]HoverableShape{source},
		tr,
		Size{W: 100, H: 100},
		Size{W: 30, H: 40},
		10,
		5,
	)

	assert.Equal(t, Pt(40, 30), pos)
}

func TestBuildTooltip_UsesAxisFormatting(t *testing.T) {
	category := NewIndexedAxis()
	category.Labels = []string{"mon", "tue"}
	value := NewAxis()
	value.LabelFormatter = func(v float64) string { return "$" + NewAxis().Format(v) }
	s := NewSeries("sales", 3, 4)
	s.Stroke = "#00FF00"

	tooltip := buildTooltip(
		[]HoverableShape{{Point: Pt(1, 4), Series: s, SeriesIndex: 2}},
		AxisX,
		category,
		value,
	)

	assert.Equal(t, Tooltip{
		Header: "tue",
		Rows: []TooltipRow{{
			SeriesIndex: 2,
			Title:       "sales",
			Stroke:      "#00FF00",
			Point:       Pt(1, 4),
			Value:       "$4",
		}},
	}, tooltip)
}

func TestHitTest_PrefersNearestCenter(t *testing.T) {
	var h hoverState
	h.rebuild([]HoverableShape{
		{Shape: 1, Bounds: Rect{X: 0, Y: 0, W: 10, H: 10}},
		{Shape: 2, Bounds: Rect{X: 6, Y: 0, W: 10, H: 10}},
	})

	got, ok := h.hitTest(Pt(9, 5))

	assert.True(t, ok)
	assert.Equal(t, ShapeRef(2), got.Shape)
}
