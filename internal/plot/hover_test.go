package plot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wandb/wandb/plotkit/internal/debounce/debouncetest"
	"github.com/wandb/wandb/plotkit/internal/observability"
	"github.com/wandb/wandb/plotkit/internal/plot"
	"github.com/wandb/wandb/plotkit/internal/plot/plottest"
)

func TestPointerEnter_GroupsSiblingsIntoTooltip(t *testing.T) {
	c, charles, james := basicLine(t, plot.DefaultOptions())
	source := hoverableAt(t, c, charles, 2)

	require.True(t, c.OnPointerEnter(source.Shape))

	tooltip := c.Tooltip()
	assert.True(t, tooltip.Visible)
	assert.Equal(t, "2", tooltip.Header)
	require.Len(t, tooltip.Rows, 2)
	assert.Equal(t, "Charles", tooltip.Rows[0].Title)
	assert.Equal(t, "7", tooltip.Rows[0].Value)
	assert.Equal(t, "James", tooltip.Rows[1].Title)
	assert.Equal(t, "9", tooltip.Rows[1].Value)
	assert.Equal(t, james.Stroke, tooltip.Rows[1].Stroke)
}

func TestPointerEnter_HighlightsWithHoverColor(t *testing.T) {
	c, charles, james := basicLine(t, plot.DefaultOptions())
	source := hoverableAt(t, c, charles, 2)
	sibling := hoverableAt(t, c, james, 2)
	other := hoverableAt(t, c, charles, 3)

	c.OnPointerEnter(source.Shape)

	state, ok := c.renderer.State(source.Target)
	require.True(t, ok)
	assert.Equal(t, plot.ShapeState{
		Stroke:  charles.Stroke,
		Fill:    "#FFFFFF",
		Opacity: 1,
		Hovered: true,
	}, state)

	state, ok = c.renderer.State(sibling.Target)
	require.True(t, ok)
	assert.True(t, state.Hovered)

	_, ok = c.renderer.State(other.Target)
	assert.False(t, ok)
}

func TestPointerEnter_PlacesTooltipBesidePoint(t *testing.T) {
	c, charles, james := basicLine(t, plot.DefaultOptions())
	box := c.renderer.TooltipBox

	t.Run("right of points in the lower half", func(t *testing.T) {
		source := hoverableAt(t, c, charles, 2)
		c.OnPointerEnter(source.Shape)

		p := c.ToPoint(plot.Pt(2, 7))
		q := c.ToPoint(plot.Pt(2, 9))
		pos := c.Tooltip().Position
		assert.InDelta(t, p.X+10, pos.X, 1e-9)
		assert.InDelta(t, (p.Y+q.Y)/2-box.H/2, pos.Y, 1e-9)
		assert.Equal(t, box, c.Tooltip().Size)
	})

	t.Run("left of points in the upper half", func(t *testing.T) {
		source := hoverableAt(t, c, james, 4)
		c.OnPointerEnter(source.Shape)

		p := c.ToPoint(plot.Pt(4, 11))
		assert.InDelta(t, p.X-10-box.W, c.Tooltip().Position.X, 1e-9)
	})
}

func TestPointerLeave_RevertsAndHidesAfterDelay(t *testing.T) {
	c, charles, _ := basicLine(t, plot.DefaultOptions())
	source := hoverableAt(t, c, charles, 2)
	hidden := 0
	c.OnTooltipHidden(func() { hidden++ })

	c.OnPointerEnter(source.Shape)
	require.True(t, c.OnPointerLeave(source.Shape))

	state, _ := c.renderer.State(source.Target)
	assert.Equal(t, plot.ShapeState{
		Stroke:  charles.Stroke,
		Fill:    charles.Stroke,
		Opacity: 1,
	}, state)

	c.dispatcher.Advance(999 * time.Millisecond)
	assert.True(t, c.Tooltip().Visible)
	assert.Zero(t, hidden)

	c.dispatcher.Advance(time.Millisecond)
	assert.False(t, c.Tooltip().Visible)
	assert.Equal(t, 1, hidden)
}

func TestRedraw_HidesTooltipOfReplacedShapes(t *testing.T) {
	c, charles, _ := basicLine(t, plot.DefaultOptions())
	source := hoverableAt(t, c, charles, 2)
	hidden := 0
	c.OnTooltipHidden(func() { hidden++ })

	require.True(t, c.OnPointerEnter(source.Shape))
	require.NoError(t, charles.Set(5, plot.Pt(5, 9)))
	c.dispatcher.Advance(quiet)

	_, stillKnown := c.renderer.State(source.Target)
	assert.False(t, stillKnown)
	assert.True(t, c.Tooltip().Visible)

	c.dispatcher.Advance(time.Second)
	assert.False(t, c.Tooltip().Visible)
	assert.Equal(t, 1, hidden)
}

func TestPointerLeave_StaleShapeStillHidesTooltip(t *testing.T) {
	c, charles, _ := basicLine(t, plot.DefaultOptions())
	source := hoverableAt(t, c, charles, 2)

	require.True(t, c.OnPointerEnter(source.Shape))
	require.NoError(t, charles.Set(5, plot.Pt(5, 9)))
	c.dispatcher.Advance(quiet)
	c.dispatcher.Advance(500 * time.Millisecond)

	// Leaving restarts the full hide delay.
	assert.False(t, c.OnPointerLeave(source.Shape))
	c.dispatcher.Advance(999 * time.Millisecond)
	assert.True(t, c.Tooltip().Visible)

	c.dispatcher.Advance(5 * time.Second)
	assert.False(t, c.Tooltip().Visible)
}

func TestPointerLeave_UnknownShapeWithoutTooltip(t *testing.T) {
	c, _, _ := basicLine(t, plot.DefaultOptions())
	hidden := 0
	c.OnTooltipHidden(func() { hidden++ })

	assert.False(t, c.OnPointerLeave(plot.ShapeRef(999_999)))
	c.dispatcher.Advance(5 * time.Second)

	assert.Zero(t, hidden)
}

func TestZoom_ClosesTooltip(t *testing.T) {
	testCases := []struct {
		name string
		zoom func(c *testChart) bool
	}{
		{"zoom in", func(c *testChart) bool { return c.ZoomIn(c.ToPoint(plot.Pt(5, 8))) }},
		{"zoom out", func(c *testChart) bool { return c.ZoomOut(plot.Point{}) }},
		{"reset", func(c *testChart) bool { c.ResetZoom(); return true }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, charles, _ := basicLine(t, plot.DefaultOptions())
			source := hoverableAt(t, c, charles, 2)
			hidden := 0
			c.OnTooltipHidden(func() { hidden++ })
			require.True(t, c.OnPointerEnter(source.Shape))

			require.True(t, tc.zoom(c))

			assert.False(t, c.Tooltip().Visible)
			assert.Equal(t, 1, hidden)

			// No hide is left pending from the closed tooltip.
			c.dispatcher.Advance(5 * time.Second)
			assert.Equal(t, 1, hidden)
		})
	}
}

func TestPointerEnter_CancelsPendingHide(t *testing.T) {
	c, charles, _ := basicLine(t, plot.DefaultOptions())
	first := hoverableAt(t, c, charles, 2)
	second := hoverableAt(t, c, charles, 3)

	c.OnPointerEnter(first.Shape)
	c.OnPointerLeave(first.Shape)
	c.dispatcher.Advance(500 * time.Millisecond)
	c.OnPointerEnter(second.Shape)
	c.dispatcher.Advance(2 * time.Second)

	assert.True(t, c.Tooltip().Visible)
	assert.Equal(t, "3", c.Tooltip().Header)
}

func TestPointerEnter_DisabledTooltip(t *testing.T) {
	opts := plot.DefaultOptions()
	opts.DisableTooltip = true
	c, charles, _ := basicLine(t, opts)
	source := hoverableAt(t, c, charles, 2)

	assert.False(t, c.OnPointerEnter(source.Shape))
	assert.False(t, c.OnPointerLeave(source.Shape))
	assert.False(t, c.Tooltip().Visible)
}

func TestPointerEnter_UnknownShape(t *testing.T) {
	c, _, _ := basicLine(t, plot.DefaultOptions())

	assert.False(t, c.OnPointerEnter(plot.ShapeRef(999_999)))
}

func TestHitTest_FindsMarkerUnderPointer(t *testing.T) {
	c, charles, _ := basicLine(t, plot.DefaultOptions())
	want := hoverableAt(t, c, charles, 1)
	center := c.ToPoint(want.Point)

	got, ok := c.HitTest(center.Add(plot.Pt(1, -1)))

	require.True(t, ok)
	assert.Equal(t, want.Shape, got.Shape)

	_, ok = c.HitTest(plot.Pt(-100, -100))
	assert.False(t, ok)
}

func TestPointerDown_ReportsDataClick(t *testing.T) {
	c, charles, _ := basicLine(t, plot.DefaultOptions())
	source := hoverableAt(t, c, charles, 5)
	var clicked []plot.HoverableShape
	c.OnDataClick(func(s plot.HoverableShape) { clicked = append(clicked, s) })

	require.True(t, c.OnPointerDown(source.Shape))

	require.Len(t, clicked, 1)
	assert.Equal(t, plot.Pt(5, 8), clicked[0].Point)
	assert.Same(t, charles, clicked[0].Series)
}

func TestPointerEnter_OpacityModeDimsSiblings(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := plottest.NewMockRenderer(ctrl)
	widgets := plottest.NewMockWidgets(ctrl)
	dispatcher := debouncetest.NewFakeDispatcher()

	var next plot.ShapeRef
	renderer.EXPECT().
		Measure(gomock.Any(), gomock.Any()).
		Return(plot.Size{W: 12, H: 12}).
		AnyTimes()
	renderer.EXPECT().
		Draw(gomock.Any()).
		DoAndReturn(func(plot.Primitive) plot.ShapeRef {
			next++
			return next
		}).
		AnyTimes()
	renderer.EXPECT().Erase(gomock.Any()).AnyTimes()
	renderer.EXPECT().SetOffset(gomock.Any()).AnyTimes()
	widgets.EXPECT().TooltipSize(gomock.Any()).Return(plot.Size{W: 40, H: 20})

	opts := plot.DefaultOptions()
	opts.HoverMode = plot.HoverOpacity
	chart, err := plot.New(plot.ChartParams{
		Options:    opts,
		Renderer:   renderer,
		Widgets:    widgets,
		Dispatcher: dispatcher,
		Logger:     observability.NewNoOpLogger(),
	})
	require.NoError(t, err)
	defer chart.Close()

	a := plot.NewSeries("a", 1, 2, 3)
	b := plot.NewSeries("b", 3, 2, 1)
	chart.Series().Add(a, b)
	chart.OnSizeChanged(plot.Size{W: 300, H: 200})
	dispatcher.Advance(100 * time.Millisecond)

	var source plot.HoverableShape
	for _, h := range chart.Hoverables() {
		if h.Series == a && h.Point.X == 1 {
			source = h
		}
	}
	require.NotZero(t, source.Shape)

	renderer.EXPECT().SetShapeState(gomock.Any(), plot.ShapeState{
		Stroke:  a.Stroke,
		Fill:    a.Stroke,
		Opacity: 0.8,
		Hovered: true,
	})
	renderer.EXPECT().SetShapeState(gomock.Any(), plot.ShapeState{
		Stroke:  b.Stroke,
		Fill:    b.Stroke,
		Opacity: 0.8,
		Hovered: true,
	})

	assert.True(t, chart.OnPointerEnter(source.Shape))
	assert.Len(t, chart.Tooltip().Rows, 2)
}
