package plot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wandb/wandb/plotkit/internal/plot"
)

func testTransform(invert bool) plot.Transform {
	return plot.Transform{
		Area:   plot.Rect{X: 10, Y: 20, W: 100, H: 50},
		X:      plot.Extent{Min: 0, Max: 10},
		Y:      plot.Extent{Min: 0, Max: 5},
		Invert: invert,
	}
}

func TestToScreen(t *testing.T) {
	tr := testTransform(false)

	assert.Equal(t, 10.0, tr.ToScreen(0, plot.AxisX))
	assert.Equal(t, 60.0, tr.ToScreen(5, plot.AxisX))
	assert.Equal(t, 110.0, tr.ToScreen(10, plot.AxisX))

	// Larger values are higher on screen.
	assert.Equal(t, 70.0, tr.ToScreen(0, plot.AxisY))
	assert.Equal(t, 20.0, tr.ToScreen(5, plot.AxisY))
}

func TestToScreen_Inverted(t *testing.T) {
	tr := testTransform(true)

	assert.Equal(t, 70.0, tr.ToScreen(0, plot.AxisX))
	assert.Equal(t, 20.0, tr.ToScreen(10, plot.AxisX))
	assert.Equal(t, 10.0, tr.ToScreen(0, plot.AxisY))
	assert.Equal(t, 110.0, tr.ToScreen(5, plot.AxisY))
	assert.Equal(t, plot.Pt(110, 20), tr.ToPoint(plot.Pt(10, 5)))
}

func TestToScreen_Monotonic(t *testing.T) {
	for _, invert := range []bool{false, true} {
		tr := testTransform(invert)
		for _, axis := range []plot.AxisID{plot.AxisX, plot.AxisY} {
			prev := tr.ToScreen(-1, axis)
			for v := 0.0; v <= 12; v += 0.5 {
				cur := tr.ToScreen(v, axis)
				if tr.IsHorizontal(axis) {
					assert.Greater(t, cur, prev)
				} else {
					assert.Less(t, cur, prev)
				}
				prev = cur
			}
		}
	}
}

func TestToData_RoundTrip(t *testing.T) {
	for _, invert := range []bool{false, true} {
		tr := testTransform(invert)
		for _, p := range []plot.Point{
			plot.Pt(0, 0),
			plot.Pt(3.25, 1.5),
			plot.Pt(10, 5),
			plot.Pt(-2, 7),
		} {
			back := tr.FromPoint(tr.ToPoint(p))
			assert.InDelta(t, p.X, back.X, 1e-9)
			assert.InDelta(t, p.Y, back.Y, 1e-9)
		}
	}
}

func TestToScreen_ZeroRangeIsCentered(t *testing.T) {
	tr := testTransform(false)
	tr.X = plot.Extent{Min: 3, Max: 3}

	assert.Equal(t, 60.0, tr.ToScreen(3, plot.AxisX))
	assert.Equal(t, 3.0, tr.ToData(60, plot.AxisX))
}

func TestLengthOf(t *testing.T) {
	tr := testTransform(false)

	assert.Equal(t, 50.0, tr.LengthOf(5, plot.AxisX))
	assert.Equal(t, 0.0, tr.LengthOf(5, plot.AxisY))
}
