package plot_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/plotkit/internal/plot"
	"github.com/wandb/wandb/plotkit/internal/plot/plottest"
)

func TestNiceStep(t *testing.T) {
	testCases := []struct {
		name      string
		rng       float64
		available float64
		want      float64
	}{
		{"unit magnitude", 10, 300, 1},
		{"tens", 100, 300, 10},
		{"rounds residual up to ten", 7, 300, 1},
		{"rounds residual up to five", 30, 300, 5},
		{"rounds residual up to two", 15, 300, 2},
		{"at least two separations", 10, 10, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := plot.NiceStep(tc.rng, tc.available, 10, 3)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestNiceStep_IsOneTwoOrFiveTimesPowerOfTen(t *testing.T) {
	for _, rng := range []float64{0.003, 0.7, 1, 3.3, 42, 999, 123456} {
		for _, available := range []float64{20, 150, 800} {
			step := plot.NiceStep(rng, available, 12, 3)

			mantissa := step / math.Pow(10, math.Floor(math.Log10(step)+1e-9))
			assert.Condition(t, func() bool {
				for _, m := range []float64{1, 2, 5, 10} {
					if math.Abs(mantissa-m) < 1e-6 {
						return true
					}
				}
				return false
			}, "step %v for range %v", step, rng)
		}
	}
}

func TestScaler_SnapsValueAxisOutward(t *testing.T) {
	series := []*plot.Series{plot.NewSeries("s", 5, 6, 9, 10, 11, 9)}
	sc := plot.Scaler{Measurer: plottest.NewRenderer()}

	scale, ok := sc.Scale(
		series,
		plot.NewIndexedAxis(),
		plot.NewAxis(),
		plot.Rect{W: 390, H: 290},
		false,
	)

	require.True(t, ok)
	assert.Equal(t, 1.0, scale.Step.Y)
	assert.Equal(t, plot.Extent{Min: 4, Max: 12}, scale.Y)
	assert.Equal(t, plot.Extent{Min: 0, Max: 5}, scale.X)
}

func TestScaler_FixedStepAndOverrides(t *testing.T) {
	series := []*plot.Series{plot.NewSeries("s", 3, 17)}
	y := plot.NewAxis()
	y.Separator.Step = plot.Float(4)
	y.MinValue = plot.Float(0)

	scale, ok := plot.Scaler{}.Scale(
		series, plot.NewIndexedAxis(), y, plot.Rect{W: 100, H: 100}, false)

	require.True(t, ok)
	assert.Equal(t, 4.0, scale.Step.Y)
	assert.Equal(t, plot.Extent{Min: 0, Max: 20}, scale.Y)
}

func TestScaler_IgnoresNonFinitePoints(t *testing.T) {
	series := []*plot.Series{plot.NewSeries("s", 1, math.NaN(), math.Inf(1), 4)}

	scale, ok := plot.Scaler{}.Scale(
		series, plot.NewIndexedAxis(), plot.NewAxis(), plot.Rect{W: 100, H: 100}, false)

	require.True(t, ok)
	assert.Equal(t, plot.Extent{Min: 1, Max: 4}, scale.DataY)
	assert.Equal(t, plot.Extent{Min: 0, Max: 3}, scale.DataX)
}

func TestScaler_WidensFlatSeries(t *testing.T) {
	series := []*plot.Series{plot.NewSeries("flat", 0, 0, 0)}

	scale, ok := plot.Scaler{}.Scale(
		series, plot.NewIndexedAxis(), plot.NewAxis(), plot.Rect{W: 100, H: 100}, false)

	require.True(t, ok)
	assert.Less(t, scale.Y.Min, 0.0)
	assert.Greater(t, scale.Y.Max, 0.0)
}

func TestScaler_NeedsTwoPoints(t *testing.T) {
	_, ok := plot.Scaler{}.Scale(
		[]*plot.Series{plot.NewSeries("a", 1), plot.NewSeries("b")},
		plot.NewIndexedAxis(),
		plot.NewAxis(),
		plot.Rect{W: 100, H: 100},
		false,
	)

	assert.False(t, ok)
}

func TestScale_Ticks(t *testing.T) {
	s := plot.Scale{
		X:    plot.Extent{Min: 0, Max: 1},
		Step: plot.Pt(0.2, 0),
	}

	assert.Len(t, s.Ticks(plot.AxisX, false), 6)
	assert.Len(t, s.Ticks(plot.AxisX, true), 5)
	assert.Nil(t, s.Ticks(plot.AxisY, false))
}
