package plot

import (
	"math"
)

// maxTicks bounds tick enumeration for pathological steps.
const maxTicks = 10_000

// Scale is the result of autoscaling the series.
type Scale struct {
	// DataX and DataY are the raw extents of the finite series values.
	DataX, DataY Extent

	// X and Y are the axis bounds after overrides and snapping.
	X, Y Extent

	// Step is the tick spacing per axis.
	Step Point
}

// Extent returns the bounds of the axis.
func (s Scale) Extent(axis AxisID) Extent {
	if axis == AxisY {
		return s.Y
	}
	return s.X
}

// StepOn returns the tick spacing of the axis.
func (s Scale) StepOn(axis AxisID) float64 {
	return s.Step.On(axis)
}

// withExtent returns a copy with the bounds of one axis replaced.
func (s Scale) withExtent(axis AxisID, e Extent) Scale {
	switch axis {
	case AxisX:
		s.X = e
	case AxisY:
		s.Y = e
	}
	return s
}

// Ticks enumerates tick values from the lower bound in steps.
//
// The last tick is dropped when ignoreLast is set.
func (s Scale) Ticks(axis AxisID, ignoreLast bool) []float64 {
	e := s.Extent(axis)
	step := s.StepOn(axis)
	if !(step > 0) || !isFinite(e.Min) || !isFinite(e.Max) {
		return nil
	}

	end := e.Max
	if ignoreLast {
		end -= step
	}

	n := int(math.Floor((end-e.Min)/step + 1e-9))
	if n < 0 {
		return nil
	}
	n = min(n, maxTicks)

	ticks := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		ticks = append(ticks, e.Min+float64(i)*step)
	}
	return ticks
}

// NiceStep picks a tick spacing of 1, 2, 5 or 10 times a power of ten.
//
// The number of separations is the available extent divided by the room one
// label needs (labelExtent times cleanFactor), and never less than 2.
func NiceStep(rng, available, labelExtent, cleanFactor float64) float64 {
	if !(rng > 0) || !isFinite(rng) {
		rng = 1
	}
	if !(labelExtent > 0) {
		labelExtent = 1
	}
	if !(cleanFactor > 0) {
		cleanFactor = defaultCleanFactor
	}

	separations := math.Round(available / (labelExtent * cleanFactor))
	if !(separations >= 2) {
		separations = 2
	}

	minimum := rng / separations
	magnitude := math.Pow(10, math.Floor(math.Log10(minimum)))
	residual := minimum / magnitude

	switch {
	case residual > 5:
		return 10 * magnitude
	case residual > 2:
		return 5 * magnitude
	case residual > 1:
		return 2 * magnitude
	default:
		return magnitude
	}
}

// rangeFloor is the range used for step selection of a degenerate extent.
func rangeFloor(e Extent) float64 {
	if r := e.Range(); r > 0 {
		return r
	}
	if f := math.Abs(e.Max) * 0.1; f > 0 {
		return f
	}
	return 1
}

// Scaler computes extents and tick steps from series values.
type Scaler struct {
	Measurer Measurer
}

// Scale computes the scale of the given series.
//
// area is the region available to the plot; it sizes the tick budget. The
// value axis (Y, or X when invert is set) is snapped outward to whole steps
// unless overridden. Under invert the series values are read along X and
// their categories along Y. Returns false if no series has at least two points.
func (sc Scaler) Scale(
	series []*Series,
	axisX, axisY *Axis,
	area Rect,
	invert bool,
) (Scale, bool) {
	var s Scale
	enough := false
	first := true

	for _, ser := range series {
		if ser.Len() > 1 {
			enough = true
		}
		x, y, ok := ser.Limits()
		if !ok {
			continue
		}
		if invert {
			x, y = y, x
		}
		if first {
			s.DataX, s.DataY = x, y
			first = false
		} else {
			s.DataX = s.DataX.Union(x)
			s.DataY = s.DataY.Union(y)
		}
	}

	if !enough || first {
		return Scale{}, false
	}

	s.X = applyOverrides(s.DataX, axisX)
	s.Y = applyOverrides(s.DataY, axisY)

	s.Step.X = sc.step(s.X, axisX, area, !invert)
	s.Step.Y = sc.step(s.Y, axisY, area, invert)

	valueAxis, valueAxisConfig := AxisY, axisY
	if invert {
		valueAxis, valueAxisConfig = AxisX, axisX
	}
	s = s.withExtent(valueAxis,
		snapOutward(s.Extent(valueAxis), s.StepOn(valueAxis), valueAxisConfig))

	s.X = widenDegenerate(s.X, s.Step.X)
	s.Y = widenDegenerate(s.Y, s.Step.Y)

	return s, true
}

func (sc Scaler) step(e Extent, axis *Axis, area Rect, horizontal bool) float64 {
	if axis != nil && axis.Separator.Step != nil && *axis.Separator.Step > 0 {
		return *axis.Separator.Step
	}
	if axis.IsIndexed() {
		return 1
	}

	var style TextStyle
	if axis != nil {
		style = axis.TextStyle
	}
	label := Size{W: 1, H: 1}
	if sc.Measurer != nil {
		label = sc.Measurer.Measure(sampleLabel, style)
	}

	if horizontal {
		return NiceStep(rangeFloor(e), area.W, label.W, axis.cleanFactor())
	}
	return NiceStep(rangeFloor(e), area.H, label.H, axis.cleanFactor())
}

func applyOverrides(e Extent, axis *Axis) Extent {
	if axis == nil {
		return e
	}
	if axis.MinValue != nil {
		e.Min = *axis.MinValue
	}
	if axis.MaxValue != nil {
		e.Max = *axis.MaxValue
	}
	return e
}

// snapOutward moves bounds without an override to the next whole step
// strictly beyond the data.
func snapOutward(e Extent, step float64, axis *Axis) Extent {
	if !(step > 0) {
		return e
	}
	if axis == nil || axis.MaxValue == nil {
		e.Max = (math.Trunc(e.Max/step) + 1) * step
	}
	if axis == nil || axis.MinValue == nil {
		e.Min = (math.Trunc(e.Min/step) - 1) * step
	}
	return e
}

func widenDegenerate(e Extent, step float64) Extent {
	if e.Range() > 0 {
		return e
	}
	if !(step > 0) {
		step = 1
	}
	return Extent{Min: e.Min - step, Max: e.Max + step}
}
