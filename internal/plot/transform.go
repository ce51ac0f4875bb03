package plot

// Transform maps data values to screen coordinates inside the plot area.
//
// Screen X grows to the right and screen Y grows downward, so larger values
// on the vertical axis map to smaller screen Y. Invert plots data Y along
// the horizontal screen axis and data X along the vertical one.
type Transform struct {
	Area Rect

	// X and Y are the visible data extents.
	X, Y Extent

	Invert bool
}

// HorizontalAxis returns the data axis drawn along the screen X direction.
func (t Transform) HorizontalAxis() AxisID {
	if t.Invert {
		return AxisY
	}
	return AxisX
}

// VerticalAxis returns the data axis drawn along the screen Y direction.
func (t Transform) VerticalAxis() AxisID {
	return t.HorizontalAxis().Other()
}

// IsHorizontal reports whether the data axis runs along screen X.
func (t Transform) IsHorizontal(axis AxisID) bool {
	return axis == t.HorizontalAxis()
}

func (t Transform) extent(axis AxisID) Extent {
	if axis == AxisY {
		return t.Y
	}
	return t.X
}

// ToScreen maps a value on a data axis to a screen coordinate.
func (t Transform) ToScreen(v float64, axis AxisID) float64 {
	e := t.extent(axis)
	f := 0.5
	if r := e.Range(); r != 0 {
		f = (v - e.Min) / r
	}

	if t.IsHorizontal(axis) {
		return t.Area.X + f*t.Area.W
	}
	return t.Area.Y + t.Area.H - f*t.Area.H
}

// ToData maps a screen coordinate back to a value on a data axis.
func (t Transform) ToData(px float64, axis AxisID) float64 {
	e := t.extent(axis)

	var f float64
	if t.IsHorizontal(axis) {
		if t.Area.W == 0 {
			return e.Mid()
		}
		f = (px - t.Area.X) / t.Area.W
	} else {
		if t.Area.H == 0 {
			return e.Mid()
		}
		f = (t.Area.Y + t.Area.H - px) / t.Area.H
	}
	return e.Min + f*e.Range()
}

// ToPoint maps a data point to a screen point.
func (t Transform) ToPoint(p Point) Point {
	h, v := t.HorizontalAxis(), t.VerticalAxis()
	return Point{
		X: t.ToScreen(p.On(h), h),
		Y: t.ToScreen(p.On(v), v),
	}
}

// FromPoint maps a screen point to a data point.
func (t Transform) FromPoint(p Point) Point {
	h := t.ToData(p.X, t.HorizontalAxis())
	v := t.ToData(p.Y, t.VerticalAxis())
	if t.Invert {
		return Point{X: v, Y: h}
	}
	return Point{X: h, Y: v}
}

// LengthOf is the screen distance from the plot area origin to v.
func (t Transform) LengthOf(v float64, axis AxisID) float64 {
	if t.IsHorizontal(axis) {
		return t.ToScreen(v, axis) - t.Area.X
	}
	return t.ToScreen(v, axis) - t.Area.Y
}
