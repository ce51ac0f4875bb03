package plot

import (
	"strconv"
)

// defaultCleanFactor spaces labels three label-extents apart.
const defaultCleanFactor = 3

// sampleLabel is measured to estimate how much room a tick label needs.
const sampleLabel = "A label"

// TextStyle describes how labels and titles are drawn.
type TextStyle struct {
	Font  string
	Size  float64
	Bold  bool
	Color Color
}

// Separator configures gridlines and tick spacing of an axis.
type Separator struct {
	Enabled   bool
	Thickness float64
	Color     Color

	// Step fixes the tick spacing, bypassing automatic step selection.
	Step *float64
}

// Axis holds the user configuration of one data axis.
//
// An Axis is a plain data holder; the chart reads it on every pass.
type Axis struct {
	// MinValue and MaxValue override the data extent when set.
	MinValue *float64
	MaxValue *float64

	Separator Separator

	// Enabled draws the zero line when the range spans zero.
	Enabled   bool
	Color     Color
	Thickness float64

	ShowLabels     bool
	LabelFormatter func(float64) string

	// Labels makes the axis categorical: value i is shown as Labels[i].
	Labels []string

	// Indexed makes the axis address series values by index.
	Indexed bool

	Title            string
	IgnoresLastLabel bool
	TextStyle        TextStyle

	// CleanFactor multiplies the label extent when choosing how many ticks
	// fit. Zero means the default.
	CleanFactor float64
}

// NewAxis returns a numeric axis with labels and gridlines.
func NewAxis() *Axis {
	return &Axis{
		Separator:   Separator{Enabled: true, Thickness: 1, Color: "#3C3C3C"},
		Enabled:     true,
		Color:       "#5A5A5A",
		Thickness:   1,
		ShowLabels:  true,
		CleanFactor: defaultCleanFactor,
	}
}

// NewIndexedAxis returns an axis addressing values by index, one tick per
// index and no gridlines.
func NewIndexedAxis() *Axis {
	a := NewAxis()
	a.Indexed = true
	a.Separator.Enabled = false
	a.Separator.Step = Float(1)
	return a
}

// Float returns a pointer to v, for optional Axis fields.
func Float(v float64) *float64 { return &v }

// IsIndexed reports whether values on this axis are series indices.
func (a *Axis) IsIndexed() bool {
	return a != nil && (a.Indexed || a.Labels != nil)
}

func (a *Axis) cleanFactor() float64 {
	if a == nil || a.CleanFactor <= 0 {
		return defaultCleanFactor
	}
	return a.CleanFactor
}

func (a *Axis) clone() *Axis {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// Format returns the display string of v on this axis.
//
// Categorical axes map v to a label and yield "" outside the label list. A
// formatter that panics yields "".
func (a *Axis) Format(v float64) string {
	if a != nil && a.Labels != nil {
		if !isFinite(v) || v < 0 || int(v) >= len(a.Labels) {
			return ""
		}
		return a.Labels[int(v)]
	}

	if a != nil && a.LabelFormatter != nil {
		return safeFormat(a.LabelFormatter, v)
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

func safeFormat(f func(float64) string, v float64) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()
	return f(v)
}
