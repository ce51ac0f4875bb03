package plot

import (
	"math"
	"strings"

	"github.com/wandb/wandb/plotkit/internal/observability/wberrors"
)

// AxisID names a data axis.
type AxisID int

const (
	AxisNone AxisID = iota
	AxisX
	AxisY
)

func (a AxisID) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "none"
	}
}

// Other returns the orthogonal axis.
func (a AxisID) Other() AxisID {
	switch a {
	case AxisX:
		return AxisY
	case AxisY:
		return AxisX
	default:
		return AxisNone
	}
}

// ParseAxisID parses "x", "y" or "none" (case-insensitive, empty is none).
func ParseAxisID(s string) (AxisID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "", "none":
		return AxisNone, nil
	default:
		return AxisNone, invalidConfig("axis", s)
	}
}

// Point is a position in data or screen space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// On returns the coordinate of p on the given axis.
func (p Point) On(axis AxisID) float64 {
	if axis == AxisY {
		return p.Y
	}
	return p.X
}

// Size is a width and height in screen units.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned screen rectangle with its origin at the top left.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Usable reports whether both dimensions reach the floor.
func (r Rect) Usable(floor float64) bool {
	return r.W >= floor && r.H >= floor
}

// Extent is a closed value interval.
type Extent struct {
	Min, Max float64
}

func (e Extent) Range() float64 { return e.Max - e.Min }
func (e Extent) Mid() float64   { return (e.Min + e.Max) / 2 }

func (e Extent) Contains(v float64) bool {
	return v >= e.Min && v <= e.Max
}

// Union returns the smallest extent covering both.
func (e Extent) Union(o Extent) Extent {
	return Extent{Min: math.Min(e.Min, o.Min), Max: math.Max(e.Max, o.Max)}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ErrInvalidConfiguration reports an unsupported option value.
var ErrInvalidConfiguration = wberrors.Newf("invalid configuration")
