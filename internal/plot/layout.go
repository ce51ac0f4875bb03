package plot

import (
	"math"
	"strings"
)

// LegendLocation is where the legend is placed around the plot area.
type LegendLocation int

const (
	LegendNone LegendLocation = iota
	LegendTop
	LegendBottom
	LegendLeft
	LegendRight
)

func (l LegendLocation) String() string {
	switch l {
	case LegendNone:
		return "none"
	case LegendTop:
		return "top"
	case LegendBottom:
		return "bottom"
	case LegendLeft:
		return "left"
	case LegendRight:
		return "right"
	default:
		return "unknown"
	}
}

// Orientation returns how entries flow for this location.
func (l LegendLocation) Orientation() Orientation {
	if l == LegendLeft || l == LegendRight {
		return Vertical
	}
	return Horizontal
}

func (l LegendLocation) valid() bool {
	return l >= LegendNone && l <= LegendRight
}

// ParseLegendLocation parses "none", "top", "bottom", "left" or "right".
func ParseLegendLocation(s string) (LegendLocation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return LegendNone, nil
	case "top":
		return LegendTop, nil
	case "bottom":
		return LegendBottom, nil
	case "left":
		return LegendLeft, nil
	case "right":
		return LegendRight, nil
	default:
		return LegendNone, invalidConfig("legend location", s)
	}
}

// LayoutOptions are the spacing constants of the layout.
type LayoutOptions struct {
	// Padding is kept free along every canvas edge.
	Padding float64
	// LabelGap separates tick labels from the plot area.
	LabelGap float64
	// UsableFloor is the smallest plot width and height worth drawing.
	UsableFloor float64
}

func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{Padding: 5, LabelGap: 5, UsableFloor: 15}
}

// TextPlacement is a positioned piece of text.
type TextPlacement struct {
	Text string
	// At is the top-left corner of the box occupied by the text.
	At   Point
	Size Size
	// Rotation in degrees.
	Rotation float64
}

// Layout is the arrangement of one chart pass.
type Layout struct {
	Canvas   Size
	PlotArea Rect

	LegendLocation LegendLocation
	Legend         Rect

	HorizontalTitle *TextPlacement
	VerticalTitle   *TextPlacement

	HorizontalLabels []TextPlacement
	VerticalLabels   []TextPlacement

	// Usable is false when the plot area is too small to draw.
	Usable bool
}

// axisView is what the layout needs to know about one screen axis.
type axisView struct {
	id         AxisID
	axis       *Axis
	ticks      []float64
	showLabels bool
}

func (v axisView) title() string {
	if v.axis == nil {
		return ""
	}
	return v.axis.Title
}

func (v axisView) style() TextStyle {
	if v.axis == nil {
		return TextStyle{}
	}
	return v.axis.TextStyle
}

// layoutInput collects everything that shapes the plot area.
type layoutInput struct {
	canvas     Size
	legend     LegendLocation
	legendSize Size

	horizontal axisView
	vertical   axisView

	// horizontalExtent locates the last horizontal tick for the overflow
	// correction.
	horizontalExtent Extent
}

// LayoutEngine computes the plot area by reserving room for the legend,
// axis titles and tick labels in that order.
type LayoutEngine struct {
	Measurer Measurer
	Options  LayoutOptions
}

func (e LayoutEngine) measure(text string, style TextStyle) Size {
	if e.Measurer == nil || text == "" {
		return Size{}
	}
	return e.Measurer.Measure(text, style)
}

// compute lays out a pass. Dimensions only ever shrink, and never below 0.
func (e LayoutEngine) compute(in layoutInput) (Layout, error) {
	if !in.legend.valid() {
		return Layout{}, invalidConfig("legend location", in.legend)
	}

	opts := e.Options
	pad := opts.Padding
	out := Layout{Canvas: in.canvas, LegendLocation: in.legend}

	r := Rect{
		X: pad,
		Y: pad,
		W: math.Max(0, in.canvas.W-2*pad),
		H: math.Max(0, in.canvas.H-2*pad),
	}

	// Legend.
	lw, lh := in.legendSize.W, in.legendSize.H
	switch in.legend {
	case LegendTop:
		out.Legend = Rect{X: in.canvas.W/2 - lw/2, Y: r.Y, W: lw, H: lh}
		r = takeTop(r, lh)
	case LegendBottom:
		out.Legend = Rect{X: in.canvas.W/2 - lw/2, Y: r.Bottom() - lh, W: lw, H: lh}
		r = takeBottom(r, lh)
	case LegendLeft:
		out.Legend = Rect{X: r.X, Y: in.canvas.H/2 - lh/2, W: lw, H: lh}
		r = takeLeft(r, lw)
	case LegendRight:
		out.Legend = Rect{X: r.Right() - lw, Y: in.canvas.H/2 - lh/2, W: lw, H: lh}
		r = takeRight(r, lw)
	}

	// Titles. The vertical title is rotated, so its height is the room it
	// takes horizontally.
	var vTitleX float64
	vTitle := in.vertical.title()
	vTitleSize := e.measure(vTitle, in.vertical.style())
	if vTitle != "" {
		vTitleX = r.X
		r = takeLeft(r, vTitleSize.H)
	}

	var hTitleY float64
	hTitle := in.horizontal.title()
	hTitleSize := e.measure(hTitle, in.horizontal.style())
	if hTitle != "" {
		r = takeBottom(r, hTitleSize.H)
		hTitleY = r.Bottom()
	}

	// Tick labels.
	var longestV, firstH, lastH Size
	if in.vertical.showLabels {
		for _, v := range in.vertical.ticks {
			s := e.measure(in.vertical.axis.Format(v), in.vertical.style())
			longestV.W = math.Max(longestV.W, s.W)
			longestV.H = math.Max(longestV.H, s.H)
		}
	}
	hTicks := in.horizontal.ticks
	if in.horizontal.showLabels && len(hTicks) > 0 {
		firstH = e.measure(in.horizontal.axis.Format(hTicks[0]), in.horizontal.style())
		lastH = e.measure(in.horizontal.axis.Format(hTicks[len(hTicks)-1]), in.horizontal.style())
	}

	if left := math.Max(longestV.W, firstH.W/2); left > 0 {
		r = takeLeft(r, left+opts.LabelGap)
	}
	r = takeTop(r, longestV.H/2)
	if firstH.H > 0 {
		r = takeBottom(r, firstH.H+opts.LabelGap)
	}

	// The last horizontal label is centered on its tick and may stick out
	// past the right edge.
	if lastH.W > 0 {
		t := Transform{Area: r}
		if in.horizontal.id == AxisY {
			t.Invert = true
			t.Y = in.horizontalExtent
		} else {
			t.X = in.horizontalExtent
		}
		last := hTicks[len(hTicks)-1]
		distanceToEnd := r.Right() - t.ToScreen(last, in.horizontal.id)
		if change := lastH.W/2 - distanceToEnd; change > 0 {
			r.W -= math.Min(change, r.W)
		}
	}

	out.PlotArea = r
	out.Usable = r.Usable(opts.UsableFloor)

	if vTitle != "" {
		out.VerticalTitle = &TextPlacement{
			Text:     vTitle,
			At:       Point{X: vTitleX, Y: r.Y + r.H/2 - vTitleSize.W/2},
			Size:     Size{W: vTitleSize.H, H: vTitleSize.W},
			Rotation: -90,
		}
	}
	if hTitle != "" {
		out.HorizontalTitle = &TextPlacement{
			Text: hTitle,
			At:   Point{X: r.X + r.W/2 - hTitleSize.W/2, Y: hTitleY},
			Size: hTitleSize,
		}
	}

	return out, nil
}

// placeTickLabels positions the tick labels once the transform is known.
func (e LayoutEngine) placeTickLabels(
	out *Layout,
	t Transform,
	horizontal, vertical axisView,
) {
	area := out.PlotArea
	gap := e.Options.LabelGap

	out.HorizontalLabels = nil
	if horizontal.showLabels {
		for _, v := range horizontal.ticks {
			text := horizontal.axis.Format(v)
			s := e.measure(text, horizontal.style())
			x := t.ToScreen(v, horizontal.id)
			out.HorizontalLabels = append(out.HorizontalLabels, TextPlacement{
				Text: text,
				At:   Point{X: x - s.W/2, Y: area.Bottom() + gap},
				Size: s,
			})
		}
	}

	out.VerticalLabels = nil
	if vertical.showLabels {
		for _, v := range vertical.ticks {
			text := vertical.axis.Format(v)
			s := e.measure(text, vertical.style())
			y := t.ToScreen(v, vertical.id)
			out.VerticalLabels = append(out.VerticalLabels, TextPlacement{
				Text: text,
				At:   Point{X: area.X - s.W - gap, Y: y - s.H/2},
				Size: s,
			})
		}
	}
}

func takeTop(r Rect, n float64) Rect {
	n = clampTake(n, r.H)
	r.Y += n
	r.H -= n
	return r
}

func takeBottom(r Rect, n float64) Rect {
	r.H -= clampTake(n, r.H)
	return r
}

func takeLeft(r Rect, n float64) Rect {
	n = clampTake(n, r.W)
	r.X += n
	r.W -= n
	return r
}

func takeRight(r Rect, n float64) Rect {
	r.W -= clampTake(n, r.W)
	return r
}

func clampTake(n, available float64) float64 {
	if !(n > 0) {
		return 0
	}
	return math.Min(n, available)
}
