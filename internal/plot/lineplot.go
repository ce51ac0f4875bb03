package plot

import (
	"math"
)

const (
	// bezierSmoothness pulls control points toward the segment midpoints.
	bezierSmoothness = 0.7
	// bezierSamples is the number of segments per curve.
	bezierSamples = 8
)

// plotSeries draws the line and markers of one series and returns its
// hoverable shapes. Hoverable points are in chart coordinates.
func (c *Chart) plotSeries(s *Series, index int) []HoverableShape {
	t := c.transform
	window, hasWindow := c.zoom.Window()
	zoomAxis := c.zoom.Axis()
	eps := c.visible.StepOn(zoomAxis) * 1e-9

	var data, screen []Point
	for _, sp := range s.points {
		if !isFinite(sp.X) || !isFinite(sp.Y) {
			continue
		}
		p := oriented(sp, c.opts.Invert)
		if zoomAxis != AxisNone && hasWindow {
			v := p.On(zoomAxis)
			if v < window.From-eps || v > window.To+eps {
				continue
			}
		}
		data = append(data, p)
		screen = append(screen, t.ToPoint(p))
	}

	if len(screen) >= 2 {
		path := screen
		if s.LineType == LineBezier {
			path = bezierPath(screen, bezierSmoothness, bezierSamples)
		}
		c.arena.drawSeries(s, Primitive{
			Kind:   PrimitivePolyline,
			Layer:  LayerSeries,
			Points: path,
			Style:  Style{Stroke: s.Stroke, Thickness: 1, Opacity: 1},
		})
	}

	r := c.opts.MarkerRadius
	shapes := make([]HoverableShape, 0, len(data))
	for i, p := range data {
		at := screen[i]
		ref := c.arena.drawSeries(s, Primitive{
			Kind:   PrimitiveMarker,
			Layer:  LayerMarker,
			Points: []Point{at},
			Style:  Style{Stroke: s.Stroke, Fill: s.Stroke, Opacity: 1},
		})
		shapes = append(shapes, HoverableShape{
			Point:       p,
			Shape:       ref,
			Target:      ref,
			Series:      s,
			SeriesIndex: index,
			Label:       s.Title,
			Bounds:      Rect{X: at.X - r, Y: at.Y - r, W: 2 * r, H: 2 * r},
		})
	}
	return shapes
}

// bezierPath samples a smooth curve through the points.
//
// Control points follow the neighbors of each segment so that the curve is
// continuous in direction at every point.
func bezierPath(points []Point, smoothness float64, samples int) []Point {
	if len(points) < 2 {
		return points
	}

	out := make([]Point, 0, (len(points)-1)*samples+1)
	out = append(out, points[0])

	last := len(points) - 1
	for i := 0; i < last; i++ {
		p0 := points[max(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(i+2, last)]

		c1, c2 := controlPoints(p0, p1, p2, p3, smoothness)
		for k := 1; k <= samples; k++ {
			out = append(out, cubic(p1, c1, c2, p2, float64(k)/float64(samples)))
		}
	}
	return out
}

func controlPoints(p0, p1, p2, p3 Point, smoothness float64) (Point, Point) {
	m01 := midpoint(p0, p1)
	m12 := midpoint(p1, p2)
	m23 := midpoint(p2, p3)

	len1 := distance(p0, p1)
	len2 := distance(p1, p2)
	len3 := distance(p2, p3)

	k1 := ratio(len1, len1+len2)
	k2 := ratio(len2, len2+len3)

	a := lerp(m01, m12, k1)
	b := lerp(m12, m23, k2)

	cp1 := lerp(a, m12, smoothness).Add(p1.Sub(a))
	cp2 := lerp(b, m12, smoothness).Add(p2.Sub(b))
	return cp1, cp2
}

func cubic(p0, c1, c2, p1 Point, t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
	}
}

func midpoint(a, b Point) Point { return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2} }

func lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

func distance(a, b Point) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
