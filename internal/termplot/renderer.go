// Package termplot draws charts on a terminal cell canvas.
//
// One screen unit is one terminal cell. Lines are drawn with braille
// patterns, which gives them a resolution of 2x4 dots per cell.
package termplot

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru"
	"github.com/mattn/go-runewidth"

	"github.com/wandb/wandb/plotkit/internal/observability/wberrors"
	"github.com/wandb/wandb/plotkit/internal/plot"
)

const (
	defaultMeasureCacheSize = 1024

	brailleBase = 0x2800
	brailleLast = 0x28FF
)

type RendererParams struct {
	// MeasureCacheSize bounds the number of cached text measurements.
	MeasureCacheSize int
}

// Renderer is a plot.Renderer and plot.Widgets for terminals.
//
// It keeps the primitives it is given and rasterizes them on Render.
type Renderer struct {
	measured *lru.Cache

	next   plot.ShapeRef
	shapes map[plot.ShapeRef]*shape
	offset plot.Point
}

type shape struct {
	prim     plot.Primitive
	state    plot.ShapeState
	hasState bool
}

var (
	_ plot.Renderer = &Renderer{}
	_ plot.Widgets  = &Renderer{}
)

func NewRenderer(params RendererParams) (*Renderer, error) {
	size := params.MeasureCacheSize
	if size <= 0 {
		size = defaultMeasureCacheSize
	}

	cache, err := lru.New(size)
	if err != nil {
		return nil, wberrors.Enrichf(err, "termplot: creating measure cache")
	}

	return &Renderer{
		measured: cache,
		shapes:   make(map[plot.ShapeRef]*shape),
	}, nil
}

// Measure returns the cell size of text: its widest line by its line count.
func (r *Renderer) Measure(text string, style plot.TextStyle) plot.Size {
	key := fmt.Sprintf("%t:%s", style.Bold, text)
	if v, ok := r.measured.Get(key); ok {
		return v.(plot.Size)
	}

	size := measureText(text)
	r.measured.Add(key, size)
	return size
}

func measureText(text string) plot.Size {
	if text == "" {
		return plot.Size{}
	}

	lines := strings.Split(text, "\n")
	var w int
	for _, line := range lines {
		w = max(w, runewidth.StringWidth(line))
	}
	return plot.Size{W: float64(w), H: float64(len(lines))}
}

func (r *Renderer) Draw(p plot.Primitive) plot.ShapeRef {
	r.next++
	r.shapes[r.next] = &shape{prim: p}
	return r.next
}

func (r *Renderer) Erase(refs ...plot.ShapeRef) {
	for _, ref := range refs {
		delete(r.shapes, ref)
	}
}

func (r *Renderer) SetShapeState(ref plot.ShapeRef, state plot.ShapeState) {
	s, ok := r.shapes[ref]
	if !ok {
		return
	}
	s.state = state
	s.hasState = true
}

func (r *Renderer) SetOffset(offset plot.Point) { r.offset = offset }

// Len returns the number of live shapes.
func (r *Renderer) Len() int { return len(r.shapes) }

// Frame is what is drawn over the chart shapes.
type Frame struct {
	Legend      []plot.LegendEntry
	LegendRect  plot.Rect
	Orientation plot.Orientation

	Tooltip plot.TooltipState
}

// Render rasterizes the shapes and the frame onto a w by h canvas.
func (r *Renderer) Render(w, h int, frame Frame) string {
	if w <= 0 || h <= 0 {
		return ""
	}

	m := canvas.New(w, h)

	refs := make([]plot.ShapeRef, 0, len(r.shapes))
	for ref := range r.shapes {
		refs = append(refs, ref)
	}
	slices.SortFunc(refs, func(a, b plot.ShapeRef) int {
		la, lb := r.shapes[a].prim.Layer, r.shapes[b].prim.Layer
		if la != lb {
			return int(la) - int(lb)
		}
		return int(a) - int(b)
	})

	for _, ref := range refs {
		r.drawShape(&m, r.shapes[ref])
	}

	if len(frame.Legend) > 0 {
		r.drawLegend(&m, frame)
	}
	if frame.Tooltip.Visible {
		r.drawTooltip(&m, frame.Tooltip)
	}

	return m.View()
}

func (r *Renderer) drawShape(m *canvas.Model, s *shape) {
	p := s.prim
	switch p.Kind {
	case plot.PrimitiveLine:
		if len(p.Points) < 2 {
			return
		}
		style := colorStyle(p.Style.Stroke)
		a, b := p.Points[0].Add(r.offset), p.Points[1].Add(r.offset)
		switch {
		case a.X == b.X:
			drawVertical(m, a, b, style)
		case a.Y == b.Y:
			drawHorizontal(m, a, b, style)
		default:
			r.drawBraillePath(m, []plot.Point{a, b}, style)
		}

	case plot.PrimitivePolyline:
		path := make([]plot.Point, 0, len(p.Points))
		for _, pt := range p.Points {
			path = append(path, pt.Add(r.offset))
		}
		r.drawBraillePath(m, path, colorStyle(p.Style.Stroke))

	case plot.PrimitiveMarker:
		if len(p.Points) == 0 {
			return
		}
		at := cellOf(p.Points[0].Add(r.offset))
		ch, style := markerRune, colorStyle(p.Style.Stroke)
		if s.hasState && s.state.Hovered {
			ch = hoveredMarkerRune
			style = colorStyle(s.state.Fill).Faint(s.state.Opacity < 1)
		}
		m.SetCell(at, canvas.NewCellWithStyle(ch, style))

	case plot.PrimitiveText:
		if len(p.Points) == 0 || p.Text == "" {
			return
		}
		at := cellOf(p.Points[0].Add(r.offset))
		style := textStyle(p.TextStyle)
		if p.Rotation != 0 {
			drawVerticalText(m, at, p.Text, style)
			return
		}
		for i, line := range strings.Split(p.Text, "\n") {
			m.SetStringWithStyle(canvas.Point{X: at.X, Y: at.Y + i}, line, style)
		}
	}
}

// drawBraillePath rasterizes a polyline with braille dots.
func (r *Renderer) drawBraillePath(m *canvas.Model, path []plot.Point, style lipgloss.Style) {
	if len(path) < 2 {
		return
	}

	w, h := m.Width(), m.Height()
	grid := graph.NewBrailleGrid(w, h, 0, float64(w), 0, float64(h))
	gridW, gridH := 2*w, 4*h

	toGrid := func(p plot.Point) canvas.Point {
		// The braille grid has its Y axis pointing up.
		return grid.GridPoint(canvas.Float64Point{X: p.X, Y: float64(h) - p.Y})
	}

	for i := range len(path) - 1 {
		for _, gp := range graph.GetLinePoints(toGrid(path[i]), toGrid(path[i+1])) {
			if gp.X < 0 || gp.Y < 0 || gp.X >= gridW || gp.Y >= gridH {
				continue
			}
			grid.Set(gp)
		}
	}

	for y, row := range grid.BraillePatterns() {
		for x, ch := range row {
			if ch == brailleBase || ch == 0 {
				continue
			}
			at := canvas.Point{X: x, Y: y}
			if existing := m.Cell(at).Rune; isBraille(existing) {
				ch = brailleBase | (existing - brailleBase) | (ch - brailleBase)
			}
			m.SetCell(at, canvas.NewCellWithStyle(ch, style))
		}
	}
}

func isBraille(ch rune) bool {
	return ch >= brailleBase && ch <= brailleLast
}

// cellOf returns the cell containing a screen point.
func cellOf(p plot.Point) canvas.Point {
	return canvas.Point{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

func drawVertical(m *canvas.Model, a, b plot.Point, style lipgloss.Style) {
	x := int(math.Floor(a.X))
	y0 := int(math.Round(math.Min(a.Y, b.Y)))
	y1 := int(math.Round(math.Max(a.Y, b.Y)))
	for y := y0; y < y1; y++ {
		m.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle(verticalRune, style))
	}
}

func drawHorizontal(m *canvas.Model, a, b plot.Point, style lipgloss.Style) {
	y := int(math.Floor(a.Y))
	x0 := int(math.Round(math.Min(a.X, b.X)))
	x1 := int(math.Round(math.Max(a.X, b.X)))
	for x := x0; x < x1; x++ {
		m.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle(horizontalRune, style))
	}
}

// drawVerticalText writes text bottom to top starting at the bottom of its
// rotated box.
func drawVerticalText(m *canvas.Model, at canvas.Point, text string, style lipgloss.Style) {
	runes := []rune(text)
	for i, ch := range runes {
		p := canvas.Point{X: at.X, Y: at.Y + len(runes) - 1 - i}
		m.SetCell(p, canvas.NewCellWithStyle(ch, style))
	}
}
