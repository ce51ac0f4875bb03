package plottest

import (
	"slices"
	"sort"

	"github.com/mattn/go-runewidth"

	"github.com/wandb/wandb/plotkit/internal/plot"
)

// Renderer is an in-memory plot.Renderer and plot.Widgets.
//
// Text is measured as CharWidth per terminal cell and LineHeight per line.
type Renderer struct {
	CharWidth  float64
	LineHeight float64

	// TooltipBox is the size reported for every tooltip.
	TooltipBox plot.Size

	next   plot.ShapeRef
	shapes map[plot.ShapeRef]plot.Primitive
	states map[plot.ShapeRef]plot.ShapeState
	offset plot.Point

	// Draws counts every call to Draw.
	Draws int
}

var (
	_ plot.Renderer = &Renderer{}
	_ plot.Widgets  = &Renderer{}
)

func NewRenderer() *Renderer {
	return &Renderer{
		CharWidth:  6,
		LineHeight: 12,
		TooltipBox: plot.Size{W: 60, H: 30},
		shapes:     make(map[plot.ShapeRef]plot.Primitive),
		states:     make(map[plot.ShapeRef]plot.ShapeState),
	}
}

func (r *Renderer) Measure(text string, _ plot.TextStyle) plot.Size {
	return plot.Size{
		W: r.CharWidth * float64(runewidth.StringWidth(text)),
		H: r.LineHeight,
	}
}

func (r *Renderer) Draw(p plot.Primitive) plot.ShapeRef {
	r.Draws++
	r.next++
	r.shapes[r.next] = p
	return r.next
}

func (r *Renderer) Erase(refs ...plot.ShapeRef) {
	for _, ref := range refs {
		delete(r.shapes, ref)
		delete(r.states, ref)
	}
}

func (r *Renderer) SetShapeState(ref plot.ShapeRef, state plot.ShapeState) {
	if _, ok := r.shapes[ref]; !ok {
		return
	}
	r.states[ref] = state
}

func (r *Renderer) SetOffset(offset plot.Point) { r.offset = offset }

// Offset returns the last pan offset set.
func (r *Renderer) Offset() plot.Point { return r.offset }

// Live returns the number of shapes not erased.
func (r *Renderer) Live() int { return len(r.shapes) }

// Shape returns a live primitive.
func (r *Renderer) Shape(ref plot.ShapeRef) (plot.Primitive, bool) {
	p, ok := r.shapes[ref]
	return p, ok
}

// State returns the last state applied to a shape.
func (r *Renderer) State(ref plot.ShapeRef) (plot.ShapeState, bool) {
	s, ok := r.states[ref]
	return s, ok
}

// Shapes returns the live primitives of a kind in drawing order.
func (r *Renderer) Shapes(kind plot.PrimitiveKind) []plot.Primitive {
	refs := make([]plot.ShapeRef, 0, len(r.shapes))
	for ref, p := range r.shapes {
		if p.Kind == kind {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })

	out := make([]plot.Primitive, 0, len(refs))
	for _, ref := range refs {
		out = append(out, r.shapes[ref])
	}
	return out
}

// Texts returns the text of every live text primitive.
func (r *Renderer) Texts() []string {
	var out []string
	for _, p := range r.Shapes(plot.PrimitiveText) {
		out = append(out, p.Text)
	}
	return out
}

func (r *Renderer) LegendSize(
	entries []plot.LegendEntry,
	orientation plot.Orientation,
) plot.Size {
	if len(entries) == 0 {
		return plot.Size{}
	}

	widths := make([]float64, 0, len(entries))
	for _, e := range entries {
		widths = append(widths, r.Measure(e.Title, plot.TextStyle{}).W+3*r.CharWidth)
	}

	if orientation == plot.Vertical {
		return plot.Size{
			W: slices.Max(widths),
			H: r.LineHeight * float64(len(entries)),
		}
	}

	var w float64
	for _, x := range widths {
		w += x
	}
	return plot.Size{W: w, H: r.LineHeight}
}

func (r *Renderer) TooltipSize(plot.Tooltip) plot.Size {
	return r.TooltipBox
}
