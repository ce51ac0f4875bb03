package plot

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -destination=plottest/mock_render.go -package=plottest . Renderer,Widgets

// ShapeRef is an opaque handle to a shape held by a Renderer.
//
// The zero value refers to no shape.
type ShapeRef uint64

// PrimitiveKind selects the geometry of a Primitive.
type PrimitiveKind int

const (
	// PrimitiveLine is a segment from Points[0] to Points[1].
	PrimitiveLine PrimitiveKind = iota
	// PrimitivePolyline joins all Points in order.
	PrimitivePolyline
	// PrimitiveMarker is a data point marker centered on Points[0].
	PrimitiveMarker
	// PrimitiveText is Text with its top-left corner at Points[0].
	PrimitiveText
)

// Layer orders primitives back to front.
type Layer int

const (
	LayerGrid Layer = iota
	LayerAxis
	LayerSeries
	LayerMarker
	LayerLabel
)

// Style is the paint of a primitive.
type Style struct {
	Stroke    Color
	Fill      Color
	Thickness float64
	Opacity   float64
}

// Primitive is one drawable item emitted by the chart.
type Primitive struct {
	Kind   PrimitiveKind
	Layer  Layer
	Points []Point
	Style  Style

	Text      string
	TextStyle TextStyle
	// Rotation in degrees; -90 draws text bottom to top.
	Rotation float64
}

// ShapeState is the visual state the hover logic applies to a marker.
type ShapeState struct {
	Stroke  Color
	Fill    Color
	Opacity float64
	Hovered bool
}

// Measurer reports the rendered size of text.
type Measurer interface {
	Measure(text string, style TextStyle) Size
}

// Renderer draws primitives and owns the resulting shapes.
type Renderer interface {
	Measurer

	// Draw adds a primitive and returns a handle to it.
	Draw(p Primitive) ShapeRef

	// Erase removes shapes. Unknown handles are ignored.
	Erase(refs ...ShapeRef)

	// SetShapeState changes how a shape is painted.
	SetShapeState(ref ShapeRef, state ShapeState)

	// SetOffset translates everything drawn by the pan offset.
	SetOffset(offset Point)
}

// Orientation is the flow direction of legend entries.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// LegendEntry is the legend projection of one series.
type LegendEntry struct {
	Title  string
	Stroke Color
	Fill   Color
}

// Widgets measures the external legend and tooltip views.
type Widgets interface {
	LegendSize(entries []LegendEntry, orientation Orientation) Size
	TooltipSize(tooltip Tooltip) Size
}

// arena tracks every shape the chart has drawn.
//
// Shapes are grouped so that a series can be erased without touching axes
// or other series.
type arena struct {
	renderer Renderer
	common   []ShapeRef
	bySeries map[*Series][]ShapeRef
}

func newArena(renderer Renderer) *arena {
	return &arena{
		renderer: renderer,
		bySeries: make(map[*Series][]ShapeRef),
	}
}

func (a *arena) drawCommon(p Primitive) ShapeRef {
	ref := a.renderer.Draw(p)
	a.common = append(a.common, ref)
	return ref
}

func (a *arena) drawSeries(s *Series, p Primitive) ShapeRef {
	ref := a.renderer.Draw(p)
	a.bySeries[s] = append(a.bySeries[s], ref)
	return ref
}

func (a *arena) clearCommon() {
	if len(a.common) > 0 {
		a.renderer.Erase(a.common...)
	}
	a.common = nil
}

// eraseSeries removes the shapes of s; returns false if it had none.
func (a *arena) eraseSeries(s *Series) bool {
	refs, ok := a.bySeries[s]
	if !ok {
		return false
	}
	if len(refs) > 0 {
		a.renderer.Erase(refs...)
	}
	delete(a.bySeries, s)
	return true
}

func (a *arena) clear() {
	a.clearCommon()
	for s := range a.bySeries {
		a.eraseSeries(s)
	}
}

func (a *arena) len() int {
	n := len(a.common)
	for _, refs := range a.bySeries {
		n += len(refs)
	}
	return n
}
