package plot

// ZoomState tells whether zoom and pan respond to input.
type ZoomState int

const (
	ZoomDisabled ZoomState = iota
	ZoomActive
)

// hasMorePointsFactor keeps zoom-in from narrowing the window below about
// one step.
const hasMorePointsFactor = 1.01

// ZoomWindow is the visible range of the zooming axis.
type ZoomWindow struct {
	From, To float64
}

func (w ZoomWindow) extent() Extent { return Extent{Min: w.From, Max: w.To} }

// ZoomPan tracks the zoom window and the pan offset.
type ZoomPan struct {
	axis AxisID

	full      Extent
	step      float64
	window    ZoomWindow
	hasWindow bool
	zoomed    bool

	contentScale float64
	offset       Point
	panning      bool
	panOrigin    Point
	panStart     Point
}

func newZoomPan(axis AxisID, contentScale float64) *ZoomPan {
	return &ZoomPan{axis: axis, contentScale: contentScale}
}

func (z *ZoomPan) State() ZoomState {
	if z.axis == AxisNone {
		return ZoomDisabled
	}
	return ZoomActive
}

// Axis returns the zooming axis.
func (z *ZoomPan) Axis() AxisID { return z.axis }

// Window returns the zoom window; false before the first scale pass.
func (z *ZoomPan) Window() (ZoomWindow, bool) {
	return z.window, z.hasWindow
}

// Zoomed reports whether the window differs from the full extent.
func (z *ZoomPan) Zoomed() bool { return z.zoomed }

// sync adopts a freshly computed full extent and step.
//
// An unzoomed window follows the full extent; a zoomed one is kept within
// one step of it.
func (z *ZoomPan) sync(full Extent, step float64) {
	z.full = full
	z.step = step

	if !z.hasWindow || !z.zoomed {
		z.window = ZoomWindow{From: full.Min, To: full.Max}
		z.hasWindow = true
		z.zoomed = false
		return
	}

	z.clamp()
	z.updateZoomed()
}

// reset returns to the full extent.
func (z *ZoomPan) reset() {
	z.zoomed = false
	if z.hasWindow {
		z.window = ZoomWindow{From: z.full.Min, To: z.full.Max}
	}
	z.offset = Point{}
}

// zoomIn narrows the window by one step on the side away from the pivot.
//
// The side is chosen in data space, so it does not depend on which screen
// direction the zooming axis runs in.
//
// Returns whether the window changed.
func (z *ZoomPan) zoomIn(pivot Point, t Transform) bool {
	if z.State() == ZoomDisabled || !z.hasWindow || !(z.step > 0) {
		return false
	}

	w := z.window
	if !(w.To-w.From > z.step*hasMorePointsFactor) {
		return false
	}

	pivotCoord := pivot.Y
	if t.IsHorizontal(z.axis) {
		pivotCoord = pivot.X
	}

	if t.ToData(pivotCoord, z.axis) > (w.From+w.To)/2 {
		w.From += z.step
		if w.To-w.From < z.step {
			w.From = w.To - z.step
		}
	} else {
		w.To -= z.step
		if w.To-w.From < z.step {
			w.To = w.From + z.step
		}
	}

	if w == z.window {
		return false
	}
	z.window = w
	z.updateZoomed()
	return true
}

// zoomOut widens the window by one step on both sides.
//
// Returns whether the window changed.
func (z *ZoomPan) zoomOut() bool {
	if z.State() == ZoomDisabled || !z.hasWindow || !(z.step > 0) {
		return false
	}

	before := z.window
	z.window.From -= z.step
	z.window.To += z.step
	z.clamp()

	if z.window == before {
		return false
	}
	z.updateZoomed()
	return true
}

func (z *ZoomPan) clamp() {
	lo, hi := z.full.Min-z.step, z.full.Max+z.step
	z.window.From = max(z.window.From, lo)
	z.window.To = min(z.window.To, hi)

	if z.window.To-z.window.From < z.step {
		z.window.To = min(z.window.From+z.step, hi)
		z.window.From = min(z.window.From, z.window.To-z.step)
	}
}

func (z *ZoomPan) updateZoomed() {
	z.zoomed = z.window != ZoomWindow{From: z.full.Min, To: z.full.Max}
}

// Offset returns the current pan translation.
func (z *ZoomPan) Offset() Point { return z.offset }

// Panning reports whether a drag is in progress.
func (z *ZoomPan) Panning() bool { return z.panning }

func (z *ZoomPan) beginPan(p Point) bool {
	if z.State() == ZoomDisabled {
		return false
	}
	z.panning = true
	z.panOrigin = p
	z.panStart = z.offset
	return true
}

func (z *ZoomPan) dragPan(p Point) bool {
	if !z.panning {
		return false
	}
	z.offset = z.panStart.Add(p.Sub(z.panOrigin))
	return true
}

// endPan finishes a drag and snaps the offset so that no area outside the
// content is visible.
func (z *ZoomPan) endPan(canvas Size) bool {
	if !z.panning {
		return false
	}
	z.panning = false

	content := Size{W: canvas.W * z.contentScale, H: canvas.H * z.contentScale}

	if z.offset.X > 0 {
		z.offset.X = 0
	}
	if z.offset.Y > 0 {
		z.offset.Y = 0
	}
	if overflow := -z.offset.X + canvas.W - content.W; overflow > 0 {
		z.offset.X += overflow
	}
	if overflow := -z.offset.Y + canvas.H - content.H; overflow > 0 {
		z.offset.Y += overflow
	}
	return true
}
