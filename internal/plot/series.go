package plot

import (
	"log/slog"
	"maps"
	"math"
	"slices"

	"github.com/wandb/wandb/plotkit/internal/observability/wberrors"
)

// Color is a "#RRGGBB" hex color.
type Color string

// defaultFillOpacity is the opacity of series fills when none is given.
const defaultFillOpacity = 0.35

// LineType selects how consecutive points are joined.
type LineType int

const (
	// LineBezier joins points with smoothed curves.
	LineBezier LineType = iota
	// LineStraight joins points with straight segments.
	LineStraight
)

// Series is an ordered sequence of points plotted as one line.
//
// Every mutator notifies subscribers synchronously. A Series must only be
// mutated from the goroutine that owns the chart.
type Series struct {
	Title       string
	Stroke      Color
	Fill        Color
	FillOpacity float64
	LineType    LineType

	points []Point

	// indexed series keep X equal to the position of each point.
	indexed bool

	requiresPlot      bool
	requiresAnimation bool

	observers    map[int]func()
	nextObserver int
}

// NewSeries returns an index-addressed series: value i is plotted at x = i.
func NewSeries(title string, values ...float64) *Series {
	s := &Series{Title: title, indexed: true}
	s.points = make([]Point, 0, len(values))
	for i, v := range values {
		s.points = append(s.points, Point{X: float64(i), Y: v})
	}
	return s
}

// NewXYSeries returns a series of explicit points.
func NewXYSeries(title string, points ...Point) *Series {
	return &Series{Title: title, points: slices.Clone(points)}
}

func (s *Series) Len() int { return len(s.points) }

// At returns the i-th point.
func (s *Series) At(i int) Point { return s.points[i] }

// Points returns a copy of the points.
func (s *Series) Points() []Point { return slices.Clone(s.points) }

// Indexed reports whether X values are point indices.
func (s *Series) Indexed() bool { return s.indexed }

// RequiresPlot reports whether the series is queued for the next plot pass.
func (s *Series) RequiresPlot() bool { return s.requiresPlot }

// RequiresAnimation reports whether the series was added since its last plot.
func (s *Series) RequiresAnimation() bool { return s.requiresAnimation }

// Append adds points at the end.
func (s *Series) Append(points ...Point) {
	if len(points) == 0 {
		return
	}
	s.points = append(s.points, points...)
	s.reindex()
	s.notify()
}

// AppendValues adds values at the next indices.
func (s *Series) AppendValues(values ...float64) {
	if len(values) == 0 {
		return
	}
	for _, v := range values {
		s.points = append(s.points, Point{X: float64(len(s.points)), Y: v})
	}
	s.notify()
}

// Set replaces the i-th point. Indexed series keep X = i.
func (s *Series) Set(i int, p Point) error {
	if i < 0 || i >= len(s.points) {
		return outOfRange(i, len(s.points))
	}
	if s.indexed {
		p.X = float64(i)
	}
	s.points[i] = p
	s.notify()
	return nil
}

// RemoveAt deletes the i-th point.
func (s *Series) RemoveAt(i int) error {
	if i < 0 || i >= len(s.points) {
		return outOfRange(i, len(s.points))
	}
	s.points = slices.Delete(s.points, i, i+1)
	s.reindex()
	s.notify()
	return nil
}

// Replace swaps in a new set of points.
func (s *Series) Replace(points []Point) {
	s.points = slices.Clone(points)
	s.reindex()
	s.notify()
}

// ReplaceValues swaps in new index-addressed values.
func (s *Series) ReplaceValues(values []float64) {
	s.points = s.points[:0]
	for i, v := range values {
		s.points = append(s.points, Point{X: float64(i), Y: v})
	}
	s.notify()
}

// Limits returns the extents of the finite points in series coordinates.
func (s *Series) Limits() (x, y Extent, ok bool) {
	x = Extent{Min: math.Inf(1), Max: math.Inf(-1)}
	y = x
	for _, p := range s.points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			continue
		}
		x.Min = math.Min(x.Min, p.X)
		x.Max = math.Max(x.Max, p.X)
		y.Min = math.Min(y.Min, p.Y)
		y.Max = math.Max(y.Max, p.Y)
		ok = true
	}
	return x, y, ok
}

// Subscribe registers fn to run after every mutation.
//
// Returns a function that removes the subscription.
func (s *Series) Subscribe(fn func()) func() {
	if s.observers == nil {
		s.observers = make(map[int]func())
	}
	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

// oriented places a series point on the chart axes. Series store the
// category position in X and the value in Y; an inverted chart plots the
// value along X and the category along Y.
func oriented(p Point, invert bool) Point {
	if invert {
		return Point{X: p.Y, Y: p.X}
	}
	return p
}

func (s *Series) reindex() {
	if !s.indexed {
		return
	}
	for i := range s.points {
		s.points[i].X = float64(i)
	}
}

func (s *Series) notify() {
	for _, id := range slices.Sorted(maps.Keys(s.observers)) {
		if fn, ok := s.observers[id]; ok {
			fn()
		}
	}
}

func outOfRange(i, n int) error {
	return wberrors.Newf("plot: index %d out of range [0, %d)", i, n).
		Attr(slog.Int("index", i)).
		SkipSentryIf(true)
}

// CollectionChange describes one mutation of a SeriesCollection.
type CollectionChange struct {
	Added   []*Series
	Removed []*Series

	// Reset is set when the whole collection was replaced.
	Reset bool
}

// SeriesCollection is the ordered set of series shown by a chart.
type SeriesCollection struct {
	items []*Series

	observers    map[int]func(CollectionChange)
	nextObserver int
}

func NewSeriesCollection(series ...*Series) *SeriesCollection {
	return &SeriesCollection{items: slices.Clone(series)}
}

func (c *SeriesCollection) Len() int { return len(c.items) }

func (c *SeriesCollection) At(i int) *Series { return c.items[i] }

// All returns the series in order.
func (c *SeriesCollection) All() []*Series { return slices.Clone(c.items) }

// IndexOf returns the position of s, or -1.
func (c *SeriesCollection) IndexOf(s *Series) int {
	return slices.Index(c.items, s)
}

// Find returns the first series with the given title.
func (c *SeriesCollection) Find(title string) *Series {
	for _, s := range c.items {
		if s.Title == title {
			return s
		}
	}
	return nil
}

// Add appends series that are not already present.
func (c *SeriesCollection) Add(series ...*Series) {
	var added []*Series
	for _, s := range series {
		if s == nil || c.IndexOf(s) >= 0 || slices.Contains(added, s) {
			continue
		}
		added = append(added, s)
	}
	if len(added) == 0 {
		return
	}
	c.items = append(c.items, added...)
	c.notify(CollectionChange{Added: added})
}

// Remove deletes the given series; unknown series are ignored.
func (c *SeriesCollection) Remove(series ...*Series) {
	var removed []*Series
	for _, s := range series {
		i := c.IndexOf(s)
		if i < 0 {
			continue
		}
		c.items = slices.Delete(c.items, i, i+1)
		removed = append(removed, s)
	}
	if len(removed) == 0 {
		return
	}
	c.notify(CollectionChange{Removed: removed})
}

// Reset replaces the whole collection.
func (c *SeriesCollection) Reset(series ...*Series) {
	removed := c.items
	c.items = slices.Clone(series)
	c.notify(CollectionChange{
		Added:   slices.Clone(series),
		Removed: removed,
		Reset:   true,
	})
}

// Subscribe registers fn to run after every change.
//
// Returns a function that removes the subscription.
func (c *SeriesCollection) Subscribe(fn func(CollectionChange)) func() {
	if c.observers == nil {
		c.observers = make(map[int]func(CollectionChange))
	}
	id := c.nextObserver
	c.nextObserver++
	c.observers[id] = fn
	return func() { delete(c.observers, id) }
}

func (c *SeriesCollection) notify(change CollectionChange) {
	for _, id := range slices.Sorted(maps.Keys(c.observers)) {
		if fn, ok := c.observers[id]; ok {
			fn(change)
		}
	}
}
