package termplot_test

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/plotkit/internal/plot"
	"github.com/wandb/wandb/plotkit/internal/termplot"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newRenderer(t *testing.T) *termplot.Renderer {
	t.Helper()
	r, err := termplot.NewRenderer(termplot.RendererParams{MeasureCacheSize: 8})
	require.NoError(t, err)
	return r
}

func rows(s string) []string {
	return strings.Split(s, "\n")
}

func text(at plot.Point, s string) plot.Primitive {
	return plot.Primitive{
		Kind:   plot.PrimitiveText,
		Layer:  plot.LayerLabel,
		Points: []plot.Point{at},
		Text:   s,
	}
}

func TestMeasure(t *testing.T) {
	r := newRenderer(t)

	assert.Equal(t, plot.Size{W: 3, H: 1}, r.Measure("abc", plot.TextStyle{}))
	assert.Equal(t, plot.Size{W: 4, H: 1}, r.Measure("日本", plot.TextStyle{}))
	assert.Equal(t, plot.Size{W: 3, H: 2}, r.Measure("a\nbcd", plot.TextStyle{}))
	assert.Equal(t, plot.Size{}, r.Measure("", plot.TextStyle{}))

	// Cached results stay the same.
	assert.Equal(t, plot.Size{W: 4, H: 1}, r.Measure("日本", plot.TextStyle{}))
}

func TestRender_Text(t *testing.T) {
	r := newRenderer(t)
	r.Draw(text(plot.Pt(2, 1), "hi"))

	out := rows(r.Render(6, 3, termplot.Frame{}))

	require.Len(t, out, 3)
	assert.Equal(t, "  hi  ", out[1])
	assert.Equal(t, "      ", out[0])
}

func TestRender_EraseAndOffset(t *testing.T) {
	r := newRenderer(t)
	a := r.Draw(text(plot.Pt(0, 0), "a"))
	r.Draw(text(plot.Pt(0, 1), "b"))

	r.Erase(a)
	r.SetOffset(plot.Pt(2, -1))
	out := rows(r.Render(4, 2, termplot.Frame{}))

	assert.Equal(t, "  b ", out[0])
	assert.Equal(t, "    ", out[1])
	assert.Equal(t, 1, r.Len())
}

func TestRender_AxisAlignedLines(t *testing.T) {
	r := newRenderer(t)
	r.Draw(plot.Primitive{
		Kind:   plot.PrimitiveLine,
		Layer:  plot.LayerGrid,
		Points: []plot.Point{plot.Pt(0, 1), plot.Pt(4, 1)},
	})
	r.Draw(plot.Primitive{
		Kind:   plot.PrimitiveLine,
		Layer:  plot.LayerGrid,
		Points: []plot.Point{plot.Pt(4, 0), plot.Pt(4, 3)},
	})

	out := rows(r.Render(5, 3, termplot.Frame{}))

	assert.Equal(t, "────│", out[1])
	assert.Equal(t, "    │", out[0])
}

func TestRender_PolylineUsesBraille(t *testing.T) {
	r := newRenderer(t)
	r.Draw(plot.Primitive{
		Kind:   plot.PrimitivePolyline,
		Layer:  plot.LayerSeries,
		Points: []plot.Point{plot.Pt(0, 0.5), plot.Pt(9.5, 0.5)},
	})

	out := rows(r.Render(10, 2, termplot.Frame{}))

	for _, ch := range out[0] {
		assert.True(t, ch >= 0x2800 && ch <= 0x28FF, "rune %q", ch)
	}
	assert.Equal(t, strings.Repeat(" ", 10), out[1])
}

func TestRender_HoveredMarker(t *testing.T) {
	r := newRenderer(t)
	ref := r.Draw(plot.Primitive{
		Kind:   plot.PrimitiveMarker,
		Layer:  plot.LayerMarker,
		Points: []plot.Point{plot.Pt(1.5, 0.5)},
	})

	assert.Equal(t, " • ", r.Render(3, 1, termplot.Frame{}))

	r.SetShapeState(ref, plot.ShapeState{Fill: "#FFFFFF", Opacity: 1, Hovered: true})
	assert.Equal(t, " ● ", r.Render(3, 1, termplot.Frame{}))
}

func TestRender_RotatedTextReadsBottomToTop(t *testing.T) {
	r := newRenderer(t)
	p := text(plot.Pt(0, 0), "ab")
	p.Rotation = -90
	r.Draw(p)

	out := rows(r.Render(1, 2, termplot.Frame{}))

	assert.Equal(t, []string{"b", "a"}, out)
}

func TestLegend(t *testing.T) {
	r := newRenderer(t)
	entries := []plot.LegendEntry{{Title: "ab"}, {Title: "cde"}}

	assert.Equal(t, plot.Size{W: 4 + 2 + 5, H: 1}, r.LegendSize(entries, plot.Horizontal))
	assert.Equal(t, plot.Size{W: 5, H: 2}, r.LegendSize(entries, plot.Vertical))
	assert.Equal(t, plot.Size{}, r.LegendSize(nil, plot.Vertical))

	out := r.Render(11, 1, termplot.Frame{
		Legend:      entries,
		LegendRect:  plot.Rect{W: 11, H: 1},
		Orientation: plot.Horizontal,
	})
	assert.Equal(t, "■ ab  ■ cde", out)
}

func TestTooltip(t *testing.T) {
	r := newRenderer(t)
	tooltip := plot.Tooltip{
		Header: "2",
		Rows:   []plot.TooltipRow{{Title: "Charles", Value: "7"}},
	}

	size := r.TooltipSize(tooltip)
	assert.Equal(t, plot.Size{W: 16, H: 4}, size)

	out := rows(r.Render(20, 5, termplot.Frame{
		Tooltip: plot.TooltipState{
			Tooltip:  tooltip,
			Visible:  true,
			Position: plot.Pt(1, 0),
			Size:     size,
		},
	}))

	assert.Equal(t, " ╭──────────────╮   ", out[0])
	assert.Equal(t, " │ 2            │   ", out[1])
	assert.Equal(t, " │ ■ Charles: 7 │   ", out[2])
	assert.Equal(t, " ╰──────────────╯   ", out[3])
}
