package termplot

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/mattn/go-runewidth"

	"github.com/wandb/wandb/plotkit/internal/plot"
)

// legendGap separates entries of a horizontal legend.
const legendGap = 2

// legendEntryWidth is the swatch, a space and the title.
func legendEntryWidth(e plot.LegendEntry) int {
	return runewidth.StringWidth(legendSwatch) + 1 + runewidth.StringWidth(e.Title)
}

// LegendSize returns the cells taken by a legend.
//
// Horizontal legends are one row; vertical legends have one row per entry.
func (r *Renderer) LegendSize(
	entries []plot.LegendEntry,
	orientation plot.Orientation,
) plot.Size {
	if len(entries) == 0 {
		return plot.Size{}
	}

	if orientation == plot.Vertical {
		var w int
		for _, e := range entries {
			w = max(w, legendEntryWidth(e))
		}
		return plot.Size{W: float64(w), H: float64(len(entries))}
	}

	w := legendGap * (len(entries) - 1)
	for _, e := range entries {
		w += legendEntryWidth(e)
	}
	return plot.Size{W: float64(w), H: 1}
}

func (r *Renderer) drawLegend(m *canvas.Model, frame Frame) {
	x := int(math.Floor(frame.LegendRect.X))
	y := int(math.Floor(frame.LegendRect.Y))

	for _, e := range frame.Legend {
		m.SetStringWithStyle(canvas.Point{X: x, Y: y}, legendSwatch, colorStyle(e.Stroke))
		m.SetStringWithStyle(
			canvas.Point{X: x + runewidth.StringWidth(legendSwatch) + 1, Y: y},
			e.Title,
			legendTextStyle,
		)

		if frame.Orientation == plot.Vertical {
			y++
		} else {
			x += legendEntryWidth(e) + legendGap
		}
	}
}

// tooltipLines returns the text content of a tooltip, one entry per line.
func tooltipLines(t plot.Tooltip) []string {
	lines := make([]string, 0, len(t.Rows)+1)
	if t.Header != "" {
		lines = append(lines, t.Header)
	}
	for _, row := range t.Rows {
		lines = append(lines, legendSwatch+" "+row.Title+": "+row.Value)
	}
	return lines
}

// TooltipSize returns the cells taken by a tooltip box: a rounded border
// with one cell of horizontal padding around the content.
func (r *Renderer) TooltipSize(t plot.Tooltip) plot.Size {
	lines := tooltipLines(t)
	if len(lines) == 0 {
		return plot.Size{}
	}

	var w int
	for _, line := range lines {
		w = max(w, runewidth.StringWidth(line))
	}
	return plot.Size{W: float64(w + 4), H: float64(len(lines) + 2)}
}

func (r *Renderer) drawTooltip(m *canvas.Model, state plot.TooltipState) {
	lines := tooltipLines(state.Tooltip)
	if len(lines) == 0 {
		return
	}

	size := r.TooltipSize(state.Tooltip)
	w, h := int(size.W), int(size.H)
	pos := state.Position.Add(r.offset)
	x0 := max(0, min(int(math.Floor(pos.X)), m.Width()-w))
	y0 := max(0, min(int(math.Floor(pos.Y)), m.Height()-h))

	border := func(x, y int, s string) {
		m.SetStringWithStyle(canvas.Point{X: x, Y: y}, s, tooltipBorderStyle)
	}
	blank := canvas.NewCell(' ')

	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			m.SetCell(canvas.Point{X: x, Y: y}, blank)
		}
	}

	for x := x0 + 1; x < x0+w-1; x++ {
		border(x, y0, tooltipBorder.Top)
		border(x, y0+h-1, tooltipBorder.Bottom)
	}
	for y := y0 + 1; y < y0+h-1; y++ {
		border(x0, y, tooltipBorder.Left)
		border(x0+w-1, y, tooltipBorder.Right)
	}
	border(x0, y0, tooltipBorder.TopLeft)
	border(x0+w-1, y0, tooltipBorder.TopRight)
	border(x0, y0+h-1, tooltipBorder.BottomLeft)
	border(x0+w-1, y0+h-1, tooltipBorder.BottomRight)

	row := 0
	if state.Header != "" {
		m.SetStringWithStyle(
			canvas.Point{X: x0 + 2, Y: y0 + 1}, state.Header, tooltipHeaderStyle)
		row++
	}
	for _, entry := range state.Rows {
		y := y0 + 1 + row
		m.SetStringWithStyle(canvas.Point{X: x0 + 2, Y: y}, legendSwatch, colorStyle(entry.Stroke))
		m.SetStringWithStyle(
			canvas.Point{X: x0 + 2 + runewidth.StringWidth(legendSwatch) + 1, Y: y},
			entry.Title+": "+entry.Value,
			legendTextStyle,
		)
		row++
	}
}
