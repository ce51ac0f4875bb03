package plot

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wandb/wandb/plotkit/internal/observability/wberrors"
)

// HoverMode is how hovered points are highlighted.
type HoverMode int

const (
	// HoverDot fills the marker with the hover color.
	HoverDot HoverMode = iota
	// HoverOpacity dims the marker.
	HoverOpacity
)

func (m HoverMode) String() string {
	switch m {
	case HoverDot:
		return "dot"
	case HoverOpacity:
		return "opacity"
	default:
		return "unknown"
	}
}

// ParseHoverMode parses "dot" or "opacity".
func ParseHoverMode(s string) (HoverMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dot":
		return HoverDot, nil
	case "opacity":
		return HoverOpacity, nil
	default:
		return HoverDot, invalidConfig("hover mode", s)
	}
}

// DebounceOptions are the quiet periods of the update channels.
type DebounceOptions struct {
	Resize      time.Duration
	Collection  time.Duration
	Values      time.Duration
	TooltipHide time.Duration
}

func DefaultDebounceOptions() DebounceOptions {
	return DebounceOptions{
		Resize:      100 * time.Millisecond,
		Collection:  100 * time.Millisecond,
		Values:      100 * time.Millisecond,
		TooltipHide: time.Second,
	}
}

// Options configure a Chart.
type Options struct {
	Legend     LegendLocation
	HoverMode  HoverMode
	HoverColor Color

	// ZoomAxis is the data axis narrowed by zooming; AxisNone disables zoom
	// and pan.
	ZoomAxis AxisID

	// Invert plots data X along the vertical screen axis.
	Invert bool

	Palette          Palette
	ColorStartIndex  int
	RandomStartColor bool

	Debounce DebounceOptions
	Layout   LayoutOptions

	// MarkerRadius is the hit radius of data point markers.
	MarkerRadius float64

	// TooltipOffset separates the tooltip from the hovered point.
	TooltipOffset float64
	// TooltipMargin is kept between the tooltip and the canvas bottom.
	TooltipMargin float64
	// DisableTooltip turns off hover handling.
	DisableTooltip bool

	// ContentScale is the size of the drawn content relative to the canvas;
	// panning can reveal content beyond the canvas when it is above 1.
	ContentScale float64

	Metrics *Metrics
}

func DefaultOptions() Options {
	return Options{
		Legend:        LegendNone,
		HoverMode:     HoverDot,
		HoverColor:    "#FFFFFF",
		ZoomAxis:      AxisX,
		Palette:       MaterialPalette,
		Debounce:      DefaultDebounceOptions(),
		Layout:        DefaultLayoutOptions(),
		MarkerRadius:  4,
		TooltipOffset: 10,
		TooltipMargin: 5,
		ContentScale:  1,
	}
}

// normalize fills zero values with defaults and validates enums.
func (o Options) normalize() (Options, error) {
	def := DefaultOptions()

	if !o.Legend.valid() {
		return o, invalidConfig("legend location", o.Legend)
	}
	if o.HoverMode != HoverDot && o.HoverMode != HoverOpacity {
		return o, invalidConfig("hover mode", o.HoverMode)
	}
	if o.ZoomAxis != AxisNone && o.ZoomAxis != AxisX && o.ZoomAxis != AxisY {
		return o, invalidConfig("zoom axis", o.ZoomAxis)
	}

	if o.HoverColor == "" {
		o.HoverColor = def.HoverColor
	}
	if len(o.Palette) == 0 {
		o.Palette = def.Palette
	}
	if o.Debounce.Resize <= 0 {
		o.Debounce.Resize = def.Debounce.Resize
	}
	if o.Debounce.Collection <= 0 {
		o.Debounce.Collection = def.Debounce.Collection
	}
	if o.Debounce.Values <= 0 {
		o.Debounce.Values = def.Debounce.Values
	}
	if o.Debounce.TooltipHide <= 0 {
		o.Debounce.TooltipHide = def.Debounce.TooltipHide
	}
	if o.Layout == (LayoutOptions{}) {
		o.Layout = def.Layout
	}
	if o.MarkerRadius <= 0 {
		o.MarkerRadius = def.MarkerRadius
	}
	if o.TooltipOffset <= 0 {
		o.TooltipOffset = def.TooltipOffset
	}
	if o.TooltipMargin <= 0 {
		o.TooltipMargin = def.TooltipMargin
	}
	if o.ContentScale < 1 {
		o.ContentScale = 1
	}

	return o, nil
}

func invalidConfig(field string, value any) error {
	v := fmt.Sprint(value)
	return wberrors.Bubblef(ErrInvalidConfiguration,
		"plot: unsupported %s %q", field, v).
		Attr(slog.String(strings.ReplaceAll(field, " ", "_"), v)).
		SkipSentryIf(true)
}
