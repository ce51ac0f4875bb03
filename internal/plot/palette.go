package plot

import (
	"math/rand/v2"
	"strings"
)

// Palette is a cycle of series colors.
type Palette []Color

// MaterialPalette is the default series palette.
var MaterialPalette = Palette{
	"#2196F3",
	"#F44336",
	"#FFC107",
	"#4CAF50",
	"#9C27B0",
	"#FF9800",
	"#00BCD4",
	"#795548",
	"#E91E63",
	"#8BC34A",
}

// SunsetPalette is a warm gradient from magenta to amber.
var SunsetPalette = Palette{
	"#E281FE",
	"#E78DE3",
	"#E993D5",
	"#ED9FBB",
	"#F0A5AD",
	"#F2AB9F",
	"#F6B784",
	"#F8BD78",
	"#FBC36B",
	"#FFCF4F",
}

// PaletteByName returns a named palette.
func PaletteByName(name string) (Palette, error) {
	switch strings.ToLower(name) {
	case "", "material":
		return MaterialPalette, nil
	case "sunset":
		return SunsetPalette, nil
	default:
		return nil, invalidConfig("palette", name)
	}
}

// colorAssigner hands out palette colors round-robin.
type colorAssigner struct {
	palette Palette
	next    int
}

func newColorAssigner(palette Palette, start int, randomize bool) *colorAssigner {
	if len(palette) == 0 {
		palette = MaterialPalette
	}
	if randomize {
		start = rand.IntN(len(palette))
	}
	start %= len(palette)
	if start < 0 {
		start += len(palette)
	}
	return &colorAssigner{palette: palette, next: start}
}

// assign gives s a stroke and fill unless it already has a stroke.
func (c *colorAssigner) assign(s *Series) {
	if s.Stroke != "" {
		if s.Fill == "" {
			s.Fill = s.Stroke
		}
		return
	}

	color := c.palette[c.next]
	c.next = (c.next + 1) % len(c.palette)

	s.Stroke = color
	if s.Fill == "" {
		s.Fill = color
	}
	if s.FillOpacity == 0 {
		s.FillOpacity = defaultFillOpacity
	}
}
