// Package datasource feeds chart series from files and from the host.
package datasource

import (
	"io"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"github.com/wandb/simplejsonext"

	"github.com/wandb/wandb/plotkit/internal/observability/wberrors"
	"github.com/wandb/wandb/plotkit/internal/plot"
)

// StepKey is the optional history key holding the X value of a row.
const StepKey = "_step"

// History is series data read from a JSONL file.
//
// Each line is a JSON object mapping metric names to numbers. A row's X
// value is its StepKey if present, and its line number otherwise. Other
// keys starting with "_" and non-numeric values are ignored.
type History struct {
	keys    []string
	metrics map[string][]plot.Point
	steps   bool
}

// LoadHistory reads a JSONL history file.
func LoadHistory(fs afero.Fs, path string) (*History, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, wberrors.Enrichf(err, "datasource: opening %s", path)
	}
	defer func() { _ = f.Close() }()

	h, err := ParseHistory(f)
	if err != nil {
		return nil, wberrors.Enrichf(err, "datasource: reading %s", path)
	}
	return h, nil
}

// ParseHistory parses JSONL history rows.
func ParseHistory(r io.Reader) (*History, error) {
	h := &History{metrics: make(map[string][]plot.Point)}

	row := 0
	for obj, err := range simplejsonext.NewParser(r).IterObjectLines() {
		if err != nil {
			return nil, wberrors.Enrichf(err, "line %d", row+1)
		}

		x := float64(row)
		if step, ok := number(obj[StepKey]); ok {
			x = step
			h.steps = true
		}

		for _, key := range sortedKeys(obj) {
			if strings.HasPrefix(key, "_") {
				continue
			}
			y, ok := number(obj[key])
			if !ok {
				continue
			}
			if _, seen := h.metrics[key]; !seen {
				h.keys = append(h.keys, key)
			}
			h.metrics[key] = append(h.metrics[key], plot.Pt(x, y))
		}

		row++
	}

	return h, nil
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Keys returns metric names in order of first appearance.
func (h *History) Keys() []string { return slices.Clone(h.keys) }

// Points returns the points of one metric.
func (h *History) Points(key string) []plot.Point {
	return slices.Clone(h.metrics[key])
}

// HasSteps reports whether any row carried a StepKey.
func (h *History) HasSteps() bool { return h.steps }

// Sync makes the collection hold one series per metric.
//
// Existing series are matched by title and only replaced when their points
// differ. Series for metrics absent from the history are removed.
func (h *History) Sync(c *plot.SeriesCollection) {
	var added, removed []*plot.Series

	for _, s := range c.All() {
		if _, ok := h.metrics[s.Title]; !ok {
			removed = append(removed, s)
		}
	}
	if len(removed) > 0 {
		c.Remove(removed...)
	}

	for _, key := range h.keys {
		points := h.metrics[key]
		if s := c.Find(key); s != nil {
			if !slices.Equal(s.Points(), points) {
				s.Replace(points)
			}
			continue
		}
		added = append(added, plot.NewXYSeries(key, points...))
	}
	if len(added) > 0 {
		c.Add(added...)
	}
}
