// Package plotconfig loads and persists the chart configuration.
package plotconfig

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wandb/wandb/plotkit/internal/observability"
	"github.com/wandb/wandb/plotkit/internal/observability/wberrors"
	"github.com/wandb/wandb/plotkit/internal/plot"
)

const (
	envConfigDir = "PLOTKIT_CONFIG_DIR"
	configName   = "plotkit.yaml"

	// Debounce bounds in milliseconds.
	MinDebounceMillis, MaxDebounceMillis = 10, 10_000

	DefaultLegend     = "right"
	DefaultHoverMode  = "dot"
	DefaultHoverColor = "#FFFFFF"
	DefaultZoomAxis   = "x"
	DefaultPalette    = "material"

	DefaultDebounceMillis    = 100
	DefaultTooltipHideMillis = 1000

	// Layout spacing in cells.
	DefaultPadding     = 1
	DefaultLabelGap    = 1
	DefaultUsableFloor = 4

	DefaultCleanFactor = 3
)

// Config is the on-disk configuration.
type Config struct {
	// Legend is one of none, top, bottom, left, right.
	Legend string `yaml:"legend"`

	// HoverMode is dot or opacity.
	HoverMode  string `yaml:"hover_mode"`
	HoverColor string `yaml:"hover_color"`

	// ZoomAxis is x, y or none.
	ZoomAxis string `yaml:"zoom_axis"`

	Invert bool `yaml:"invert"`

	// Palette is material or sunset.
	Palette          string `yaml:"palette"`
	RandomStartColor bool   `yaml:"random_start_color"`

	Debounce DebounceConfig `yaml:"debounce"`
	Layout   LayoutConfig   `yaml:"layout"`

	XAxis AxisConfig `yaml:"x_axis"`
	YAxis AxisConfig `yaml:"y_axis"`
}

// DebounceConfig holds quiet periods in milliseconds.
type DebounceConfig struct {
	ResizeMillis      int `yaml:"resize_ms"`
	SeriesMillis      int `yaml:"series_ms"`
	ValuesMillis      int `yaml:"values_ms"`
	TooltipHideMillis int `yaml:"tooltip_hide_ms"`
}

// LayoutConfig holds layout spacing in cells.
type LayoutConfig struct {
	Padding     float64 `yaml:"padding"`
	LabelGap    float64 `yaml:"label_gap"`
	UsableFloor float64 `yaml:"usable_floor"`
}

// AxisConfig customizes one data axis.
type AxisConfig struct {
	Title       string   `yaml:"title,omitempty"`
	CleanFactor float64  `yaml:"clean_factor"`
	Min         *float64 `yaml:"min,omitempty"`
	Max         *float64 `yaml:"max,omitempty"`
}

func defaultConfig() Config {
	return Config{
		Legend:     DefaultLegend,
		HoverMode:  DefaultHoverMode,
		HoverColor: DefaultHoverColor,
		ZoomAxis:   DefaultZoomAxis,
		Palette:    DefaultPalette,
		Debounce: DebounceConfig{
			ResizeMillis:      DefaultDebounceMillis,
			SeriesMillis:      DefaultDebounceMillis,
			ValuesMillis:      DefaultDebounceMillis,
			TooltipHideMillis: DefaultTooltipHideMillis,
		},
		Layout: LayoutConfig{
			Padding:     DefaultPadding,
			LabelGap:    DefaultLabelGap,
			UsableFloor: DefaultUsableFloor,
		},
		XAxis: AxisConfig{CleanFactor: DefaultCleanFactor},
		YAxis: AxisConfig{CleanFactor: DefaultCleanFactor},
	}
}

// DefaultPath returns $PLOTKIT_CONFIG_DIR/plotkit.yaml, or plotkit.yaml in
// the user configuration directory.
func DefaultPath() string {
	if dir := os.Getenv(envConfigDir); dir != "" {
		return filepath.Join(dir, configName)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "plotkit", configName)
	}
	return configName
}

type ConfigManagerParams struct {
	Fs     afero.Fs
	Path   string
	Logger *observability.CoreLogger
}

// ConfigManager manages the configuration with thread-safe access and
// automatic persistence.
//
// All setters save the configuration.
type ConfigManager struct {
	mu     sync.RWMutex
	fs     afero.Fs
	path   string
	config Config
	logger *observability.CoreLogger
}

func NewConfigManager(params ConfigManagerParams) *ConfigManager {
	fs := params.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	path := params.Path
	if path == "" {
		path = DefaultPath()
	}
	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}

	cm := &ConfigManager{
		fs:     fs,
		path:   path,
		config: defaultConfig(),
		logger: logger,
	}
	if err := cm.loadOrCreateConfig(); err != nil {
		cm.logger.CaptureError(
			wberrors.Enrichf(err, "config: error loading or creating").
				SkipSentryIf(true))
	}

	return cm
}

// loadOrCreateConfig loads the configuration or stores the defaults.
func (cm *ConfigManager) loadOrCreateConfig() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	data, err := afero.ReadFile(cm.fs, cm.path)
	if os.IsNotExist(err) {
		if err := cm.fs.MkdirAll(filepath.Dir(cm.path), 0o755); err != nil {
			return err
		}
		return cm.save()
	}
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, &cm.config); err != nil {
		return wberrors.Enrichf(err, "parsing %s", cm.path)
	}

	cm.normalizeConfig()
	return nil
}

// normalizeConfig replaces unsupported values with defaults and clamps
// numbers into range.
func (cm *ConfigManager) normalizeConfig() {
	def := defaultConfig()
	c := &cm.config

	if _, err := plot.ParseLegendLocation(c.Legend); err != nil {
		cm.logger.Warn(fmt.Sprintf("config: %v, using %q", err, def.Legend))
		c.Legend = def.Legend
	}
	if _, err := plot.ParseHoverMode(c.HoverMode); err != nil {
		cm.logger.Warn(fmt.Sprintf("config: %v, using %q", err, def.HoverMode))
		c.HoverMode = def.HoverMode
	}
	if _, err := parseZoomAxis(c.ZoomAxis); err != nil {
		cm.logger.Warn(fmt.Sprintf("config: %v, using %q", err, def.ZoomAxis))
		c.ZoomAxis = def.ZoomAxis
	}
	if _, err := plot.PaletteByName(c.Palette); err != nil {
		cm.logger.Warn(fmt.Sprintf("config: %v, using %q", err, def.Palette))
		c.Palette = def.Palette
	}
	if c.HoverColor == "" {
		c.HoverColor = def.HoverColor
	}

	c.Debounce.ResizeMillis = clampMillis(c.Debounce.ResizeMillis, def.Debounce.ResizeMillis)
	c.Debounce.SeriesMillis = clampMillis(c.Debounce.SeriesMillis, def.Debounce.SeriesMillis)
	c.Debounce.ValuesMillis = clampMillis(c.Debounce.ValuesMillis, def.Debounce.ValuesMillis)
	c.Debounce.TooltipHideMillis = clampMillis(
		c.Debounce.TooltipHideMillis, def.Debounce.TooltipHideMillis)

	c.Layout.Padding = max(c.Layout.Padding, 0)
	c.Layout.LabelGap = max(c.Layout.LabelGap, 0)
	if c.Layout.UsableFloor < 1 {
		c.Layout.UsableFloor = def.Layout.UsableFloor
	}

	if c.XAxis.CleanFactor <= 0 {
		c.XAxis.CleanFactor = DefaultCleanFactor
	}
	if c.YAxis.CleanFactor <= 0 {
		c.YAxis.CleanFactor = DefaultCleanFactor
	}
}

// clampMillis bounds a debounce duration; zero means the default.
func clampMillis(v, def int) int {
	if v == 0 {
		return def
	}
	return max(MinDebounceMillis, min(v, MaxDebounceMillis))
}

// save writes the configuration atomically via a temp file and rename.
//
// Must be called while holding the lock.
func (cm *ConfigManager) save() error {
	data, err := yaml.Marshal(cm.config)
	if err != nil {
		return err
	}

	tempPath := cm.path + ".tmp"
	if err := afero.WriteFile(cm.fs, tempPath, data, 0o644); err != nil {
		return wberrors.Enrichf(err, "failed to write temp config file")
	}
	if err := cm.fs.Rename(tempPath, cm.path); err != nil {
		return wberrors.Enrichf(err, "failed to rename tmp config file")
	}

	return nil
}

// Path returns the configuration file path.
func (cm *ConfigManager) Path() string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.path
}

// Snapshot returns a copy of the current config.
func (cm *ConfigManager) Snapshot() Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

func (cm *ConfigManager) SetLegend(location string) error {
	if _, err := plot.ParseLegendLocation(location); err != nil {
		return err
	}
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.Legend = location
	return cm.save()
}

func (cm *ConfigManager) SetHoverMode(mode string) error {
	if _, err := plot.ParseHoverMode(mode); err != nil {
		return err
	}
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.HoverMode = mode
	return cm.save()
}

func (cm *ConfigManager) SetZoomAxis(axis string) error {
	if _, err := parseZoomAxis(axis); err != nil {
		return err
	}
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.ZoomAxis = axis
	return cm.save()
}

func (cm *ConfigManager) SetPalette(name string) error {
	if _, err := plot.PaletteByName(name); err != nil {
		return err
	}
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.Palette = name
	return cm.save()
}

func (cm *ConfigManager) SetInvert(invert bool) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.Invert = invert
	return cm.save()
}

func parseZoomAxis(s string) (plot.AxisID, error) {
	return plot.ParseAxisID(s)
}

// Validate reports unsupported enum values as plot.ErrInvalidConfiguration.
func (c Config) Validate() error {
	_, err := c.Options()
	return err
}

// Options converts the configuration into chart options.
func (c Config) Options() (plot.Options, error) {
	opts := plot.DefaultOptions()

	var err error
	if opts.Legend, err = plot.ParseLegendLocation(c.Legend); err != nil {
		return opts, err
	}
	if opts.HoverMode, err = plot.ParseHoverMode(c.HoverMode); err != nil {
		return opts, err
	}
	if opts.ZoomAxis, err = parseZoomAxis(c.ZoomAxis); err != nil {
		return opts, err
	}
	if opts.Palette, err = plot.PaletteByName(c.Palette); err != nil {
		return opts, err
	}

	if c.HoverColor != "" {
		opts.HoverColor = plot.Color(c.HoverColor)
	}
	opts.Invert = c.Invert
	opts.RandomStartColor = c.RandomStartColor

	opts.Debounce = plot.DebounceOptions{
		Resize:      millis(c.Debounce.ResizeMillis),
		Collection:  millis(c.Debounce.SeriesMillis),
		Values:      millis(c.Debounce.ValuesMillis),
		TooltipHide: millis(c.Debounce.TooltipHideMillis),
	}
	opts.Layout = plot.LayoutOptions{
		Padding:     c.Layout.Padding,
		LabelGap:    c.Layout.LabelGap,
		UsableFloor: c.Layout.UsableFloor,
	}
	opts.MarkerRadius = 1
	opts.TooltipOffset = 2
	opts.TooltipMargin = 1

	return opts, nil
}

// Axes builds the data axes: an index axis for X and a numeric axis for Y,
// swapped when inverted.
func (c Config) Axes() (x, y *plot.Axis) {
	x, y = plot.NewIndexedAxis(), plot.NewAxis()
	if c.Invert {
		x, y = plot.NewAxis(), plot.NewIndexedAxis()
	}

	x.LabelFormatter = formatTick
	y.LabelFormatter = formatTick

	c.XAxis.apply(x)
	c.YAxis.apply(y)
	return x, y
}

func (a AxisConfig) apply(axis *plot.Axis) {
	axis.Title = a.Title
	axis.CleanFactor = a.CleanFactor
	axis.MinValue = a.Min
	axis.MaxValue = a.Max
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// formatTick trims float noise from tick values.
func formatTick(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}
