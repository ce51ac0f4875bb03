package plotconfig_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/plotkit/internal/plot"
	"github.com/wandb/wandb/plotkit/internal/plotconfig"
)

const configPath = "/config/plotkit/plotkit.yaml"

func newConfigManager(t *testing.T, fs afero.Fs) *plotconfig.ConfigManager {
	t.Helper()
	return plotconfig.NewConfigManager(plotconfig.ConfigManagerParams{
		Fs:   fs,
		Path: configPath,
	})
}

func TestNewConfigManager_CreatesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()

	cm := newConfigManager(t, fs)

	exists, err := afero.Exists(fs, configPath)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, configPath, cm.Path())

	cfg := cm.Snapshot()
	assert.Equal(t, plotconfig.DefaultLegend, cfg.Legend)
	assert.Equal(t, plotconfig.DefaultZoomAxis, cfg.ZoomAxis)
	assert.Equal(t, plotconfig.DefaultDebounceMillis, cfg.Debounce.ResizeMillis)
	assert.Equal(t, plotconfig.DefaultTooltipHideMillis, cfg.Debounce.TooltipHideMillis)
}

func TestNewConfigManager_NormalizesLoadedValues(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, configPath, []byte(`
legend: middle
hover_mode: opacity
zoom_axis: y
palette: neon
debounce:
  resize_ms: 5
  values_ms: 99999
layout:
  padding: -3
  usable_floor: 0
x_axis:
  title: Day
  clean_factor: -1
`), 0o644))

	cfg := newConfigManager(t, fs).Snapshot()

	assert.Equal(t, plotconfig.DefaultLegend, cfg.Legend)
	assert.Equal(t, "opacity", cfg.HoverMode)
	assert.Equal(t, "y", cfg.ZoomAxis)
	assert.Equal(t, plotconfig.DefaultPalette, cfg.Palette)
	assert.Equal(t, plotconfig.MinDebounceMillis, cfg.Debounce.ResizeMillis)
	assert.Equal(t, plotconfig.MaxDebounceMillis, cfg.Debounce.ValuesMillis)
	assert.Equal(t, plotconfig.DefaultDebounceMillis, cfg.Debounce.SeriesMillis)
	assert.Zero(t, cfg.Layout.Padding)
	assert.Equal(t, float64(plotconfig.DefaultUsableFloor), cfg.Layout.UsableFloor)
	assert.Equal(t, "Day", cfg.XAxis.Title)
	assert.Equal(t, float64(plotconfig.DefaultCleanFactor), cfg.XAxis.CleanFactor)
}

func TestNewConfigManager_InvalidYAMLKeepsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, configPath, []byte("legend: ["), 0o644))

	cfg := newConfigManager(t, fs).Snapshot()

	assert.Equal(t, plotconfig.DefaultLegend, cfg.Legend)
}

func TestSetters_Persist(t *testing.T) {
	fs := afero.NewMemMapFs()
	cm := newConfigManager(t, fs)

	require.NoError(t, cm.SetLegend("bottom"))
	require.NoError(t, cm.SetHoverMode("opacity"))
	require.NoError(t, cm.SetZoomAxis("none"))
	require.NoError(t, cm.SetPalette("sunset"))
	require.NoError(t, cm.SetInvert(true))

	cfg := newConfigManager(t, fs).Snapshot()
	assert.Equal(t, "bottom", cfg.Legend)
	assert.Equal(t, "opacity", cfg.HoverMode)
	assert.Equal(t, "none", cfg.ZoomAxis)
	assert.Equal(t, "sunset", cfg.Palette)
	assert.True(t, cfg.Invert)

	exists, err := afero.Exists(fs, configPath+".tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSetters_RejectInvalidValues(t *testing.T) {
	cm := newConfigManager(t, afero.NewMemMapFs())

	assert.ErrorIs(t, cm.SetLegend("middle"), plot.ErrInvalidConfiguration)
	assert.ErrorIs(t, cm.SetHoverMode("glow"), plot.ErrInvalidConfiguration)
	assert.ErrorIs(t, cm.SetZoomAxis("z"), plot.ErrInvalidConfiguration)
	assert.ErrorIs(t, cm.SetPalette("neon"), plot.ErrInvalidConfiguration)

	assert.Equal(t, plotconfig.DefaultLegend, cm.Snapshot().Legend)
}

func TestConfig_Options(t *testing.T) {
	cfg := newConfigManager(t, afero.NewMemMapFs()).Snapshot()
	cfg.Debounce.TooltipHideMillis = 250

	opts, err := cfg.Options()

	require.NoError(t, err)
	assert.Equal(t, plot.LegendRight, opts.Legend)
	assert.Equal(t, plot.AxisX, opts.ZoomAxis)
	assert.Equal(t, plot.HoverDot, opts.HoverMode)
	assert.Equal(t, plot.MaterialPalette, opts.Palette)
	assert.Equal(t, 100*time.Millisecond, opts.Debounce.Resize)
	assert.Equal(t, 250*time.Millisecond, opts.Debounce.TooltipHide)
	assert.Equal(t, plot.LayoutOptions{Padding: 1, LabelGap: 1, UsableFloor: 4}, opts.Layout)
}

func TestConfig_OptionsRejectsUnknownValues(t *testing.T) {
	cfg := plotconfig.Config{Legend: "middle"}

	_, err := cfg.Options()

	assert.ErrorIs(t, err, plot.ErrInvalidConfiguration)
}

func TestConfig_Axes(t *testing.T) {
	cfg := plotconfig.Config{
		XAxis: plotconfig.AxisConfig{Title: "Step", CleanFactor: 2},
		YAxis: plotconfig.AxisConfig{Min: plot.Float(0)},
	}

	x, y := cfg.Axes()
	assert.True(t, x.IsIndexed())
	assert.False(t, y.IsIndexed())
	assert.Equal(t, "Step", x.Title)
	assert.Equal(t, 2.0, x.CleanFactor)
	require.NotNil(t, y.MinValue)
	assert.Equal(t, 0.0, *y.MinValue)
	assert.Equal(t, "0.3", y.Format(0.1+0.2))

	cfg.Invert = true
	x, y = cfg.Axes()
	assert.False(t, x.IsIndexed())
	assert.True(t, y.IsIndexed())
}

func TestDefaultPath_UsesEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PLOTKIT_CONFIG_DIR", dir)

	assert.Equal(t, filepath.Join(dir, "plotkit.yaml"), plotconfig.DefaultPath())
}

func TestConfig_Validate(t *testing.T) {
	cfg := newConfigManager(t, afero.NewMemMapFs()).Snapshot()
	require.NoError(t, cfg.Validate())

	cfg.HoverMode = "glow"
	assert.ErrorIs(t, cfg.Validate(), plot.ErrInvalidConfiguration)
}
