package datasource

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/wandb/wandb/plotkit/internal/observability/wberrors"
	"github.com/wandb/wandb/plotkit/internal/plot"
)

// Host statistics, replaceable in tests.
var (
	CPUPercent    = cpu.PercentWithContext
	VirtualMemory = mem.VirtualMemoryWithContext
)

const (
	CPUSeriesTitle    = "cpu %"
	MemorySeriesTitle = "memory %"

	defaultSystemWindow = 60
)

// SystemSample is one reading of host utilization, in percent.
type SystemSample struct {
	CPU    float64
	Memory float64
}

type SystemSamplerParams struct {
	// Window is the number of samples kept per series.
	Window int
}

// SystemSampler keeps rolling CPU and memory utilization series.
//
// Sample may run on any goroutine; Apply must run on the goroutine that
// owns the chart.
type SystemSampler struct {
	window int
	cpu    *plot.Series
	memory *plot.Series
}

func NewSystemSampler(params SystemSamplerParams) *SystemSampler {
	if params.Window <= 0 {
		params.Window = defaultSystemWindow
	}
	return &SystemSampler{
		window: params.Window,
		cpu:    plot.NewSeries(CPUSeriesTitle),
		memory: plot.NewSeries(MemorySeriesTitle),
	}
}

// Series returns the CPU and memory series.
func (s *SystemSampler) Series() []*plot.Series {
	return []*plot.Series{s.cpu, s.memory}
}

// Sample reads the current host utilization.
func (s *SystemSampler) Sample(ctx context.Context) (SystemSample, error) {
	var sample SystemSample

	percents, err := CPUPercent(ctx, 0, false)
	if err != nil {
		return sample, wberrors.Enrichf(err, "datasource: reading cpu")
	}
	if len(percents) > 0 {
		sample.CPU = percents[0]
	}

	vm, err := VirtualMemory(ctx)
	if err != nil {
		return sample, wberrors.Enrichf(err, "datasource: reading memory")
	}
	sample.Memory = vm.UsedPercent

	return sample, nil
}

// Apply appends a sample, dropping the oldest values beyond the window.
func (s *SystemSampler) Apply(sample SystemSample) {
	s.cpu.ReplaceValues(s.push(s.cpu, sample.CPU))
	s.memory.ReplaceValues(s.push(s.memory, sample.Memory))
}

func (s *SystemSampler) push(series *plot.Series, v float64) []float64 {
	points := series.Points()
	values := make([]float64, 0, len(points)+1)
	for _, p := range points {
		values = append(values, p.Y)
	}
	values = append(values, v)
	if extra := len(values) - s.window; extra > 0 {
		values = values[extra:]
	}
	return values
}
