// Command plotkit plots series in the terminal with zoom, pan and hover.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/wandb/wandb/plotkit/internal/datasource"
	"github.com/wandb/wandb/plotkit/internal/observability"
	"github.com/wandb/wandb/plotkit/internal/plot"
	"github.com/wandb/wandb/plotkit/internal/plotconfig"
	"github.com/wandb/wandb/plotkit/internal/plotui"
	"github.com/wandb/wandb/plotkit/internal/sentry_ext"
	"github.com/wandb/wandb/plotkit/internal/watcher"
)

const version = "0.1.0"

const debugLogName = "plotkit.debug.log"

type args struct {
	Path        string `arg:"positional" help:"JSONL history file to plot; a demo dataset is shown if omitted"`
	Config      string `arg:"--config" help:"configuration file [default: $PLOTKIT_CONFIG_DIR/plotkit.yaml]"`
	System      bool   `arg:"--system" help:"plot live host CPU and memory utilization"`
	MetricsAddr string `arg:"--metrics-addr" help:"serve Prometheus metrics on this address, e.g. :9090"`
	Debug       bool   `arg:"--debug,env:PLOTKIT_DEBUG" help:"write a debug log to plotkit.debug.log"`
	SentryDSN   string `arg:"--sentry-dsn,env:PLOTKIT_SENTRY_DSN" help:"report errors to this Sentry DSN"`
}

func (args) Description() string {
	return "plotkit - interactive terminal line charts\n\n" +
		"Each line of a history file is a JSON object of metric values;\n" +
		"an optional \"_step\" key gives the x value. The chart reloads\n" +
		"when the file changes.\n"
}

func (args) Version() string {
	return "plotkit " + version
}

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	var a args
	parser := arg.MustParse(&a)
	if a.Path != "" && a.System {
		parser.Fail("--system cannot be combined with a history file")
	}

	sentryClient := sentry_ext.New(sentry_ext.Params{
		DSN:              a.SentryDSN,
		AttachStacktrace: true,
		Release:          version,
	})
	defer sentryClient.Flush(2 * time.Second)

	var writer io.Writer = io.Discard
	if a.Debug {
		loggerFile, err := os.OpenFile(
			debugLogName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			return 1
		}
		writer = loggerFile
		defer func() {
			_ = loggerFile.Close()
		}()
	}

	logger := observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(
			writer,
			&slog.HandlerOptions{Level: slog.LevelDebug},
		)),
		&observability.CoreLoggerParams{
			Tags:   observability.Tags{},
			Sentry: sentryClient,
		},
	)

	defer logger.Reraise()

	lipgloss.SetColorProfile(termenv.EnvColorProfile())

	if err := run(a, logger); err != nil {
		logger.CaptureFatal(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(a args, logger *observability.CoreLogger) error {
	fs := afero.NewOsFs()
	config := plotconfig.NewConfigManager(plotconfig.ConfigManagerParams{
		Fs:     fs,
		Path:   a.Config,
		Logger: logger,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	params := plotui.ModelParams{
		Config:  config,
		Fs:      fs,
		Metrics: plot.NewMetrics(registry),
		Logger:  logger,
	}
	switch {
	case a.Path != "":
		params.HistoryPath = a.Path
		params.Watcher = watcher.New(watcher.Params{Logger: logger})
	case a.System:
		params.Sampler = datasource.NewSystemSampler(datasource.SystemSamplerParams{})
	default:
		params.Series, params.XFormatter = demoData()
	}

	model, err := plotui.NewModel(params)
	if err != nil {
		return err
	}

	var server *http.Server
	if a.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		server = &http.Server{
			Addr:              a.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	var g errgroup.Group
	if server != nil {
		g.Go(func() error {
			logger.Debug(fmt.Sprintf("metrics: serving on %s", server.Addr))
			err := server.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			program.Quit()
			return err
		})
	}
	g.Go(func() error {
		defer func() {
			if server == nil {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		}()

		_, err := program.Run()
		return err
	})

	return g.Wait()
}

// demoData is a week of two series.
func demoData() ([]*plot.Series, func(float64) string) {
	days := []string{"mon", "tue", "wed", "thu", "fri", "sat"}
	format := func(v float64) string {
		i := int(v)
		if float64(i) != v || i < 0 || i >= len(days) {
			return ""
		}
		return days[i]
	}

	return []*plot.Series{
		plot.NewSeries("Charles", 10, 5, 7, 5, 7, 8),
		plot.NewSeries("James", 5, 6, 9, 10, 11, 9),
	}, format
}
