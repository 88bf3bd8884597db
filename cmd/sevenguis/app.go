package main

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/sevenguis-eventsourced/config"
	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore/oteladapters"
)

const instrumentationName = "github.com/AntonStoeckl/sevenguis-eventsourced"

// app carries what every command needs once the config is loaded.
type app struct {
	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	configPath string
	cfg        config.Config

	logger        *oteladapters.SlogBridgeLogger
	observability *config.Observability
	metrics       *oteladapters.MetricsCollector
	tracing       *oteladapters.TracingCollector
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, now: time.Now}

	root := &cobra.Command{
		Use:          "sevenguis",
		Short:        "The 7GUIs tasks as event-sourced state machines",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setUp()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.tearDown(cmd.Context())
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")

	root.AddCommand(
		a.circlesCommand(),
		a.countCommand(),
		a.convertCommand(),
		a.bookCommand(),
		a.timerCommand(),
	)

	return root
}

func (a *app) setUp() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	obs, err := cfg.Observability.NewObservability(a.errOut)
	if err != nil {
		return err
	}

	otel.SetTracerProvider(obs.TracerProvider)
	otel.SetMeterProvider(obs.MeterProvider)

	a.cfg = cfg
	a.observability = obs
	a.logger = oteladapters.NewSlogBridgeLoggerWithHandler(cfg.Log.NewSlogHandler(a.errOut))
	a.metrics = oteladapters.NewMetricsCollector(obs.Meter(instrumentationName))
	a.tracing = oteladapters.NewTracingCollector(obs.Tracer(instrumentationName))

	return nil
}

func (a *app) tearDown(ctx context.Context) error {
	if a.observability == nil {
		return nil
	}

	return a.observability.Shutdown(ctx)
}
