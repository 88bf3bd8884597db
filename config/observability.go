package config

import (
	"context"
	"errors"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

var ErrCreatingExporterFailed = errors.New("creating the telemetry exporter failed")

// ObservabilityConfig selects where spans and metrics go.
type ObservabilityConfig struct {
	Exporter    string `yaml:"exporter" validate:"oneof=none stdout"`
	ServiceName string `yaml:"service_name" validate:"required"`
}

// Observability holds the OpenTelemetry SDK providers. Shutdown must be called to flush them.
type Observability struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
}

// NewObservability creates the providers. With the stdout exporter spans and metrics are written to w,
// with ExporterNone they are recorded and dropped.
func (c ObservabilityConfig) NewObservability(w io.Writer) (*Observability, error) {
	res := resource.NewWithAttributes("", attribute.String("service.name", c.ServiceName))

	traceOptions := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	meterOptions := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if c.Exporter == ExporterStdout {
		traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, errors.Join(ErrCreatingExporterFailed, err)
		}

		metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
		if err != nil {
			return nil, errors.Join(ErrCreatingExporterFailed, err)
		}

		traceOptions = append(traceOptions, sdktrace.WithSyncer(traceExporter))
		meterOptions = append(meterOptions, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)))
	}

	return &Observability{
		TracerProvider: sdktrace.NewTracerProvider(traceOptions...),
		MeterProvider:  sdkmetric.NewMeterProvider(meterOptions...),
	}, nil
}

func (o *Observability) Tracer(name string) trace.Tracer {
	return o.TracerProvider.Tracer(name)
}

func (o *Observability) Meter(name string) metric.Meter {
	return o.MeterProvider.Meter(name)
}

// Shutdown flushes and stops both providers.
func (o *Observability) Shutdown(ctx context.Context) error {
	return errors.Join(o.TracerProvider.Shutdown(ctx), o.MeterProvider.Shutdown(ctx))
}
