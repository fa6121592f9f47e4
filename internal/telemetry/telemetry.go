// Package telemetry traces controller operations and program runs with
// OpenTelemetry. Spans leave the process over OTLP HTTP; the endpoint and
// headers come from the standard OTEL_EXPORTER_OTLP_* variables.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	defaultServiceName = "gridquest"
	serviceVersion     = "0.1.0"
	tracerPrefix       = "gridquest/"
)

// Options configures the tracer provider.
type Options struct {
	ServiceName string
	// SampleRatio is the fraction of root spans recorded. Values >= 1 or
	// <= 0 record everything; child spans follow their parent.
	SampleRatio float64
	// Source tags the resource with how the process drives the controller
	// (play, program or ssh).
	Source string
	// Processors receive spans in addition to, or instead of, OTLP export.
	Processors []sdktrace.SpanProcessor
	// DisableExport skips the OTLP exporter, leaving only Processors.
	DisableExport bool
}

// Setup installs a global tracer provider and returns its shutdown func,
// which flushes pending spans and should run on exit.
func Setup(ctx context.Context, opts Options) (shutdown func(context.Context) error, err error) {
	procs := opts.Processors
	if !opts.DisableExport {
		exporter, expErr := otlptracehttp.New(ctx)
		if expErr != nil {
			return nil, expErr
		}
		procs = append(procs, sdktrace.NewBatchSpanProcessor(exporter))
	}

	res, err := newResource(ctx, opts)
	if err != nil {
		return nil, err
	}

	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(opts.SampleRatio)),
	}
	for _, p := range procs {
		providerOpts = append(providerOpts, sdktrace.WithSpanProcessor(p))
	}
	tp := sdktrace.NewTracerProvider(providerOpts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func sampler(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// newResource describes this process. The resource is built fresh rather
// than merged with resource.Default() so schema URLs never conflict.
func newResource(ctx context.Context, opts Options) (*resource.Resource, error) {
	name := opts.ServiceName
	if name == "" {
		name = defaultServiceName
	}

	attrs := []attribute.KeyValue{
		attribute.String("service.name", name),
		attribute.String("service.version", serviceVersion),
		attribute.String("service.instance.id", uuid.NewString()),
		attribute.String("host.name", hostname()),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.version", runtime.Version()),
	}
	if opts.Source != "" {
		attrs = append(attrs, attribute.String("gridquest.source", opts.Source))
	}

	return resource.New(ctx, resource.WithAttributes(attrs...))
}

// Tracer returns a named tracer for the given component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(tracerPrefix + name)
}

// NoopTracer returns a no-op tracer for use when telemetry is disabled.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(tracerPrefix + "noop")
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
