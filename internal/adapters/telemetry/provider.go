package telemetry

import (
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/genie/internal/core/ports"
)

// InstrumentationName is the tracer name used by every component.
const InstrumentationName = "go.trai.ch/genie"

// NewTracerProvider creates a provider whose spans are reported through the Bridge.
// It is also installed as the global provider.
func NewTracerProvider(logger ports.Logger, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithSpanProcessor(NewBridge(logger)),
	}, opts...)

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp
}

// NewTracer returns the tracer components use to start spans.
func NewTracer(tp trace.TracerProvider) trace.Tracer {
	return tp.Tracer(InstrumentationName)
}
