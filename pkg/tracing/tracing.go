package tracing

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName identifies this backend in exported traces.
const ServiceName = "trading-assistant"

const defaultEndpoint = "localhost:4317"

// Version is stamped at build time with -ldflags "-X .../pkg/tracing.Version=...".
var Version = "dev"

var newTraceExporter = func(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
	return otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
}

// InitTracer installs the global tracer provider and propagator.
//
// TRACING_ENABLED=false keeps spans in-process. Otherwise spans are batched
// to OTEL_EXPORTER_OTLP_ENDPOINT, sampled at TRACING_SAMPLE_RATIO (0..1,
// default 1) unless the parent span already decided.
func InitTracer(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(Version),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if strings.EqualFold(os.Getenv("TRACING_ENABLED"), "false") {
		log.Debug().Msg("trace export disabled")
	} else {
		endpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
		if endpoint == "" {
			endpoint = defaultEndpoint
		}
		exporter, err := newTraceExporter(ctx, endpoint)
		if err != nil {
			return nil, nil, err
		}
		ratio := sampleRatio(os.Getenv("TRACING_SAMPLE_RATIO"))
		opts = append(opts,
			sdktrace.WithBatcher(exporter),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		)
		log.Info().Str("endpoint", endpoint).Float64("sample_ratio", ratio).Msg("exporting traces")
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, tp.Tracer(ServiceName), nil
}

// sampleRatio parses v, falling back to 1 for blank or out of range input.
func sampleRatio(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 1
	}
	r, err := strconv.ParseFloat(v, 64)
	if err != nil || r < 0 || r > 1 {
		log.Warn().Str("value", v).Msg("invalid TRACING_SAMPLE_RATIO, sampling everything")
		return 1
	}
	return r
}
