package utils

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewTracerProvider installs a global tracer provider that reports finished spans to the logger
func NewTracerProvider(serviceName string, logger *logrus.Logger) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(&logSpanProcessor{logger: logger}),
	)
	otel.SetTracerProvider(tp)

	return tp
}

// logSpanProcessor logs span durations at debug level and failed spans at warn level
type logSpanProcessor struct {
	logger *logrus.Logger
}

func (p *logSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *logSpanProcessor) OnEnd(span sdktrace.ReadOnlySpan) {
	fields := logrus.Fields{
		"span":        span.Name(),
		"trace_id":    span.SpanContext().TraceID().String(),
		"duration_ms": span.EndTime().Sub(span.StartTime()).Milliseconds(),
	}
	for _, kv := range span.Attributes() {
		fields[string(kv.Key)] = kv.Value.Emit()
	}

	if span.Status().Code == codes.Error {
		p.logger.WithFields(fields).WithField("error", span.Status().Description).Warn("Span failed")
		return
	}
	p.logger.WithFields(fields).Debug("Span finished")
}

func (p *logSpanProcessor) Shutdown(context.Context) error { return nil }

func (p *logSpanProcessor) ForceFlush(context.Context) error { return nil }
