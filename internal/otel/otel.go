package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"

	"github.com/aexol-studio/axolotl-sub001/internal/eventbus"
	"github.com/aexol-studio/axolotl-sub001/internal/events"
	"github.com/aexol-studio/axolotl-sub001/internal/reqid"
)

const tracerName = "axolotl"

// Setup configures OpenTelemetry and attaches eventbus subscribers to the
// process-wide bus, installing one if needed.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	bus := eventbus.Default()
	if bus == nil {
		bus = eventbus.New()
		eventbus.Use(bus)
	}
	detach := Attach(bus, otel.Tracer(tracerName))

	return func(ctx context.Context) error {
		detach()
		return tp.Shutdown(ctx)
	}, nil
}

// Attach turns composition and federation events on bus into spans.
func Attach(bus *eventbus.Bus, tracer trace.Tracer) (detach func()) {
	s := &subscriber{tracer: tracer}
	return s.register(bus)
}

type subgraphKey struct {
	rid   int64
	index int
}

type subscriber struct {
	tracer        trace.Tracer
	composeSpans  sync.Map // rid -> trace.Span
	fieldSpans    sync.Map // rid -> trace.Span
	subgraphSpans sync.Map // subgraphKey -> trace.Span
}

func (s *subscriber) register(bus *eventbus.Bus) func() {
	unsubs := []func(){
		eventbus.Subscribe(bus, func(ctx context.Context, e events.ComposeStart) {
			rid, _ := reqid.FromContext(ctx)
			_, span := s.tracer.Start(ctx, "axolotl.compose")
			span.SetAttributes(attribute.StringSlice("axolotl.documents", e.Documents))
			s.composeSpans.Store(rid, span)
		}),

		eventbus.Subscribe(bus, func(ctx context.Context, e events.ComposeFinish) {
			rid, _ := reqid.FromContext(ctx)
			v, ok := s.composeSpans.LoadAndDelete(rid)
			if !ok {
				return
			}
			span := v.(trace.Span)
			if len(e.Conflicts) > 0 {
				span.SetAttributes(attribute.StringSlice("axolotl.conflicts", e.Conflicts))
			}
			end(span, e.Err)
		}),

		eventbus.Subscribe(bus, func(ctx context.Context, e events.FieldStart) {
			rid, _ := reqid.FromContext(ctx)
			_, span := s.tracer.Start(ctx, "federation.field")
			span.SetAttributes(
				attribute.String("graphql.type", e.Type),
				attribute.String("graphql.field", e.Field),
				attribute.Int("federation.subgraphs", e.Subgraphs),
			)
			s.fieldSpans.Store(rid, span)
		}),

		eventbus.Subscribe(bus, func(ctx context.Context, e events.FieldFinish) {
			rid, _ := reqid.FromContext(ctx)
			v, ok := s.fieldSpans.LoadAndDelete(rid)
			if !ok {
				return
			}
			end(v.(trace.Span), e.Err)
		}),

		eventbus.Subscribe(bus, func(ctx context.Context, e events.SubgraphStart) {
			rid, _ := reqid.FromContext(ctx)
			parent := ctx
			if v, ok := s.fieldSpans.Load(rid); ok {
				parent = trace.ContextWithSpan(ctx, v.(trace.Span))
			}
			_, span := s.tracer.Start(parent, "federation.subgraph")
			span.SetAttributes(attribute.Int("federation.subgraph.index", e.Index))
			s.subgraphSpans.Store(subgraphKey{rid: rid, index: e.Index}, span)
		}),

		eventbus.Subscribe(bus, func(ctx context.Context, e events.SubgraphFinish) {
			rid, _ := reqid.FromContext(ctx)
			v, ok := s.subgraphSpans.LoadAndDelete(subgraphKey{rid: rid, index: e.Index})
			if !ok {
				return
			}
			end(v.(trace.Span), e.Err)
		}),

		eventbus.Subscribe(bus, func(ctx context.Context, e events.ValueReplaced) {
			rid, _ := reqid.FromContext(ctx)
			if v, ok := s.fieldSpans.Load(rid); ok {
				v.(trace.Span).AddEvent("value.replaced", trace.WithAttributes(attribute.String("path", e.Path)))
			}
		}),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
