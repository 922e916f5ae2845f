package trace

import (
	"context"
	"time"

	"github.com/signalcore/otelsdk/attribute"
)

// Tracer starts spans (§4.3).
type Tracer interface {
	Start(ctx context.Context, spanName string, opts ...SpanStartOption) (context.Context, Span)
}

// TracerProvider hands out stable Tracers, scoped by instrumentation name
// (§4.6's (name,version,schemaUrl) tuple applies identically to tracers).
type TracerProvider interface {
	Tracer(instrumentationName string, opts ...TracerOption) Tracer
}

// SpanStartOption configures Start (§4.3 startSpan argument bag).
type SpanStartOption func(*SpanStartConfig)

// SpanStartConfig holds the resolved Start options.
type SpanStartConfig struct {
	Kind                SpanKind
	Attributes          []attribute.KeyValue
	Links               []Link
	Timestamp           time.Time
	ExplicitSpanContext SpanContext
	HasExplicitContext  bool
	NewRoot             bool
}

func NewSpanStartConfig(opts ...SpanStartOption) SpanStartConfig {
	c := SpanStartConfig{Kind: SpanKindInternal}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func WithSpanKind(kind SpanKind) SpanStartOption {
	return func(c *SpanStartConfig) { c.Kind = kind }
}

func WithAttributes(kvs ...attribute.KeyValue) SpanStartOption {
	return func(c *SpanStartConfig) { c.Attributes = append(c.Attributes, kvs...) }
}

func WithLinks(links ...Link) SpanStartOption {
	return func(c *SpanStartConfig) { c.Links = append(c.Links, links...) }
}

func WithTimestampStart(t time.Time) SpanStartOption {
	return func(c *SpanStartConfig) { c.Timestamp = t }
}

// WithExplicitSpanContext provides an explicit SpanContext whose TraceID
// must match the resolved parent's (§4.3 step 2); its SpanID is
// informational only — a fresh one is always generated.
func WithExplicitSpanContext(sc SpanContext) SpanStartOption {
	return func(c *SpanStartConfig) {
		c.ExplicitSpanContext = sc
		c.HasExplicitContext = true
	}
}

// WithNewRoot forces the span to start a new trace, ignoring any parent in
// ctx.
func WithNewRoot() SpanStartOption {
	return func(c *SpanStartConfig) { c.NewRoot = true }
}

// TracerOption configures TracerProvider.Tracer.
type TracerOption func(*TracerConfig)

type TracerConfig struct {
	Version    string
	SchemaURL  string
	Attributes []attribute.KeyValue
}

func NewTracerConfig(opts ...TracerOption) TracerConfig {
	var c TracerConfig
	for _, o := range opts {
		o(&c)
	}
	return c
}

func WithInstrumentationVersion(v string) TracerOption {
	return func(c *TracerConfig) { c.Version = v }
}

func WithSchemaURL(url string) TracerOption {
	return func(c *TracerConfig) { c.SchemaURL = url }
}
