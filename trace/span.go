package trace

import (
	"time"

	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/codes"
)

// SpanKind describes a span's relationship to its caller/callees (standard
// OTel kinds; the data model §3 names them as part of Span).
type SpanKind int

const (
	SpanKindUnspecified SpanKind = iota
	SpanKindInternal
	SpanKindServer
	SpanKindClient
	SpanKindProducer
	SpanKindConsumer
)

// Link is a SpanLink (§3 SpanLink): a reference to another SpanContext plus
// attributes.
type Link struct {
	SpanContext SpanContext
	Attributes  []attribute.KeyValue
}

// Event is a SpanEvent (§3 SpanEvent).
type Event struct {
	Name       string
	Time       time.Time
	Attributes []attribute.KeyValue
}

// Status is the Span's status (§3, §4.3).
type Status struct {
	Code        codes.Code
	Description string
}

// Span is the mutable capability surface exposed to instrumentation code
// while a span is recording (§4.3). Once End is called all mutators become
// no-ops.
type Span interface {
	// SpanContext returns the span's immutable identity. It is valid for
	// every span a Tracer starts, including the no-op span of a Drop
	// decision (so propagation keeps working across it); the span of an
	// empty context or of a rejected start carries an invalid SpanContext.
	SpanContext() SpanContext

	// IsRecording reports whether the span is still accepting mutations.
	IsRecording() bool

	SetName(name string)
	SetAttributes(kvs ...attribute.KeyValue)
	AddEvent(name string, kvs ...attribute.KeyValue)
	AddEventWithTimestamp(name string, ts time.Time, kvs ...attribute.KeyValue)
	AddLink(link Link)
	SetStatus(code codes.Code, description string)
	RecordException(err error, stacktrace string, escaped bool)

	End(options ...SpanEndOption)
}

// SpanEndOption configures End.
type SpanEndOption func(*SpanEndConfig)

// SpanEndConfig holds the resolved End options.
type SpanEndConfig struct {
	Timestamp time.Time
}

// WithTimestamp overrides the end timestamp (§4.3 end(endTimeNs?)).
func WithTimestamp(t time.Time) SpanEndOption {
	return func(c *SpanEndConfig) { c.Timestamp = t }
}

func NewSpanEndConfig(opts ...SpanEndOption) SpanEndConfig {
	var c SpanEndConfig
	for _, o := range opts {
		o(&c)
	}
	return c
}
