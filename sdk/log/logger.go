package log

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/signalcore/otelsdk/attribute"
	sdktrace "github.com/signalcore/otelsdk/trace"
)

// Logger emits LogRecords below no severity floor by default; SetSeverity
// adjusts the floor atomically, matching the span/log symmetry's use of
// lock-free state for hot-path checks (§5 "fine-grained locking or
// lock-free structures").
type Logger struct {
	scope    InstrumentationScope
	provider *LoggerProvider
	floor    int32
}

// SetSeverityFloor sets the minimum SeverityNumber this Logger emits.
func (l *Logger) SetSeverityFloor(floor SeverityNumber) {
	atomic.StoreInt32(&l.floor, int32(floor))
}

func (l *Logger) severityFloor() SeverityNumber {
	return SeverityNumber(atomic.LoadInt32(&l.floor))
}

// EmitOption configures Emit.
type EmitOption func(*Record)

func WithTimestamp(t time.Time) EmitOption { return func(r *Record) { r.Timestamp = t } }
func WithSeverityText(s string) EmitOption { return func(r *Record) { r.SeverityText = s } }
func WithBody(v attribute.Value) EmitOption { return func(r *Record) { r.Body = v } }
func WithLogAttributes(kvs ...attribute.KeyValue) EmitOption {
	return func(r *Record) { r.Attributes = append(r.Attributes, kvs...) }
}

// Emit builds a Record and delivers it to every registered
// LogRecordProcessor, unless severity is below this Logger's floor
// (§4.7). If ctx carries a current Span, the record's trace identity is
// populated from it.
func (l *Logger) Emit(ctx context.Context, severity SeverityNumber, opts ...EmitOption) {
	if severity != SeverityUnspecified && severity < l.severityFloor() {
		return
	}
	now := time.Now()
	r := Record{
		Timestamp:            now,
		ObservedTimestamp:    now,
		SeverityNumber:       severity,
		InstrumentationScope: l.scope,
		Resource:             l.provider.resource,
	}
	for _, o := range opts {
		o(&r)
	}
	if sc := sdktrace.SpanContextFromContext(ctx); sc.IsValid() {
		r.TraceID = sc.TraceID()
		r.SpanID = sc.SpanID()
		r.TraceFlags = sc.TraceFlags()
	}
	r = applyLimits(r, l.provider.limits)

	for _, p := range l.provider.processors() {
		p.OnEmit(ctx, r)
	}
}

func applyLimits(r Record, limits RecordLimits) Record {
	if limits.AttributeCountLimit > 0 && len(r.Attributes) > limits.AttributeCountLimit {
		r.DroppedAttributes = len(r.Attributes) - limits.AttributeCountLimit
		r.Attributes = r.Attributes[:limits.AttributeCountLimit]
	}
	if limits.AttributeValueLenLimit > 0 {
		for i, kv := range r.Attributes {
			if kv.Value.Type() == attribute.STRING && len(kv.Value.AsString()) > limits.AttributeValueLenLimit {
				r.Attributes[i] = attribute.String(string(kv.Key), kv.Value.AsString()[:limits.AttributeValueLenLimit])
			}
		}
	}
	return r
}
