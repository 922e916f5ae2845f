package opentracing

import (
	"fmt"

	otlog "github.com/opentracing/opentracing-go/log"

	"github.com/signalcore/otelsdk/attribute"
)

// attributeFromTag converts an arbitrary OpenTracing tag value into an
// attribute.KeyValue, matching the handful of concrete types the OpenTracing
// API actually produces in practice; anything else falls back to %v.
func attributeFromTag(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int32:
		return attribute.Int64(key, int64(v))
	case int64:
		return attribute.Int64(key, v)
	case uint32:
		return attribute.Int64(key, int64(v))
	case uint64:
		return attribute.Int64(key, int64(v))
	case float32:
		return attribute.Float64(key, float64(v))
	case float64:
		return attribute.Float64(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}

// fieldEncoder implements otlog.Encoder, translating LogFields into span
// event attributes (§4.3 AddEvent).
type fieldEncoder struct {
	attrs []attribute.KeyValue
}

func (e *fieldEncoder) EmitString(key, value string) {
	e.attrs = append(e.attrs, attribute.String(key, value))
}

func (e *fieldEncoder) EmitBool(key string, value bool) {
	e.attrs = append(e.attrs, attribute.Bool(key, value))
}

func (e *fieldEncoder) EmitInt(key string, value int) {
	e.attrs = append(e.attrs, attribute.Int(key, value))
}

func (e *fieldEncoder) EmitInt32(key string, value int32) {
	e.attrs = append(e.attrs, attribute.Int64(key, int64(value)))
}

func (e *fieldEncoder) EmitInt64(key string, value int64) {
	e.attrs = append(e.attrs, attribute.Int64(key, value))
}

func (e *fieldEncoder) EmitUint32(key string, value uint32) {
	e.attrs = append(e.attrs, attribute.Int64(key, int64(value)))
}

func (e *fieldEncoder) EmitUint64(key string, value uint64) {
	e.attrs = append(e.attrs, attribute.Int64(key, int64(value)))
}

func (e *fieldEncoder) EmitFloat32(key string, value float32) {
	e.attrs = append(e.attrs, attribute.Float64(key, float64(value)))
}

func (e *fieldEncoder) EmitFloat64(key string, value float64) {
	e.attrs = append(e.attrs, attribute.Float64(key, value))
}

func (e *fieldEncoder) EmitObject(key string, value interface{}) {
	e.attrs = append(e.attrs, attributeFromTag(key, value))
}

func (e *fieldEncoder) EmitLazyLogger(value otlog.LazyLogger) {
	value(e)
}
