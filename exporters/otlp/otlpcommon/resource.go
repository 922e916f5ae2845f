package otlpcommon

import (
	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/resource"
)

// Resource message field numbers.
const (
	fieldResourceAttributes            = 1
	fieldResourceDroppedAttributeCount = 2
)

// InstrumentationScope message field numbers.
const (
	fieldScopeName                  = 1
	fieldScopeVersion                = 2
	fieldScopeAttributes             = 3
	fieldScopeDroppedAttributeCount  = 4
)

// EncodeResource encodes r as an OTLP Resource message.
func EncodeResource(r *resource.Resource) []byte {
	var b []byte
	b = EncodeAttributes(b, fieldResourceAttributes, r.Attributes())
	return b
}

// EncodeScope encodes an InstrumentationScope as an OTLP
// InstrumentationScope message. attrs may be nil.
func EncodeScope(name, version string, attrs []attribute.KeyValue) []byte {
	var b []byte
	b = appendStringField(b, fieldScopeName, name)
	b = appendStringField(b, fieldScopeVersion, version)
	b = EncodeAttributes(b, fieldScopeAttributes, attrs)
	return b
}
