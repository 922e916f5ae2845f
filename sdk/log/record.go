// Package log implements the Logger/LogRecordProcessor subsystem (§4.7),
// explicitly "symmetric to spans" in spec.md — it reuses the same
// generic batch engine as sdk/trace.
package log

import (
	"time"

	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/resource"
	sdktrace "github.com/signalcore/otelsdk/trace"
)

// SeverityNumber is the OTel log severity scale: 1-4 TRACE, 5-8 DEBUG,
// 9-12 INFO, 13-16 WARN, 17-20 ERROR, 21-24 FATAL.
type SeverityNumber int

const (
	SeverityUnspecified SeverityNumber = 0
	SeverityTrace       SeverityNumber = 1
	SeverityDebug       SeverityNumber = 5
	SeverityInfo        SeverityNumber = 9
	SeverityWarn        SeverityNumber = 13
	SeverityError       SeverityNumber = 17
	SeverityFatal       SeverityNumber = 21
)

// Record is an immutable LogRecord (§3, §4.7), populated with the active
// Span's identity when one is current at emission time.
type Record struct {
	Timestamp         time.Time
	ObservedTimestamp time.Time
	SeverityNumber    SeverityNumber
	SeverityText      string
	Body              attribute.Value
	Attributes        []attribute.KeyValue
	DroppedAttributes int
	TraceID           sdktrace.TraceID
	SpanID            sdktrace.SpanID
	TraceFlags        sdktrace.TraceFlags
	InstrumentationScope InstrumentationScope
	Resource          *resource.Resource
}

// InstrumentationScope names the Logger that produced a Record.
type InstrumentationScope struct {
	Name      string
	Version   string
	SchemaURL string
}
