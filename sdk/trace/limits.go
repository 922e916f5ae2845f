package trace

import "github.com/signalcore/otelsdk/internal/otelenv"

// SpanLimits bounds attribute/event/link counts and attribute value
// lengths (§3 Attributes, §6 OTEL_SPAN_*_LIMIT variables). Overflow is
// dropped and counted, never raised (§7).
type SpanLimits struct {
	AttributeCountLimit     int
	AttributeValueLenLimit  int // 0 means unlimited
	EventCountLimit         int
	LinkCountLimit          int
}

const (
	defaultAttributeCountLimit = 128
	defaultEventCountLimit     = 128
	defaultLinkCountLimit      = 128
)

// DefaultSpanLimits resolves limits from the environment (§6), falling
// back to the documented defaults.
func DefaultSpanLimits() SpanLimits {
	return SpanLimits{
		AttributeCountLimit:    otelenv.Int("OTEL_SPAN_ATTRIBUTE_COUNT_LIMIT", otelenv.Int("OTEL_ATTRIBUTE_COUNT_LIMIT", defaultAttributeCountLimit)),
		AttributeValueLenLimit: otelenv.Int("OTEL_SPAN_ATTRIBUTE_VALUE_LENGTH_LIMIT", otelenv.Int("OTEL_ATTRIBUTE_VALUE_LENGTH_LIMIT", 0)),
		EventCountLimit:        otelenv.Int("OTEL_SPAN_EVENT_COUNT_LIMIT", defaultEventCountLimit),
		LinkCountLimit:         otelenv.Int("OTEL_SPAN_LINK_COUNT_LIMIT", defaultLinkCountLimit),
	}
}
