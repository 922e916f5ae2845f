package log

import "github.com/signalcore/otelsdk/internal/otelenv"

// RecordLimits bounds LogRecord attribute count/value length (§4.7
// defaults: 128 / no limit), enforced at construction.
type RecordLimits struct {
	AttributeCountLimit    int
	AttributeValueLenLimit int
}

func DefaultRecordLimits() RecordLimits {
	return RecordLimits{
		AttributeCountLimit:    otelenv.Int("OTEL_LOGRECORD_ATTRIBUTE_COUNT_LIMIT", otelenv.Int("OTEL_ATTRIBUTE_COUNT_LIMIT", 128)),
		AttributeValueLenLimit: otelenv.Int("OTEL_LOGRECORD_ATTRIBUTE_VALUE_LENGTH_LIMIT", otelenv.Int("OTEL_ATTRIBUTE_VALUE_LENGTH_LIMIT", 0)),
	}
}
