package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdktrace "github.com/signalcore/otelsdk/trace"
)

type captureExporter struct {
	records []Record
}

func (e *captureExporter) Export(ctx context.Context, records []Record) error {
	e.records = append(e.records, records...)
	return nil
}
func (e *captureExporter) Shutdown(context.Context) error { return nil }

func TestEmitPopulatesTraceContextFromActiveSpan(t *testing.T) {
	exp := &captureExporter{}
	provider := NewLoggerProvider(WithLogRecordProcessor(NewSimpleLogRecordProcessor(exp)))
	logger := provider.Logger("test")

	sc := sdktrace.NewSpanContext(sdktrace.SpanContextConfig{
		TraceID: [16]byte{0x01},
		SpanID:  [8]byte{0x02},
	})
	ctx := sdktrace.ContextWithSpanContext(context.Background(), sc)

	logger.Emit(ctx, SeverityInfo, WithSeverityText("info"))
	require.Len(t, exp.records, 1)
	assert.Equal(t, sc.TraceID(), exp.records[0].TraceID)
	assert.Equal(t, sc.SpanID(), exp.records[0].SpanID)
}

func TestEmitWithoutActiveSpanLeavesTraceIDZero(t *testing.T) {
	exp := &captureExporter{}
	provider := NewLoggerProvider(WithLogRecordProcessor(NewSimpleLogRecordProcessor(exp)))
	logger := provider.Logger("test")

	logger.Emit(context.Background(), SeverityInfo)
	require.Len(t, exp.records, 1)
	assert.False(t, exp.records[0].TraceID.IsValid())
}

func TestSeverityFloorSuppressesBelowThreshold(t *testing.T) {
	exp := &captureExporter{}
	provider := NewLoggerProvider(WithLogRecordProcessor(NewSimpleLogRecordProcessor(exp)))
	logger := provider.Logger("test")
	logger.SetSeverityFloor(SeverityWarn)

	logger.Emit(context.Background(), SeverityInfo)
	logger.Emit(context.Background(), SeverityError)
	require.Len(t, exp.records, 1)
	assert.Equal(t, SeverityError, exp.records[0].SeverityNumber)
}

func TestLoggerIsStablePerScope(t *testing.T) {
	provider := NewLoggerProvider()
	l1 := provider.Logger("svc")
	l2 := provider.Logger("svc")
	assert.Same(t, l1, l2)
}
