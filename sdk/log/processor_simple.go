package log

import (
	"context"

	"github.com/signalcore/otelsdk/internal/otellog"
)

// SimpleLogRecordProcessor exports each emitted Record synchronously
// (§4.7, mirroring SimpleSpanProcessor).
type SimpleLogRecordProcessor struct {
	exporter Exporter
}

var _ LogRecordProcessor = (*SimpleLogRecordProcessor)(nil)

func NewSimpleLogRecordProcessor(exporter Exporter) *SimpleLogRecordProcessor {
	return &SimpleLogRecordProcessor{exporter: exporter}
}

func (p *SimpleLogRecordProcessor) OnEmit(ctx context.Context, record Record) {
	if err := p.exporter.Export(ctx, []Record{record}); err != nil {
		otellog.Errorf("simple log record processor: export failed: %v", err)
	}
}

func (p *SimpleLogRecordProcessor) ForceFlush(context.Context) bool { return true }

func (p *SimpleLogRecordProcessor) Shutdown(ctx context.Context) bool {
	return p.exporter.Shutdown(ctx) == nil
}
