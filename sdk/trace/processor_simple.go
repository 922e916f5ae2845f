package trace

import (
	"context"

	"github.com/signalcore/otelsdk/internal/otellog"
)

// SimpleSpanProcessor hands each ended span synchronously to its exporter
// (§4.4). Not recommended in production; used where strong per-span
// ordering matters (tests, debugging).
type SimpleSpanProcessor struct {
	exporter SpanExporter
}

var _ SpanProcessor = (*SimpleSpanProcessor)(nil)

func NewSimpleSpanProcessor(exporter SpanExporter) *SimpleSpanProcessor {
	return &SimpleSpanProcessor{exporter: exporter}
}

func (p *SimpleSpanProcessor) OnStart(context.Context, ReadOnlySpan) {}

func (p *SimpleSpanProcessor) OnEnd(span ReadOnlySpan) {
	if err := p.exporter.ExportSpans(context.Background(), []ReadOnlySpan{span}); err != nil {
		otellog.Errorf("simple span processor: export failed: %v", err)
	}
}

func (p *SimpleSpanProcessor) ForceFlush(context.Context) bool { return true }

func (p *SimpleSpanProcessor) Shutdown(ctx context.Context) bool {
	return p.exporter.Shutdown(ctx) == nil
}
