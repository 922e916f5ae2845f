package trace

import (
	"context"
	"time"

	"github.com/signalcore/otelsdk/internal/batch"
	"github.com/signalcore/otelsdk/internal/otelenv"
	"github.com/signalcore/otelsdk/internal/selfmetrics"
)

// BatchSpanProcessorOptions parameterizes NewBatchSpanProcessor (§4.4,
// OTEL_BSP_* in §6). Zero fields fall back to the environment, then the
// documented defaults.
type BatchSpanProcessorOptions struct {
	MaxQueueSize       int
	MaxExportBatchSize int
	ScheduleDelay      time.Duration
	ExportTimeout      time.Duration
	Metrics            *selfmetrics.Registry
}

// BatchSpanProcessor exports ended spans in batches via a bounded FIFO
// queue, built on the generic engine shared with BatchLogRecordProcessor
// (§4.4, §4.7 symmetry).
type BatchSpanProcessor struct {
	exporter SpanExporter
	engine   *batch.Batcher[ReadOnlySpan]
	metrics  *selfmetrics.Registry
}

var _ SpanProcessor = (*BatchSpanProcessor)(nil)

// NewBatchSpanProcessor builds a BatchSpanProcessor. Options left zero are
// resolved from OTEL_BSP_{SCHEDULE_DELAY,EXPORT_TIMEOUT,MAX_QUEUE_SIZE,
// MAX_EXPORT_BATCH_SIZE}, then the §4.4 defaults.
func NewBatchSpanProcessor(exporter SpanExporter, opts BatchSpanProcessorOptions) *BatchSpanProcessor {
	cfg := batch.Config{
		MaxQueueSize:       firstPositiveInt(opts.MaxQueueSize, otelenv.Int("OTEL_BSP_MAX_QUEUE_SIZE", 2048)),
		MaxExportBatchSize: firstPositiveInt(opts.MaxExportBatchSize, otelenv.Int("OTEL_BSP_MAX_EXPORT_BATCH_SIZE", 512)),
		ScheduleDelay:      firstPositiveDuration(opts.ScheduleDelay, time.Duration(otelenv.Int("OTEL_BSP_SCHEDULE_DELAY", 5000))*time.Millisecond),
		ExportTimeout:      firstPositiveDuration(opts.ExportTimeout, time.Duration(otelenv.Int("OTEL_BSP_EXPORT_TIMEOUT", 30000))*time.Millisecond),
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = selfmetrics.New(nil)
	}
	p := &BatchSpanProcessor{exporter: exporter, metrics: metrics}
	p.engine = batch.New(cfg, p.export, p.onDrop)
	return p
}

func firstPositiveInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func firstPositiveDuration(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}

func (p *BatchSpanProcessor) export(ctx context.Context, spans []ReadOnlySpan) error {
	return p.exporter.ExportSpans(ctx, spans)
}

func (p *BatchSpanProcessor) onDrop(n int) {
	p.metrics.DroppedSpans.WithLabelValues(selfmetrics.ReasonQueueFull).Add(float64(n))
}

func (p *BatchSpanProcessor) OnStart(context.Context, ReadOnlySpan) {}

func (p *BatchSpanProcessor) OnEnd(span ReadOnlySpan) {
	p.engine.Enqueue(span)
}

func (p *BatchSpanProcessor) ForceFlush(ctx context.Context) bool {
	return p.engine.ForceFlush(ctx)
}

func (p *BatchSpanProcessor) Shutdown(ctx context.Context) bool {
	stopped := p.engine.Shutdown(ctx)
	if err := p.exporter.Shutdown(ctx); err != nil {
		return false
	}
	return stopped
}
