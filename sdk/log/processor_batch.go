package log

import (
	"context"
	"time"

	"github.com/signalcore/otelsdk/internal/batch"
	"github.com/signalcore/otelsdk/internal/otelenv"
	"github.com/signalcore/otelsdk/internal/selfmetrics"
)

// BatchLogRecordProcessorOptions parameterizes
// NewBatchLogRecordProcessor. Zero fields fall back to OTEL_BLRP_* (§6),
// then the §4.7 defaults (delay 1000ms, queue 2048, batch 512, timeout
// 30000ms).
type BatchLogRecordProcessorOptions struct {
	MaxQueueSize       int
	MaxExportBatchSize int
	ScheduleDelay      time.Duration
	ExportTimeout      time.Duration
	Metrics            *selfmetrics.Registry
}

// BatchLogRecordProcessor mirrors BatchSpanProcessor exactly (§4.7
// "symmetric to spans"), built on the same internal/batch engine.
type BatchLogRecordProcessor struct {
	exporter Exporter
	engine   *batch.Batcher[Record]
	metrics  *selfmetrics.Registry
}

var _ LogRecordProcessor = (*BatchLogRecordProcessor)(nil)

func NewBatchLogRecordProcessor(exporter Exporter, opts BatchLogRecordProcessorOptions) *BatchLogRecordProcessor {
	cfg := batch.Config{
		MaxQueueSize:       firstPositiveInt(opts.MaxQueueSize, otelenv.Int("OTEL_BLRP_MAX_QUEUE_SIZE", 2048)),
		MaxExportBatchSize: firstPositiveInt(opts.MaxExportBatchSize, otelenv.Int("OTEL_BLRP_MAX_EXPORT_BATCH_SIZE", 512)),
		ScheduleDelay:      firstPositiveDuration(opts.ScheduleDelay, time.Duration(otelenv.Int("OTEL_BLRP_SCHEDULE_DELAY", 1000))*time.Millisecond),
		ExportTimeout:      firstPositiveDuration(opts.ExportTimeout, time.Duration(otelenv.Int("OTEL_BLRP_EXPORT_TIMEOUT", 30000))*time.Millisecond),
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = selfmetrics.New(nil)
	}
	p := &BatchLogRecordProcessor{exporter: exporter, metrics: metrics}
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

func (p *BatchLogRecordProcessor) export(ctx context.Context, records []Record) error {
	return p.exporter.Export(ctx, records)
}

func (p *BatchLogRecordProcessor) onDrop(n int) {
	p.metrics.DroppedLogRecords.WithLabelValues(selfmetrics.ReasonQueueFull).Add(float64(n))
}

func (p *BatchLogRecordProcessor) OnEmit(_ context.Context, record Record) {
	p.engine.Enqueue(record)
}

func (p *BatchLogRecordProcessor) ForceFlush(ctx context.Context) bool {
	return p.engine.ForceFlush(ctx)
}

func (p *BatchLogRecordProcessor) Shutdown(ctx context.Context) bool {
	stopped := p.engine.Shutdown(ctx)
	if err := p.exporter.Shutdown(ctx); err != nil {
		return false
	}
	return stopped
}
