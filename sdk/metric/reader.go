package metric

import (
	"context"
	"sync"
	"time"

	"github.com/signalcore/otelsdk/internal/otelenv"
	"github.com/signalcore/otelsdk/internal/otellog"
)

// PeriodicExportingMetricReader runs a scheduled collect+export cycle
// against a MeterProvider (§4.6). A timeout abandons the in-flight export
// and proceeds to the next tick rather than blocking it.
type PeriodicExportingMetricReader struct {
	provider *MeterProvider
	exporter MetricExporter
	interval time.Duration
	timeout  time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// ReaderOptions parameterizes NewPeriodicExportingMetricReader. Zero
// fields fall back to OTEL_METRIC_EXPORT_{INTERVAL,TIMEOUT}, then the
// §4.6 defaults (60s / 30s).
type ReaderOptions struct {
	Interval time.Duration
	Timeout  time.Duration
}

func NewPeriodicExportingMetricReader(provider *MeterProvider, exporter MetricExporter, opts ReaderOptions) *PeriodicExportingMetricReader {
	interval := opts.Interval
	if interval <= 0 {
		interval = time.Duration(otelenv.Int("OTEL_METRIC_EXPORT_INTERVAL", 60000)) * time.Millisecond
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Duration(otelenv.Int("OTEL_METRIC_EXPORT_TIMEOUT", 30000)) * time.Millisecond
	}
	r := &PeriodicExportingMetricReader{
		provider: provider,
		exporter: exporter,
		interval: interval,
		timeout:  timeout,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *PeriodicExportingMetricReader) run() {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.collectAndExport()
		case <-r.stopCh:
			return
		}
	}
}

func (r *PeriodicExportingMetricReader) collectAndExport() {
	snapshot := r.provider.CollectAllMetrics()
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.exporter.Export(ctx, snapshot); err != nil {
		otellog.Errorf("periodic metric reader: export failed: %v", err)
	}
}

// Shutdown performs one final collect+export, then shuts down the
// exporter (§4.6).
func (r *PeriodicExportingMetricReader) Shutdown(ctx context.Context) error {
	r.stopOnce.Do(func() { close(r.stopCh) })
	<-r.done
	r.collectAndExport()
	return r.exporter.Shutdown(ctx)
}
