// Package batch implements the bounded-FIFO batch engine shared by
// BatchSpanProcessor and BatchLogRecordProcessor (§4.4, §4.7 — the log
// processor is explicitly "symmetric" to the span processor). A single
// export is ever in flight; enqueue never blocks the caller; on overflow
// the newest item is dropped and counted, preserving liveness (§4.4, §5).
// Grounded on the worker-loop / channel design visible in the teacher's
// vendored tracer.go (payloadChan, stop chan, wg sync.WaitGroup).
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/signalcore/otelsdk/internal/otellog"
)

// Config parameterizes a Batcher. Zero values are replaced by the given
// defaults by New.
type Config struct {
	MaxQueueSize       int
	MaxExportBatchSize int
	ScheduleDelay      time.Duration
	ExportTimeout      time.Duration
}

// Exporter is the minimal capability the batch engine needs: export a
// chunk of items, bounded by ctx's deadline.
type Exporter[T any] func(ctx context.Context, items []T) error

// Batcher drains a bounded FIFO queue into an Exporter in chunks, either
// when enough items have accumulated or on a schedule (§4.4).
type Batcher[T any] struct {
	cfg    Config
	export Exporter[T]
	onDrop func(n int)

	mu    sync.Mutex
	queue []T

	notify   chan struct{}
	flushReq chan chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  bool
	wg       sync.WaitGroup
}

// New builds and starts a Batcher. onDrop, if non-nil, is invoked with the
// count of items dropped on queue overflow.
func New[T any](cfg Config, export Exporter[T], onDrop func(n int)) *Batcher[T] {
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 2048
	}
	if cfg.MaxExportBatchSize <= 0 {
		cfg.MaxExportBatchSize = 512
	}
	if cfg.ScheduleDelay <= 0 {
		cfg.ScheduleDelay = 5000 * time.Millisecond
	}
	if cfg.ExportTimeout <= 0 {
		cfg.ExportTimeout = 30000 * time.Millisecond
	}
	b := &Batcher[T]{
		cfg:      cfg,
		export:   export,
		onDrop:   onDrop,
		notify:   make(chan struct{}, 1),
		flushReq: make(chan chan struct{}),
		stopCh:   make(chan struct{}),
	}
	b.wg.Add(1)
	go b.run()
	return b
}

// Enqueue adds item to the queue. If the queue is at MaxQueueSize the item
// is dropped (counted) to preserve liveness (§4.4).
func (b *Batcher[T]) Enqueue(item T) {
	b.mu.Lock()
	if len(b.queue) >= b.cfg.MaxQueueSize {
		b.mu.Unlock()
		if b.onDrop != nil {
			b.onDrop(1)
		}
		return
	}
	b.queue = append(b.queue, item)
	full := len(b.queue) >= b.cfg.MaxExportBatchSize
	b.mu.Unlock()
	if full {
		select {
		case b.notify <- struct{}{}:
		default:
		}
	}
}

func (b *Batcher[T]) run() {
	defer b.wg.Done()
	ticker := time.NewTicker(b.cfg.ScheduleDelay)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			b.drainFullBatches(true)
		case <-b.notify:
			b.drainFullBatches(false)
		case done := <-b.flushReq:
			b.drainFullBatches(true)
			close(done)
		case <-b.stopCh:
			b.drainFullBatches(true)
			return
		}
	}
}

// drainFullBatches exports queued items in MaxExportBatchSize chunks. When
// drainAll is false it only exports while a full batch is pending,
// leaving a partial remainder for the next scheduled tick or flush.
func (b *Batcher[T]) drainFullBatches(drainAll bool) {
	for {
		chunk := b.takeChunk(drainAll)
		if len(chunk) == 0 {
			return
		}
		b.exportChunk(chunk)
		if !drainAll && len(chunk) < b.cfg.MaxExportBatchSize {
			return
		}
	}
}

func (b *Batcher[T]) takeChunk(drainAll bool) []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.queue)
	if n == 0 {
		return nil
	}
	if !drainAll && n < b.cfg.MaxExportBatchSize {
		return nil
	}
	if n > b.cfg.MaxExportBatchSize {
		n = b.cfg.MaxExportBatchSize
	}
	chunk := make([]T, n)
	copy(chunk, b.queue[:n])
	b.queue = b.queue[n:]
	return chunk
}

func (b *Batcher[T]) exportChunk(chunk []T) {
	ctx, cancel := context.WithTimeout(context.Background(), b.cfg.ExportTimeout)
	defer cancel()
	if err := b.export(ctx, chunk); err != nil {
		otellog.Errorf("batch export failed for %d items: %v", len(chunk), err)
	}
}

// ForceFlush exports every item enqueued before the call, or reports that
// the deadline elapsed first (§4.4, §8 forceFlush invariant).
func (b *Batcher[T]) ForceFlush(ctx context.Context) bool {
	done := make(chan struct{})
	select {
	case b.flushReq <- done:
	case <-b.stopCh:
		return false
	case <-ctx.Done():
		return false
	}
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

// Shutdown stops the worker after a best-effort drain and is idempotent
// (§5 "shutdown() is idempotent").
func (b *Batcher[T]) Shutdown(ctx context.Context) bool {
	b.mu.Lock()
	already := b.stopped
	b.stopped = true
	b.mu.Unlock()
	if already {
		return true
	}
	b.stopOnce.Do(func() { close(b.stopCh) })
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}
