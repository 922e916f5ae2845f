package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestForceFlushExportsAllEnqueuedBeforeCall(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	var exported []int
	export := func(ctx context.Context, items []int) error {
		mu.Lock()
		defer mu.Unlock()
		exported = append(exported, items...)
		return nil
	}
	b := New(Config{MaxExportBatchSize: 5, ScheduleDelay: 10 * time.Second}, export, nil)
	defer b.Shutdown(context.Background())

	b.Enqueue(1)
	b.Enqueue(2)
	b.Enqueue(3)

	mu.Lock()
	count := len(exported)
	mu.Unlock()
	assert.Equal(t, 0, count, "nothing should export before batch size or flush")

	ok := b.ForceFlush(context.Background())
	require.True(t, ok)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3}, exported)
}

func TestQueueOverflowDrops(t *testing.T) {
	defer goleak.VerifyNone(t)

	var dropped int64
	blocker := make(chan struct{})
	export := func(ctx context.Context, items []int) error {
		<-blocker
		return nil
	}
	b := New(Config{MaxQueueSize: 2, MaxExportBatchSize: 1000, ScheduleDelay: time.Hour}, export,
		func(n int) { atomic.AddInt64(&dropped, int64(n)) })
	defer func() {
		close(blocker)
		b.Shutdown(context.Background())
	}()

	for i := 0; i < 5; i++ {
		b.Enqueue(i)
	}
	assert.Equal(t, int64(3), atomic.LoadInt64(&dropped))
}

func TestShutdownIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)
	b := New(Config{}, func(ctx context.Context, items []int) error { return nil }, nil)
	assert.True(t, b.Shutdown(context.Background()))
	assert.True(t, b.Shutdown(context.Background()))
}

func TestPeriodicTickExportsPartialBatch(t *testing.T) {
	defer goleak.VerifyNone(t)
	done := make(chan []int, 1)
	export := func(ctx context.Context, items []int) error {
		done <- items
		return nil
	}
	b := New(Config{MaxExportBatchSize: 100, ScheduleDelay: 20 * time.Millisecond}, export, nil)
	defer b.Shutdown(context.Background())

	b.Enqueue(42)

	select {
	case items := <-done:
		assert.Equal(t, []int{42}, items)
	case <-time.After(time.Second):
		t.Fatal("scheduled tick never exported the partial batch")
	}
}
