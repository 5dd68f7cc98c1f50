package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsEveryTaskExactlyOnce(t *testing.T) {
	pool := New(WithWorkers(4))

	const numTasks = 100
	var counts [numTasks]atomic.Int32
	for i := 0; i < numTasks; i++ {
		require.NoError(t, pool.Submit(func() { counts[i].Add(1) }))
	}
	pool.Close()

	for i := range counts {
		assert.Equal(t, int32(1), counts[i].Load(), "task %d", i)
	}
}

func TestPoolDequeuesInSubmissionOrder(t *testing.T) {
	// A single worker makes execution order observable.
	pool := New(WithWorkers(1))

	var got []int
	for i := 0; i < 50; i++ {
		require.NoError(t, pool.Submit(func() { got = append(got, i) }))
	}
	pool.Close()

	require.Len(t, got, 50)
	for i := range got {
		require.Equal(t, i, got[i])
	}
}

func TestCloseDrainsQueuedTasks(t *testing.T) {
	pool := New(WithWorkers(2))

	var done atomic.Int32
	for i := 0; i < 20; i++ {
		require.NoError(t, pool.Submit(func() {
			time.Sleep(time.Millisecond)
			done.Add(1)
		}))
	}
	pool.Close()

	assert.Equal(t, int32(20), done.Load())
}

func TestSubmitAfterCloseIsRejected(t *testing.T) {
	pool := New(WithWorkers(2))
	pool.Close()

	ran := false
	err := pool.Submit(func() { ran = true })
	require.ErrorIs(t, err, ErrStopped)
	assert.False(t, ran)
}

func TestCloseJoinsAllWorkers(t *testing.T) {
	before := runtime.NumGoroutine()

	pool := New(WithWorkers(8))
	for i := 0; i < 32; i++ {
		require.NoError(t, pool.Submit(func() { time.Sleep(time.Millisecond) }))
	}
	pool.Close()

	// Close joins every worker; give exiting goroutines a moment to be
	// reaped before comparing against the baseline.
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before, "worker goroutines leaked past Close")
}

func TestCloseIsIdempotent(t *testing.T) {
	pool := New(WithWorkers(2))
	require.NoError(t, pool.Submit(func() {}))
	pool.Close()
	assert.NotPanics(t, func() { pool.Close() })
}

func TestConcurrentSubmitters(t *testing.T) {
	pool := New(WithWorkers(4))

	var total atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if err := pool.Submit(func() { total.Add(1) }); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	pool.Close()

	assert.Equal(t, int64(1600), total.Load())
}

func TestNewInvalidWorkerCountPanics(t *testing.T) {
	assert.Panics(t, func() { New(WithWorkers(0)) })
	assert.Panics(t, func() { New(WithWorkers(-3)) })
}

func TestSubmitNilTaskPanics(t *testing.T) {
	pool := New(WithWorkers(1))
	defer pool.Close()
	assert.Panics(t, func() { _ = pool.Submit(nil) })
}

func TestDefaultWorkers(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultWorkers(), 1)

	pool := New()
	defer pool.Close()
	assert.Equal(t, DefaultWorkers(), pool.NumWorkers)
}

var benchSink atomic.Int64

func BenchmarkSubmitAndDrain(b *testing.B) {
	pool := New(WithWorkers(4))
	defer pool.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		done := NewBarrier(1)
		_ = pool.Submit(func() {
			benchSink.Add(1)
			done.Done()
		})
		done.Wait()
	}
}
