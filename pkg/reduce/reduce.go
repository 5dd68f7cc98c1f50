// Package reduce implements the summation strategies under comparison:
// a single-goroutine baseline, spawn-per-call goroutines merging into a
// shared atomic total, per-worker partial-sum slots, and dispatch
// through a fixed worker pool.
package reduce

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/qcserestipy/sumbench/pkg/partition"
	"github.com/qcserestipy/sumbench/pkg/timing"
	"github.com/qcserestipy/sumbench/pkg/workerpool"
)

// MemoryOrder selects the ordering policy for the atomic strategy's
// merge. The Go runtime offers a single, sequentially consistent
// ordering for atomics, so both policies execute the same fetch-add;
// the selector survives so result rows stay labelled and comparable
// across orderings. The choice never affects the computed sum.
type MemoryOrder int

const (
	// Relaxed requests the weakest ordering the runtime offers.
	Relaxed MemoryOrder = iota
	// SeqCst requests sequentially consistent ordering.
	SeqCst
)

// String renders the CLI/API spelling of the order.
func (o MemoryOrder) String() string {
	switch o {
	case Relaxed:
		return "relaxed"
	case SeqCst:
		return "seq_cst"
	default:
		return fmt.Sprintf("MemoryOrder(%d)", int(o))
	}
}

// ParseMemoryOrder converts the CLI/API spelling back to a MemoryOrder.
func ParseMemoryOrder(s string) (MemoryOrder, error) {
	switch s {
	case "relaxed":
		return Relaxed, nil
	case "seq_cst":
		return SeqCst, nil
	default:
		return 0, fmt.Errorf("reduce: unknown memory order %q", s)
	}
}

func (o MemoryOrder) valid() bool {
	return o == Relaxed || o == SeqCst
}

// merge performs the single atomic add the policy governs. Both
// policies compile to the runtime's one ordering; see the type comment.
func (o MemoryOrder) merge(total *atomic.Int64, delta int64) {
	total.Add(delta)
}

// Phases reports where the wall-clock time of a spawn-per-call strategy
// went: starting the workers versus waiting for them to finish.
type Phases struct {
	SpawnMillis float64 `json:"spawn_ms"`
	JoinMillis  float64 `json:"join_ms"`
}

// Sequential folds data on the calling goroutine. It is the baseline
// every parallel strategy is compared against.
func Sequential(data []int32) int64 {
	var sum int64
	for _, v := range data {
		sum += int64(v)
	}
	return sum
}

// AtomicSum partitions data into workers chunks and spawns one fresh
// goroutine per chunk. Each goroutine folds its chunk into a local sum
// and merges it with one atomic add into the shared total. AtomicSum
// panics if workers < 1 or order is not a recognized value.
func AtomicSum(data []int32, workers int, order MemoryOrder) (int64, Phases) {
	if !order.valid() {
		panic(fmt.Sprintf("reduce: unknown memory order %d", int(order)))
	}
	chunks := partition.Split(len(data), workers)

	var total atomic.Int64
	var wg sync.WaitGroup
	var ph Phases

	sw := timing.Start()
	for _, c := range chunks {
		wg.Add(1)
		go func(c partition.Chunk) {
			defer wg.Done()
			var local int64
			for i := c.Start; i < c.End; i++ {
				local += int64(data[i])
			}
			order.merge(&total, local)
		}(c)
	}
	ph.SpawnMillis = sw.Lap()
	wg.Wait()
	ph.JoinMillis = sw.Lap()

	return total.Load(), ph
}

// PartialSum partitions data into workers chunks and spawns one fresh
// goroutine per chunk. Goroutine i accumulates directly into its own
// slot of a shared array, so the goroutines never synchronize with each
// other; the caller folds the slots after the join. PartialSum panics
// if workers < 1.
func PartialSum(data []int32, workers int) (int64, Phases) {
	chunks := partition.Split(len(data), workers)
	partials := make([]int64, len(chunks))

	var wg sync.WaitGroup
	var ph Phases

	sw := timing.Start()
	for id, c := range chunks {
		wg.Add(1)
		go func(id int, c partition.Chunk) {
			defer wg.Done()
			for i := c.Start; i < c.End; i++ {
				partials[id] += int64(data[i])
			}
		}(id, c)
	}
	ph.SpawnMillis = sw.Lap()
	wg.Wait()
	ph.JoinMillis = sw.Lap()

	var sum int64
	for _, p := range partials {
		sum += p
	}
	return sum, ph
}

// PooledSum runs the same chunk-sum-and-merge work as AtomicSum, but
// dispatches it as tasks to a freshly constructed pool sized to workers
// instead of spawning one goroutine per chunk. Pool construction and
// shutdown happen inside the call, so a caller timing PooledSum
// observes the full pool lifecycle cost. PooledSum panics if
// workers < 1.
func PooledSum(data []int32, workers int) int64 {
	chunks := partition.Split(len(data), workers)

	pool := workerpool.New(workerpool.WithWorkers(workers))
	defer pool.Close()

	var total atomic.Int64
	barrier := workerpool.NewBarrier(len(chunks))
	for _, c := range chunks {
		if err := pool.Submit(func() {
			var local int64
			for i := c.Start; i < c.End; i++ {
				local += int64(data[i])
			}
			total.Add(local)
			barrier.Done()
		}); err != nil {
			// the pool was created above and cannot be stopped yet
			panic(err)
		}
	}
	barrier.Wait()

	return total.Load()
}
