// Package bench orchestrates timed comparison runs of the reduction
// strategies and renders their results.
package bench

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/qcserestipy/sumbench/pkg/reduce"
	"github.com/qcserestipy/sumbench/pkg/timing"
	"github.com/qcserestipy/sumbench/pkg/workerpool"
)

// Method names as they appear in report rows.
const (
	MethodAtomic   = "Atomic Sum"
	MethodPartial  = "Reduce Sum"
	MethodPooled   = "Pooled Sum"
	MethodBaseline = "Single-Threaded"
)

// MaxDataSize bounds the sequence length so every element value fits in
// an int32.
const MaxDataSize = math.MaxInt32

// Config describes one benchmark invocation.
type Config struct {
	// DataSize is the length of the summed sequence (values 1..DataSize).
	DataSize int `json:"data_size"`
	// Workers is the goroutine count used by every parallel strategy.
	// Zero selects workerpool.DefaultWorkers().
	Workers int `json:"workers,omitempty"`
	// Repeats is the number of timed samples per method. Zero means one.
	Repeats int `json:"repeats,omitempty"`
}

// Result is one report row: a method, its sum, and its timing profile
// aggregated over the configured repeats.
type Result struct {
	Method       string  `json:"method"`
	MemoryOrder  string  `json:"memory_order,omitempty"`
	Sum          int64   `json:"sum"`
	Millis       float64 `json:"time_ms"`
	StdDevMillis float64 `json:"stddev_ms,omitempty"`
	SpawnMillis  float64 `json:"spawn_ms,omitempty"`
	JoinMillis   float64 `json:"join_ms,omitempty"`
	Speedup      float64 `json:"speedup,omitempty"`
}

// NewSequence returns the benchmark input 1, 2, ..., n.
func NewSequence(n int) []int32 {
	data := make([]int32, n)
	for i := range data {
		data[i] = int32(i + 1)
	}
	return data
}

// ExpectedSum returns n*(n+1)/2, the closed form of the sequence sum.
func ExpectedSum(n int) int64 {
	nn := int64(n)
	return nn * (nn + 1) / 2
}

// Run executes every strategy against the same freshly generated
// sequence and reports one row per method, in fixed order: the atomic
// strategy under both memory orders, the partial-sums strategy, the
// pooled strategy, and the single-goroutine baseline last. Speedups are
// relative to the baseline row.
func Run(cfg Config) ([]Result, error) {
	if cfg.DataSize < 0 {
		return nil, fmt.Errorf("bench: negative data size %d", cfg.DataSize)
	}
	if cfg.DataSize > MaxDataSize {
		return nil, fmt.Errorf("bench: data size %d exceeds maximum %d", cfg.DataSize, MaxDataSize)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = workerpool.DefaultWorkers()
	}
	repeats := cfg.Repeats
	if repeats < 1 {
		repeats = 1
	}

	log.WithFields(log.Fields{
		"data_size": cfg.DataSize,
		"workers":   workers,
		"repeats":   repeats,
	}).Info("Running benchmark suite")

	data := NewSequence(cfg.DataSize)

	results := []Result{
		sampleMethod(MethodAtomic, reduce.Relaxed.String(), repeats, func() (int64, reduce.Phases) {
			return reduce.AtomicSum(data, workers, reduce.Relaxed)
		}),
		sampleMethod(MethodAtomic, reduce.SeqCst.String(), repeats, func() (int64, reduce.Phases) {
			return reduce.AtomicSum(data, workers, reduce.SeqCst)
		}),
		sampleMethod(MethodPartial, "", repeats, func() (int64, reduce.Phases) {
			return reduce.PartialSum(data, workers)
		}),
		sampleMethod(MethodPooled, "", repeats, func() (int64, reduce.Phases) {
			return reduce.PooledSum(data, workers), reduce.Phases{}
		}),
		sampleMethod(MethodBaseline, "", repeats, func() (int64, reduce.Phases) {
			return reduce.Sequential(data), reduce.Phases{}
		}),
	}

	base := results[len(results)-1].Millis
	for i := range results {
		if results[i].Millis > 0 {
			results[i].Speedup = base / results[i].Millis
		}
	}
	return results, nil
}

// sampleMethod times fn repeats times and aggregates the samples into a
// single row. The sum of the last sample is reported; all samples of a
// correct strategy agree.
func sampleMethod(method, order string, repeats int, fn func() (int64, reduce.Phases)) Result {
	log.WithFields(log.Fields{
		"method":       method,
		"memory_order": order,
		"repeats":      repeats,
	}).Debug("Sampling method")

	samples := make([]float64, repeats)
	spawns := make([]float64, repeats)
	joins := make([]float64, repeats)
	var sum int64
	var ph reduce.Phases
	for i := 0; i < repeats; i++ {
		samples[i] = timing.Measure(func() {
			sum, ph = fn()
		})
		spawns[i] = ph.SpawnMillis
		joins[i] = ph.JoinMillis
	}

	res := Result{
		Method:      method,
		MemoryOrder: order,
		Sum:         sum,
		Millis:      stat.Mean(samples, nil),
		SpawnMillis: stat.Mean(spawns, nil),
		JoinMillis:  stat.Mean(joins, nil),
	}
	if repeats > 1 {
		res.StdDevMillis = stat.StdDev(samples, nil)
	}
	return res
}
