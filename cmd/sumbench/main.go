package main

import (
	"encoding/json"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/qcserestipy/sumbench/pkg/bench"
	"github.com/qcserestipy/sumbench/pkg/workerpool"
)

func init() {
	formatter := &logrus.TextFormatter{}
	formatter.FullTimestamp = true
	formatter.TimestampFormat = time.RFC3339
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(formatter)
}

// sweepCounts doubles from 1 up to limit, always ending at limit itself.
func sweepCounts(limit int) []int {
	var counts []int
	for t := 1; t < limit; t *= 2 {
		counts = append(counts, t)
	}
	return append(counts, limit)
}

func main() {
	nPtr := flag.Int("n", 100_000_000, "Number of elements to sum")
	workersPtr := flag.Int("workers", 0, "Worker goroutines per strategy (0 = all CPU cores)")
	repeatsPtr := flag.Int("repeats", 1, "Timed samples per strategy")
	sweepPtr := flag.Bool("sweep", false, "Sweep worker counts 1,2,4,... up to -workers")
	jsonPtr := flag.Bool("json", false, "Emit results as JSON instead of tables")
	verbosePtr := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	if *verbosePtr {
		logrus.SetLevel(logrus.DebugLevel)
	}

	n := *nPtr
	if n < 0 || n > bench.MaxDataSize {
		logrus.Fatalf("-n must be between 0 and %d, got %d", bench.MaxDataSize, n)
	}
	workers := *workersPtr
	if workers < 0 {
		logrus.Fatalf("-workers must be >= 0, got %d", workers)
	}
	if workers == 0 {
		workers = workerpool.DefaultWorkers()
	}

	logrus.WithFields(logrus.Fields{
		"data_size": n,
		"workers":   workers,
		"repeats":   *repeatsPtr,
		"cores":     runtime.NumCPU(),
	}).Info("Starting parallel summation benchmark")

	counts := []int{workers}
	if *sweepPtr {
		counts = sweepCounts(workers)
	}

	type suite struct {
		Workers int            `json:"workers"`
		Results []bench.Result `json:"results"`
	}
	suites := make([]suite, 0, len(counts))

	want := bench.ExpectedSum(n)
	start := time.Now()
	for _, count := range counts {
		results, err := bench.Run(bench.Config{DataSize: n, Workers: count, Repeats: *repeatsPtr})
		if err != nil {
			logrus.Fatalf("Benchmark failed: %v", err)
		}
		for _, r := range results {
			if r.Sum != want {
				logrus.Warnf("%s produced sum %d, expected %d", r.Method, r.Sum, want)
			}
		}
		suites = append(suites, suite{Workers: count, Results: results})

		if !*jsonPtr {
			logrus.Infof("Results with %d workers:", count)
			bench.WriteTable(os.Stdout, results)
		}
	}

	if *jsonPtr {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(suites); err != nil {
			logrus.Fatalf("Failed to encode results: %v", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"suites":   len(suites),
		"duration": time.Since(start),
	}).Info("Benchmark completed")
}
