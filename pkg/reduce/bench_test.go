package reduce

import (
	"testing"

	"github.com/qcserestipy/sumbench/pkg/workerpool"
)

const benchSize = 1_000_000

var benchSink int64

func BenchmarkSequential(b *testing.B) {
	data := sequence(benchSize)
	b.ReportAllocs()
	b.ResetTimer()

	var s int64
	for i := 0; i < b.N; i++ {
		s = Sequential(data)
	}
	benchSink = s
}

func BenchmarkAtomicSumRelaxed(b *testing.B) {
	data := sequence(benchSize)
	workers := workerpool.DefaultWorkers()
	b.ReportAllocs()
	b.ResetTimer()

	var s int64
	for i := 0; i < b.N; i++ {
		s, _ = AtomicSum(data, workers, Relaxed)
	}
	benchSink = s
}

func BenchmarkAtomicSumSeqCst(b *testing.B) {
	data := sequence(benchSize)
	workers := workerpool.DefaultWorkers()
	b.ReportAllocs()
	b.ResetTimer()

	var s int64
	for i := 0; i < b.N; i++ {
		s, _ = AtomicSum(data, workers, SeqCst)
	}
	benchSink = s
}

func BenchmarkPartialSum(b *testing.B) {
	data := sequence(benchSize)
	workers := workerpool.DefaultWorkers()
	b.ReportAllocs()
	b.ResetTimer()

	var s int64
	for i := 0; i < b.N; i++ {
		s, _ = PartialSum(data, workers)
	}
	benchSink = s
}

func BenchmarkPooledSum(b *testing.B) {
	data := sequence(benchSize)
	workers := workerpool.DefaultWorkers()
	b.ReportAllocs()
	b.ResetTimer()

	var s int64
	for i := 0; i < b.N; i++ {
		s = PooledSum(data, workers)
	}
	benchSink = s
}
