// Package partition splits an index range into contiguous chunks, one
// per worker.
package partition

import "fmt"

// Chunk is a half-open index interval [Start, End).
type Chunk struct {
	Start int
	End   int
}

// Split divides the range [0, n) into exactly workers contiguous chunks.
// Chunk i starts at i*(n/workers); the last chunk extends to n so the
// integer-division remainder is never lost. workers may exceed n, in
// which case some chunks are empty. Split panics if workers < 1.
func Split(n, workers int) []Chunk {
	if workers < 1 {
		panic(fmt.Sprintf("partition: invalid worker count %d", workers))
	}
	size := n / workers
	chunks := make([]Chunk, workers)
	for i := range chunks {
		chunks[i] = Chunk{Start: i * size, End: (i + 1) * size}
	}
	chunks[workers-1].End = n
	return chunks
}
