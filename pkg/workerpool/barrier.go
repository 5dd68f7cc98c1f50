package workerpool

import (
	"fmt"
	"sync"
)

// Barrier blocks callers of Wait until a fixed number of completions
// has been recorded via Done. It is the completion counterpart to the
// pool's submit side: submit n tasks, have each task call Done, then
// Wait for all n.
type Barrier struct {
	mu     sync.Mutex
	cond   *sync.Cond
	count  int
	target int
}

// NewBarrier creates a Barrier releasing waiters after target
// completions. NewBarrier panics if target is negative.
func NewBarrier(target int) *Barrier {
	if target < 0 {
		panic(fmt.Sprintf("workerpool: negative barrier target %d", target))
	}
	b := &Barrier{target: target}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Done records one completion, waking waiters once the target is
// reached.
func (b *Barrier) Done() {
	b.mu.Lock()
	b.count++
	reached := b.count >= b.target
	b.mu.Unlock()
	if reached {
		b.cond.Broadcast()
	}
}

// Wait blocks until Done has been called target times. A zero target
// returns immediately.
func (b *Barrier) Wait() {
	b.mu.Lock()
	for b.count < b.target {
		b.cond.Wait()
	}
	b.mu.Unlock()
}
