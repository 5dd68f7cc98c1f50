// Package workerpool provides a fixed-size pool of long-lived worker
// goroutines consuming tasks from a shared FIFO queue.
package workerpool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// ErrStopped is returned by Submit once Close has begun and the pool no
// longer accepts tasks.
var ErrStopped = errors.New("workerpool: pool is stopped")

// Task is a unit of work executed by a pool worker.
type Task func()

type PoolOptions struct {
	NumWorkers int
}

type PoolOptionFunc func(*PoolOptions)

func defaultOpts() PoolOptions {
	return PoolOptions{
		NumWorkers: DefaultWorkers(),
	}
}

// WithWorkers allows customization of the number of concurrent workers.
func WithWorkers(num int) PoolOptionFunc {
	return func(opts *PoolOptions) {
		opts.NumWorkers = num
	}
}

// DefaultWorkers reports the number of usable CPU cores, falling back
// to 2 if the runtime cannot determine it.
func DefaultWorkers() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 2
}

// Pool runs a fixed set of worker goroutines over a mutex-guarded FIFO
// task queue. Tasks submitted before Close are executed exactly once;
// Close drains the queue and joins every worker before returning.
type Pool struct {
	PoolOptions

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Task
	stopped bool
	wg      sync.WaitGroup
}

// New creates a pool and starts its workers. The worker count defaults
// to DefaultWorkers. New panics if the configured count is < 1.
func New(opts ...PoolOptionFunc) *Pool {
	o := defaultOpts()
	for _, fn := range opts {
		fn(&o)
	}
	if o.NumWorkers < 1 {
		panic(fmt.Sprintf("workerpool: invalid worker count %d", o.NumWorkers))
	}
	p := &Pool{PoolOptions: o}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(o.NumWorkers)
	for i := 0; i < o.NumWorkers; i++ {
		go p.worker()
	}
	return p
}

// Submit appends task to the queue and wakes one idle worker. It
// returns ErrStopped if Close has already begun; the task is then never
// run. Submit panics when task is nil.
func (p *Pool) Submit(task Task) error {
	if task == nil {
		panic("workerpool: nil task")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return ErrStopped
	}
	p.queue = append(p.queue, task)
	p.cond.Signal()
	return nil
}

// Close stops the pool: no further submissions are accepted, tasks
// still queued are executed, and Close returns once every worker
// goroutine has exited. Close is idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			// stopped and drained
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()
		task()
	}
}
