package workerpool

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBarrierReleasesAtTarget(t *testing.T) {
	b := NewBarrier(3)

	released := make(chan struct{})
	go func() {
		b.Wait()
		close(released)
	}()

	b.Done()
	b.Done()
	select {
	case <-released:
		t.Fatal("barrier released before target")
	case <-time.After(50 * time.Millisecond):
	}

	b.Done()
	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("barrier never released")
	}
}

func TestBarrierZeroTarget(t *testing.T) {
	b := NewBarrier(0)

	done := make(chan struct{})
	go func() {
		b.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("zero-target barrier blocked")
	}
}

func TestBarrierManyWaiters(t *testing.T) {
	b := NewBarrier(1)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Wait()
		}()
	}
	b.Done()
	wg.Wait()
}

func TestBarrierNegativeTargetPanics(t *testing.T) {
	assert.Panics(t, func() { NewBarrier(-1) })
}
