// Package parallel runs command jobs on a fixed set of goroutines. Commands
// receive the pool as a WorkerFunc and WaitFunc pair so they never depend on
// how many workers there are.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc schedules a job. It may block until a worker is free.
	WorkerFunc func(func())
	// WaitFunc waits for scheduled jobs; done also closes the pool.
	WaitFunc   func(done bool)
	CancelFunc func()
)

type Pool struct {
	wg      sync.WaitGroup
	workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

// Start creates a pool of numWorkers goroutines, or one per CPU when
// numWorkers is below 1. A single worker runs every job inline on the
// caller's goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			workChan <- f
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}
