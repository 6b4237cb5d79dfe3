package parallel

import (
	"runtime"
	"sync"
)

// Pool runs submitted work on a fixed number of goroutines. A pool with a
// single worker runs everything inline on the submitting goroutine.
type Pool struct {
	wg      sync.WaitGroup
	work    chan func()
	workers int
	close   func()
}

// Start creates a pool. numWorkers < 1 means one worker per CPU.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		close:   func() {},
	}

	if numWorkers > 1 {
		pool.work = make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range pool.work {
					f()
				}
			})
		}

		pool.close = sync.OnceFunc(func() { close(pool.work) })
	}

	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}

// Do runs f on a worker. It blocks while every worker is busy and the queue
// is full. Do must not be called after Wait.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait stops accepting work and returns once everything submitted has run.
func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}

// Each calls f(i) for every i in [0,n) on the pool and waits for all of
// them. The pool is finished afterwards.
func (p *Pool) Each(n int, f func(i int)) {
	for i := range n {
		p.Do(func() { f(i) })
	}
	p.Wait()
}
