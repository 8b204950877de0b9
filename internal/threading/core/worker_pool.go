package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs jobs on a fixed set of goroutines. The renderer uses it to
// cast independent screen columns in parallel.
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}
	startOnce  sync.Once
	stopOnce   sync.Once
	completed  atomic.Uint64
}

// NewWorkerPool creates a pool with numWorkers goroutines. A non-positive
// count uses one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// NewStartedPool creates and starts a pool.
func NewStartedPool(numWorkers int) *WorkerPool {
	pool := NewWorkerPool(numWorkers)
	pool.Start()
	return pool
}

// Start launches the worker goroutines. Extra calls are ignored.
func (wp *WorkerPool) Start() {
	wp.startOnce.Do(func() {
		for i := 0; i < wp.numWorkers; i++ {
			go wp.worker()
		}
	})
}

func (wp *WorkerPool) worker() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
			wp.completed.Add(1)
			wp.wg.Done()
		case <-wp.quit:
			return
		}
	}
}

// Submit queues a job. It blocks while the queue is full.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.jobQueue <- job
}

// Wait blocks until every submitted job has finished.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop shuts the workers down. Jobs still queued are dropped.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() { close(wp.quit) })
}

// NumWorkers returns the number of worker goroutines.
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Completed returns the number of jobs run since the pool was created.
func (wp *WorkerPool) Completed() uint64 {
	return wp.completed.Load()
}

// ParallelFor calls fn for every i in [start, end) and returns when all calls
// are done.
func (wp *WorkerPool) ParallelFor(start, end int, fn func(int)) {
	wp.ParallelRange(context.Background(), start, end, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(i)
		}
	})
}

// ParallelRange splits [start, end) into one contiguous chunk per worker and
// calls fn once per chunk. Chunks not yet started when ctx is cancelled are
// skipped.
func (wp *WorkerPool) ParallelRange(ctx context.Context, start, end int, fn func(lo, hi int)) {
	if start >= end {
		return
	}

	chunkSize := max(1, (end-start+wp.numWorkers-1)/wp.numWorkers)
	for i := start; i < end; i += chunkSize {
		lo, hi := i, min(i+chunkSize, end)
		wp.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			fn(lo, hi)
		})
	}
	wp.Wait()
}
