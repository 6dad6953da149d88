package utils

import (
	"errors"
	"sync"
	"time"
)

// WorkerPool runs jobs on a bounded number of goroutines, optionally spacing
// job starts by a minimum interval.
type WorkerPool struct {
	maxWorkers  int
	rateLimitMs int
	semaphore   chan struct{}
	wg          sync.WaitGroup
	mu          sync.Mutex
	lastRequest time.Time

	errMu sync.Mutex
	errs  []error
}

// NewWorkerPool creates a WorkerPool with the given concurrency and rate limit.
func NewWorkerPool(maxWorkers, rateLimitMs int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		maxWorkers:  maxWorkers,
		rateLimitMs: rateLimitMs,
		semaphore:   make(chan struct{}, maxWorkers),
	}
}

// Submit enqueues a job for execution in the pool. A non-nil error returned
// by the job is collected and reported by Wait.
func (wp *WorkerPool) Submit(job func() error) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		wp.enforceRateLimit()
		if err := job(); err != nil {
			wp.errMu.Lock()
			wp.errs = append(wp.errs, err)
			wp.errMu.Unlock()
		}
	}()
}

// Wait blocks until all submitted jobs have completed and returns their
// joined errors. The collected errors are reset.
func (wp *WorkerPool) Wait() error {
	wp.wg.Wait()

	wp.errMu.Lock()
	defer wp.errMu.Unlock()
	err := errors.Join(wp.errs...)
	wp.errs = nil
	return err
}

func (wp *WorkerPool) enforceRateLimit() {
	if wp.rateLimitMs <= 0 {
		return
	}
	wp.mu.Lock()
	defer wp.mu.Unlock()

	minInterval := time.Duration(wp.rateLimitMs) * time.Millisecond
	elapsed := time.Since(wp.lastRequest)
	if elapsed < minInterval {
		time.Sleep(minInterval - elapsed)
	}
	wp.lastRequest = time.Now()
}
