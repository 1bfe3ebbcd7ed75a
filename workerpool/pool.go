// File: workerpool/pool.go
// Package workerpool implements a fixed-size task pool with futures.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool runs a fixed set of worker goroutines pulling callables from a ring
// deque guarded by a spin lock and a condition variable. Results travel back
// through single-assignment futures. This is deliberately a blocking,
// lock-based design; the lock-free machinery lives in package queue.

package workerpool

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/spin"
)

// Compile-time interface compliance.
var _ api.Executor = (*Pool)(nil)
var _ api.StatsProvider = (*Pool)(nil)

// Pool is a fixed-size worker pool. Create it with New.
type Pool struct {
	mu    spin.Lock
	cond  *sync.Cond
	tasks *queue.Queue // guarded by mu

	running bool // guarded by mu
	workers int
	pin     bool
	wg      sync.WaitGroup

	submitted atomic.Int64
	completed atomic.Int64
}

// New starts a pool. Without options it sizes to runtime.NumCPU with a
// floor of two workers.
func New(opts ...Option) *Pool {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &Pool{
		tasks:   queue.New(),
		running: true,
		workers: cfg.workers,
		pin:     cfg.pin,
	}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
	return p
}

// Submit schedules task for execution. It returns api.ErrExecutorClosed
// after Close and api.ErrInvalidArgument for a nil task.
func (p *Pool) Submit(task func()) error {
	if task == nil {
		return api.ErrInvalidArgument
	}
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return api.ErrExecutorClosed
	}
	p.tasks.Add(task)
	p.submitted.Add(1)
	p.mu.Unlock()
	p.cond.Signal()
	return nil
}

// Do schedules fn and returns a future for its result. A panic inside fn is
// captured into the future's error; the worker survives.
func Do[R any](p *Pool, fn func() (R, error)) (*Future[R], error) {
	f := newFuture[R]()
	err := p.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				var zero R
				f.complete(zero, fmt.Errorf("workerpool: task panic: %v", r))
			}
		}()
		v, err := fn()
		f.complete(v, err)
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// NumWorkers returns the fixed worker count.
func (p *Pool) NumWorkers() int { return p.workers }

// Close stops intake, lets workers finish every accepted task and joins
// them. It is safe to call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}

// Stats returns basic pool metrics. completed is read before submitted so
// the pending count stays non-negative under concurrent submissions.
func (p *Pool) Stats() map[string]int64 {
	completed := p.completed.Load()
	submitted := p.submitted.Load()
	return map[string]int64{
		"submitted_tasks": submitted,
		"completed_tasks": completed,
		"pending_tasks":   submitted - completed,
		"num_workers":     int64(p.workers),
	}
}

// run is the main loop for one worker.
func (p *Pool) run(id int) {
	defer p.wg.Done()
	if p.pin {
		pinWorker(id)
	}
	for {
		p.mu.Lock()
		for p.tasks.Length() == 0 && p.running {
			p.cond.Wait()
		}
		if p.tasks.Length() == 0 && !p.running {
			p.mu.Unlock()
			return
		}
		task := p.tasks.Remove().(func())
		p.mu.Unlock()
		p.execute(task)
	}
}

// execute runs the task and updates statistics, recovering from panics so a
// misbehaving bare Submit task cannot kill the worker.
func (p *Pool) execute(task func()) {
	defer func() {
		if r := recover(); r != nil {
			// swallow panic to keep worker alive
		}
		p.completed.Add(1)
	}()
	task()
}
