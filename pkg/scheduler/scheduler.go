// Package scheduler runs background work for the store and the node runtime:
// queue sender loops, callback sends and timeout checks.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/semaphore"
)

var ErrNoCapacity = errors.New("scheduler has no free capacity")

// unit of background work; ctx is cancelled when the scheduler shuts down
type Task func(ctx context.Context)

type Scheduler interface {
	// runs task once as soon as a slot is free
	AddTask(task Task)
	// runs task every period until the handle is cancelled
	AddRecurringTask(task Task, period time.Duration) *RecurringHandle
	// claims a slot now, failing fast when none is free
	ReserveTask(task Task) (*Reservation, error)
}

// bounded goroutine pool
type Pool struct {
	ctx    context.Context
	cancel context.CancelFunc
	sem    *semaphore.Weighted
	logger hclog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewPool(capacity int64, logger hclog.Logger) *Pool {
	if capacity <= 0 {
		capacity = 1
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		ctx:    ctx,
		cancel: cancel,
		sem:    semaphore.NewWeighted(capacity),
		logger: logger.Named("scheduler"),
	}
}

func (p *Pool) run(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked", "panic", r)
		}
	}()
	task(ctx)
}

// registers a goroutine unless the pool is shut down
func (p *Pool) track() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.wg.Add(1)
	return true
}

func (p *Pool) AddTask(task Task) {
	if !p.track() {
		p.logger.Debug("task dropped, scheduler shut down")
		return
	}
	go func() {
		defer p.wg.Done()
		if err := p.sem.Acquire(p.ctx, 1); err != nil {
			return
		}
		defer p.sem.Release(1)
		p.run(p.ctx, task)
	}()
}

type RecurringHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// stops future runs and waits for a running one to finish
func (h *RecurringHandle) Cancel() {
	h.cancel()
	<-h.done
}

func (p *Pool) AddRecurringTask(task Task, period time.Duration) *RecurringHandle {
	ctx, cancel := context.WithCancel(p.ctx)
	h := &RecurringHandle{cancel: cancel, done: make(chan struct{})}

	if !p.track() {
		cancel()
		close(h.done)
		return h
	}
	go func() {
		defer p.wg.Done()
		defer close(h.done)

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := p.sem.Acquire(ctx, 1); err != nil {
					return
				}
				p.run(ctx, task)
				p.sem.Release(1)
			}
		}
	}()
	return h
}

// a slot claimed ahead of time
// exactly one of Run or Cancel gives it back
type Reservation struct {
	pool *Pool
	task Task
	once sync.Once
}

func (r *Reservation) Run() {
	r.once.Do(func() {
		if !r.pool.track() {
			r.pool.sem.Release(1)
			return
		}
		go func() {
			defer r.pool.wg.Done()
			defer r.pool.sem.Release(1)
			r.pool.run(r.pool.ctx, r.task)
		}()
	})
}

func (r *Reservation) Cancel() {
	r.once.Do(func() {
		r.pool.sem.Release(1)
	})
}

func (p *Pool) ReserveTask(task Task) (*Reservation, error) {
	if p.ctx.Err() != nil || !p.sem.TryAcquire(1) {
		return nil, ErrNoCapacity
	}
	return &Reservation{pool: p, task: task}, nil
}

// cancels running tasks and waits for them to return
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cancel()
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
