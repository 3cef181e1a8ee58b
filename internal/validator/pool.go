package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var ErrPoolClosed = errors.New("validation pool is closed")

var meter = otel.Meter("validator")

type job struct {
	fn   func() error
	done chan error
}

// Pool runs validation jobs on a fixed set of worker goroutines so that a slow
// validation cannot occupy the goroutine serving the request. Callers always
// wait for the outcome of their job.
type Pool struct {
	jobs     chan job
	quit     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
	duration metric.Float64Histogram
}

// NewPool starts workers goroutines reading from a queue of queueSize jobs.
func NewPool(workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	duration, err := meter.Float64Histogram("validation.duration",
		metric.WithDescription("Time spent running request validation"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		otel.Handle(err)
	}

	p := &Pool{
		jobs:     make(chan job, queueSize),
		quit:     make(chan struct{}),
		duration: duration,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Do submits fn and blocks until it has run, ctx is done or the pool is closed.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	j := job{fn: fn, done: make(chan error, 1)}

	select {
	case <-p.quit:
		return ErrPoolClosed
	default:
	}

	select {
	case p.jobs <- j:
	case <-p.quit:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		select {
		case err := <-j.done:
			return err
		default:
			return ErrPoolClosed
		}
	}
}

// Close stops the workers and waits for running jobs to finish. Jobs still
// queued, and callers still waiting, get ErrPoolClosed.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.quit)
	})
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case j := <-p.jobs:
			j.done <- p.run(j.fn)
		case <-p.quit:
			p.drain()
			return
		}
	}
}

// drain answers every job still queued after Close.
func (p *Pool) drain() {
	for {
		select {
		case j := <-p.jobs:
			j.done <- ErrPoolClosed
		default:
			return
		}
	}
}

func (p *Pool) run(fn func() error) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("validation job panicked", "panic", r)
			err = fmt.Errorf("validation panicked: %v", r)
		}
		if p.duration != nil {
			p.duration.Record(context.Background(), float64(time.Since(start).Microseconds())/1000)
		}
	}()
	return fn()
}
