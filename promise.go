package rhttp

import (
	"context"
	"fmt"
	"sync"
)

// Promise is a deferred [Result]. A handler that cannot produce its result
// synchronously returns a Promise and resolves or rejects it later from
// another goroutine. The renderer suspends at the promise without blocking
// other request cycles and resumes when it settles, or stops waiting when
// the request is aborted.
type Promise struct {
	done chan struct{}

	once sync.Once
	res  Result
	err  error
}

// NewPromise inits an unresolved promise.
func NewPromise() *Promise {
	return &Promise{done: make(chan struct{})}
}

// Go runs fn on its own goroutine and returns a promise for its result. A
// panic inside fn rejects the promise instead of crashing the process.
func Go(fn func() (Result, error)) *Promise {
	p := NewPromise()

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				p.Reject(fmt.Errorf("promise panicked: %v", rec))
			}
		}()

		res, err := fn()
		if err != nil {
			p.Reject(err)
			return
		}

		p.Resolve(res)
	}()

	return p
}

// Resolve settles the promise with a result. Only the first settlement wins;
// later calls to Resolve or Reject are no-ops.
func (p *Promise) Resolve(res Result) {
	p.once.Do(func() {
		p.res = res
		close(p.done)
	})
}

// Reject settles the promise with a failure, rendered by the awaiting cycle
// as a 500 error page (or the error's own code for an [*Error]).
func (p *Promise) Reject(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Await blocks until the promise settles or ctx is done. A ctx abort returns
// the context's error; the settlement goroutine keeps running but its result
// is discarded.
func (p *Promise) Await(ctx context.Context) (Result, error) {
	select {
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	case <-p.done:
		return p.res, p.err
	}
}

// isResult marks *Promise as a handler result.
func (p *Promise) isResult() {}
